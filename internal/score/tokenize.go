package score

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

// token is a case-folded word with its byte span in the source text.
type token struct {
	word       string
	start, end int
}

// document is the analyzed form of a prompt shared by every dimension check.
type document struct {
	text   string
	runes  int
	tokens []token
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}

// analyze splits text into maximal runs of word runes. A Caser keeps state,
// so each call gets its own.
func analyze(text string) document {
	fold := cases.Fold()
	doc := document{text: text, runes: utf8.RuneCountInString(text)}

	start := -1
	for i, r := range text {
		if isWordRune(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			doc.tokens = append(doc.tokens, token{word: fold.String(text[start:i]), start: start, end: i})
			start = -1
		}
	}
	if start >= 0 {
		doc.tokens = append(doc.tokens, token{word: fold.String(text[start:]), start: start, end: len(text)})
	}
	return doc
}

// spacedOnly reports whether two consecutive tokens are separated by whitespace alone.
func (d document) spacedOnly(i int) bool {
	gap := d.text[d.tokens[i-1].end:d.tokens[i].start]
	return gap != "" && strings.TrimSpace(gap) == ""
}

// hasAnyWord reports whether any token is in the set.
func (d document) hasAnyWord(set map[string]bool) bool {
	for _, t := range d.tokens {
		if set[t.word] {
			return true
		}
	}
	return false
}

// hasPhrase reports whether the folded words of phrase occur as consecutive
// tokens separated only by whitespace.
func (d document) hasPhrase(phrase []string) bool {
	if len(phrase) == 0 {
		return false
	}
	for i := 0; i+len(phrase) <= len(d.tokens); i++ {
		matched := true
		for j, w := range phrase {
			if d.tokens[i+j].word != w || (j > 0 && !d.spacedOnly(i+j)) {
				matched = false
				break
			}
		}
		if matched {
			return true
		}
	}
	return false
}

// hasAdjacentRepeat reports whether a token is immediately followed by itself.
func (d document) hasAdjacentRepeat() bool {
	for i := 1; i < len(d.tokens); i++ {
		if d.tokens[i].word == d.tokens[i-1].word && d.spacedOnly(i) {
			return true
		}
	}
	return false
}

// uniqueRatio is distinct tokens over total tokens, or 1 when there are none.
func (d document) uniqueRatio() float64 {
	if len(d.tokens) == 0 {
		return 1
	}
	seen := make(map[string]struct{}, len(d.tokens))
	for _, t := range d.tokens {
		seen[t.word] = struct{}{}
	}
	return float64(len(seen)) / float64(len(d.tokens))
}

func wordSet(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[cases.Fold().String(w)] = true
	}
	return m
}

func phraseList(phrases ...string) [][]string {
	out := make([][]string, 0, len(phrases))
	for _, p := range phrases {
		var words []string
		for _, t := range analyze(p).tokens {
			words = append(words, t.word)
		}
		out = append(out, words)
	}
	return out
}
