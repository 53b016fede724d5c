// Package score rates the quality of an AI-chat prompt with a fixed,
// explainable set of rules. Scoring is pure: no I/O, no shared mutable state.
package score

const maxScore = 100

// Length bands, in runes.
const (
	minLength   = 20
	maxLength   = 500
	idealMin    = 50
	idealMax    = 250
	uniqueHigh  = 0.8
	uniqueFloor = 0.5
)

var (
	actionVerbs   = wordSet("explain", "generate", "compare", "summarize", "write", "list")
	specificTerms = phraseList("for", "to a", "to an", "as a", "as an", "in the style of", "json", "table")
	vagueWords    = wordSet("good", "nice", "interesting", "cool", "beautiful")
)

// Breakdown maps each dimension to the penalty deducted for it.
type Breakdown map[Dimension]int

// Total sums the penalties.
func (b Breakdown) Total() int {
	total := 0
	for _, p := range b {
		total += p
	}
	return total
}

// Result is the outcome of scoring one prompt.
type Result struct {
	Score     int       `json:"score"`
	Breakdown Breakdown `json:"breakdown"`
	Tips      []string  `json:"tips"`
}

// Score computes the quality score, penalty breakdown, and top tips for text.
// It accepts any string, including the empty one.
func Score(text string) Result {
	doc := analyze(text)

	b := Breakdown{
		DimensionLength:      lengthPenalty(doc.runes),
		DimensionClarity:     clarityPenalty(doc),
		DimensionSpecificity: specificityPenalty(doc),
		DimensionVagueness:   vaguenessPenalty(doc),
		DimensionDuplication: duplicationPenalty(doc),
		DimensionVariety:     varietyPenalty(doc),
	}

	ranked := RankTips(b, doc.runes)
	Truncate(&ranked, maxTips)
	tips := make([]string, 0, len(ranked))
	for _, t := range ranked {
		tips = append(tips, t.Text)
	}

	return Result{
		Score:     clamp(maxScore - b.Total()),
		Breakdown: b,
		Tips:      tips,
	}
}

func lengthPenalty(n int) int {
	w := DimensionLength.Weight()
	switch {
	case n < minLength || n > maxLength:
		return w
	case n < idealMin || n > idealMax:
		return w / 2
	default:
		return 0
	}
}

func clarityPenalty(d document) int {
	for _, r := range d.text {
		if r == '?' || r == '.' {
			return 0
		}
	}
	if d.hasAnyWord(actionVerbs) {
		return 0
	}
	return DimensionClarity.Weight()
}

func specificityPenalty(d document) int {
	for _, p := range specificTerms {
		if d.hasPhrase(p) {
			return 0
		}
	}
	return DimensionSpecificity.Weight()
}

func vaguenessPenalty(d document) int {
	if d.hasAnyWord(vagueWords) {
		return DimensionVagueness.Weight()
	}
	return 0
}

func duplicationPenalty(d document) int {
	if d.hasAdjacentRepeat() {
		return DimensionDuplication.Weight()
	}
	return 0
}

func varietyPenalty(d document) int {
	w := DimensionVariety.Weight()
	switch ratio := d.uniqueRatio(); {
	case ratio >= uniqueHigh:
		return 0
	case ratio >= uniqueFloor:
		return w / 2
	default:
		return w
	}
}

func clamp(s int) int {
	if s < 0 {
		return 0
	}
	if s > maxScore {
		return maxScore
	}
	return s
}
