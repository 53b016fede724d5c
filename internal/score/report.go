package score

import (
	"fmt"
	"unicode/utf8"
)

// Grade is the colour band a score falls into.
type Grade string

const (
	GradeGreen Grade = "green"
	GradeAmber Grade = "amber"
	GradeRed   Grade = "red"
)

func (g Grade) Valid() bool {
	switch g {
	case GradeGreen, GradeAmber, GradeRed:
		return true
	}
	return false
}

// SolidThreshold is the score at which a rewrite is no longer suggested.
const SolidThreshold = 90

// GradeOf returns green for 75 and up, amber for 50 and up, red otherwise.
func GradeOf(s int) Grade {
	switch {
	case s >= 75:
		return GradeGreen
	case s >= 50:
		return GradeAmber
	default:
		return GradeRed
	}
}

// Grade returns the colour band of the result.
func (r Result) Grade() Grade { return GradeOf(r.Score) }

// Solid reports whether the prompt is good enough that a rewrite is not offered.
func (r Result) Solid() bool { return r.Score >= SolidThreshold }

// Advice is the per-dimension verdict shown in a full report.
type Advice struct {
	Dimension Dimension `json:"dimension"`
	Title     string    `json:"title"`
	Passed    bool      `json:"passed"`
	Penalty   int       `json:"penalty"`
	Weight    int       `json:"weight"`
	Message   string    `json:"message"`
}

// Report is a Result expanded with every dimension's verdict.
type Report struct {
	Result
	Grade  Grade    `json:"grade"`
	Solid  bool     `json:"solid"`
	Length int      `json:"length"`
	Passed []Advice `json:"passed"`
	Failed []Advice `json:"failed"`
}

// NewReport scores text and splits the dimensions into passed and failed.
func NewReport(text string) Report {
	res := Score(text)
	n := utf8.RuneCountInString(text)
	rep := Report{
		Result: res,
		Grade:  res.Grade(),
		Solid:  res.Solid(),
		Length: n,
		Passed: []Advice{},
		Failed: []Advice{},
	}
	for _, d := range dimensions {
		a := Advice{
			Dimension: d,
			Title:     d.Title(),
			Penalty:   res.Breakdown[d],
			Weight:    d.Weight(),
		}
		if a.Penalty > 0 {
			a.Message = failMessage(d, n)
			rep.Failed = append(rep.Failed, a)
			continue
		}
		a.Passed = true
		a.Message = fmt.Sprintf("Nice job keeping %s on point.", d)
		rep.Passed = append(rep.Passed, a)
	}
	return rep
}

func failMessage(d Dimension, length int) string {
	switch d {
	case DimensionLength:
		return fmt.Sprintf("Your prompt is %d characters; models work best at %d-%d. Trim fluff or add context as needed.", length, idealMin, idealMax)
	case DimensionClarity:
		return "No decisive verb detected. Start with a verb: 'Explain', 'Compare', 'Generate'."
	case DimensionSpecificity:
		return "Audience / output style missing. Add: 'for beginner investors, in a 5-point table'."
	case DimensionVagueness:
		return "Contains fuzzy words like 'good'. Replace with explicit traits: 'cost-effective', 'three detailed steps'."
	case DimensionDuplication:
		return "Repeated word detected (e.g. 'very very'). Delete duplicates for clarity."
	case DimensionVariety:
		return "Same words repeated. Swap in synonyms: evaluate, analyse, assess."
	default:
		return ""
	}
}
