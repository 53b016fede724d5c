package score

import "sort"

const maxTips = 3

// Tip is an actionable suggestion tied to a penalised dimension.
type Tip struct {
	Dimension Dimension `json:"dimension"`
	Loss      int       `json:"loss"`
	Text      string    `json:"text"`
}

// RankTips builds one tip per penalised dimension and sorts them by
// descending point loss, then by dimension order. length is the rune
// count of the prompt, used to tell "too short" from "too long".
func RankTips(b Breakdown, length int) []Tip {
	var tips []Tip
	for _, d := range dimensions {
		loss := b[d]
		if loss <= 0 {
			continue
		}
		tips = append(tips, Tip{Dimension: d, Loss: loss, Text: tipText(d, length)})
	}
	SortTips(tips)
	return tips
}

// SortTips sorts by loss descending, then by fixed dimension order.
func SortTips(tips []Tip) {
	sort.SliceStable(tips, func(i, j int) bool {
		if tips[i].Loss != tips[j].Loss {
			return tips[i].Loss > tips[j].Loss
		}
		return tips[i].Dimension.order() < tips[j].Dimension.order()
	})
}

// Truncate caps tips to max entries, defaulting to 3.
func Truncate(tips *[]Tip, max int) {
	if max <= 0 {
		max = maxTips
	}
	if len(*tips) > max {
		*tips = (*tips)[:max]
	}
}

func tipText(d Dimension, length int) string {
	switch d {
	case DimensionLength:
		if length > idealMax {
			return "Too long: narrow the focus to one clear request."
		}
		return "Too short: add context about what you need and who it is for."
	case DimensionClarity:
		return "Start with a clear action verb such as Explain, Compare, or Generate."
	case DimensionSpecificity:
		return `Name the audience or output format, e.g. "for beginners, as a table".`
	case DimensionVagueness:
		return `Replace vague words like "good" or "nice" with concrete traits.`
	case DimensionDuplication:
		return `Remove repeated words such as "very very".`
	case DimensionVariety:
		return "Vary your wording; too many words are repeated."
	default:
		return ""
	}
}
