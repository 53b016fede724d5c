package score

import "fmt"

// Dimension is one independently scored aspect of prompt quality.
type Dimension string

const (
	DimensionLength      Dimension = "length"
	DimensionClarity     Dimension = "clarity"
	DimensionSpecificity Dimension = "specificity"
	DimensionVagueness   Dimension = "vagueness"
	DimensionDuplication Dimension = "duplication"
	DimensionVariety     Dimension = "variety"
)

// dimensions is the fixed enumeration, in tie-break order.
var dimensions = [...]Dimension{
	DimensionLength,
	DimensionClarity,
	DimensionSpecificity,
	DimensionVagueness,
	DimensionDuplication,
	DimensionVariety,
}

// Dimensions returns every dimension in tie-break order.
func Dimensions() []Dimension {
	out := make([]Dimension, len(dimensions))
	copy(out, dimensions[:])
	return out
}

func (d Dimension) Valid() bool {
	switch d {
	case DimensionLength, DimensionClarity, DimensionSpecificity,
		DimensionVagueness, DimensionDuplication, DimensionVariety:
		return true
	}
	return false
}

// Weight returns the maximum penalty the dimension can contribute.
func (d Dimension) Weight() int {
	switch d {
	case DimensionLength:
		return 25
	case DimensionClarity, DimensionSpecificity, DimensionVagueness:
		return 15
	case DimensionDuplication:
		return 10
	case DimensionVariety:
		return 20
	default:
		return 0
	}
}

// order returns a sort key (lower = earlier).
func (d Dimension) order() int {
	for i, dim := range dimensions {
		if dim == d {
			return i
		}
	}
	return len(dimensions)
}

// Title is the short label shown next to a dimension.
func (d Dimension) Title() string {
	switch d {
	case DimensionLength:
		return "Length"
	case DimensionClarity:
		return "Clear action"
	case DimensionSpecificity:
		return "Audience & format"
	case DimensionVagueness:
		return "Avoid vagueness"
	case DimensionDuplication:
		return "No repetition"
	case DimensionVariety:
		return "Word variety"
	default:
		return string(d)
	}
}

// TotalWeight is the sum of all dimension weights.
func TotalWeight() int {
	total := 0
	for _, d := range dimensions {
		total += d.Weight()
	}
	return total
}

// ValidateWeights reports an error unless the weights sum to exactly 100.
func ValidateWeights() error {
	if got := TotalWeight(); got != maxScore {
		return fmt.Errorf("score.ValidateWeights: weights sum to %d, must sum to %d", got, maxScore)
	}
	return nil
}
