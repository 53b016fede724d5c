package rewrite

import "strings"

// Category selects the rewrite style.
type Category string

const (
	CategoryGeneral         Category = "General"
	CategoryCreativeWriting Category = "Creative Writing"
	CategoryResearch        Category = "Research"
	CategoryProblemSolving  Category = "Problem Solving"
	CategoryImageGeneration Category = "Image Generation"
)

var categories = [...]Category{
	CategoryGeneral,
	CategoryCreativeWriting,
	CategoryResearch,
	CategoryProblemSolving,
	CategoryImageGeneration,
}

// Categories returns every category in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories[:])
	return out
}

// ParseCategory maps a client-supplied name onto a category. It never fails:
// unknown or empty names select General. Matching ignores case and
// surrounding space, and accepts the extension's short "Image Gen" label.
func ParseCategory(s string) Category {
	name := strings.TrimSpace(s)
	if strings.EqualFold(name, "Image Gen") {
		return CategoryImageGeneration
	}
	for _, c := range categories {
		if strings.EqualFold(name, string(c)) {
			return c
		}
	}
	return CategoryGeneral
}

func (c Category) Valid() bool {
	switch c {
	case CategoryGeneral, CategoryCreativeWriting, CategoryResearch, CategoryProblemSolving, CategoryImageGeneration:
		return true
	}
	return false
}

// Instruction returns the category-specific guidance appended to the base prompt.
func (c Category) Instruction() string {
	switch c {
	case CategoryCreativeWriting:
		return "Enhance with specific genre, tone, length, audience, and style requirements. Include character details, setting, and narrative structure guidance. Encourage rich detail and vivid descriptions."
	case CategoryResearch:
		return "Structure for comprehensive analysis including scope, methodology, sources, depth of analysis, and specific deliverables expected. Break down into clear sections covering current trends, historical context, and evidence-backed information."
	case CategoryProblemSolving:
		return "Frame with clear problem definition, constraints, desired outcome, step-by-step approach, and success criteria. Provide practical, solution-oriented guidance with actionable steps."
	case CategoryImageGeneration:
		return "Add detailed visual descriptions including composition, lighting, style, mood, technical specifications, and artistic references. Specify image quality, camera settings, and visual elements clearly."
	default:
		return "Focus on clarity, specificity, and actionable instructions. Add context that would help any AI understand exactly what is needed. Ensure the response will be comprehensive and well-structured."
	}
}
