package rewrite

import (
	"fmt"
	"strings"
)

// MaxImprovedLength is the length cap the model is asked to respect.
const MaxImprovedLength = 500

var basePrompt = fmt.Sprintf(`You are an expert prompt engineer. Your job is to take rough, unclear prompts and transform them into clear, specific, and effective prompts that will get better results from AI systems.

Guidelines:
- Be specific and detailed
- Add context and constraints where helpful
- Structure the prompt logically
- Include desired format/style when relevant
- Make it actionable and clear
- Preserve the original intent while enhancing clarity
- Limit the improved prompt to %d characters maximum

Transform the user's input into a much better prompt:`, MaxImprovedLength)

// BuildPrompt assembles the model prompt for one rewrite.
func BuildPrompt(original string, c Category) string {
	var b strings.Builder
	b.WriteString(basePrompt)
	b.WriteString("\n\n")
	b.WriteString(c.Instruction())
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Original prompt: \"%s\"", original)
	return b.String()
}
