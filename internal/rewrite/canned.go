package rewrite

import "fmt"

// Canned returns a deterministic rewrite for offline use.
func Canned(original string, c Category) string {
	switch c {
	case CategoryCreativeWriting:
		return fmt.Sprintf("Write an engaging and original piece about \"%s\". Develop compelling characters with clear motivations, create vivid settings that immerse the reader, use descriptive language that appeals to the senses, maintain consistent tone and pacing throughout, and ensure the narrative has a clear beginning, middle, and satisfying conclusion. Target length: 800-1200 words.", original)
	case CategoryResearch:
		return fmt.Sprintf("Conduct comprehensive research on \"%s\" and provide a detailed analysis. Include: 1) Current state and trends, 2) Historical context and evolution, 3) Key stakeholders and their perspectives, 4) Supporting data and statistics from reliable sources, 5) Potential implications and future outlook, 6) Actionable recommendations based on findings. Present in academic format with proper citations.", original)
	case CategoryProblemSolving:
		return fmt.Sprintf("Analyze and solve the following challenge: \"%s\". Break down your approach as follows: 1) Problem definition and scope, 2) Root cause analysis, 3) Generate multiple solution alternatives, 4) Evaluate each option with pros/cons, 5) Recommend the best solution with implementation steps, 6) Define success metrics and timeline. Provide practical, actionable guidance.", original)
	case CategoryImageGeneration:
		return fmt.Sprintf("Create a stunning, photorealistic image of \"%s\". Technical specifications: 4K resolution, professional photography quality, shot with a full-frame camera. Visual details: dramatic lighting with golden hour warmth, rich color saturation, sharp focus on subject with subtle depth of field, balanced composition using rule of thirds, include environmental context that enhances the subject. Style: cinematic, award-winning photography aesthetic.", original)
	default:
		return fmt.Sprintf("Please provide a comprehensive and detailed analysis of \"%s\". Structure your response with clear sections, include specific examples and actionable insights, and ensure the information is accurate and up-to-date. Present the information in a format that is easy to understand and implement.", original)
	}
}
