// Package render formats score reports for the terminal and for Markdown.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dshills/promptcritic/internal/score"
)

// Badge colours per grade.
var gradeColors = map[score.Grade]lipgloss.Color{
	score.GradeGreen: lipgloss.Color("#2ecc71"),
	score.GradeAmber: lipgloss.Color("#f39c12"),
	score.GradeRed:   lipgloss.Color("#e74c3c"),
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#9e9e9e"))
)

// Markdown renders a report as Markdown.
func Markdown(r score.Report) string {
	var b strings.Builder

	b.WriteString("# Prompt Score\n\n")
	fmt.Fprintf(&b, "**Score:** %d / 100 (%s)\n", r.Score, r.Grade)
	fmt.Fprintf(&b, "**Length:** %d characters\n\n", r.Length)
	if r.Solid {
		b.WriteString("Solid prompt. No rewrite needed.\n\n")
	}

	if len(r.Failed) > 0 {
		b.WriteString("## Needs Work\n\n")
		for _, a := range r.Failed {
			fmt.Fprintf(&b, "- **%s** (-%d/%d): %s\n", a.Title, a.Penalty, a.Weight, a.Message)
		}
		b.WriteString("\n")
	}

	if len(r.Passed) > 0 {
		b.WriteString("## Looks Good\n\n")
		for _, a := range r.Passed {
			fmt.Fprintf(&b, "- **%s**\n", a.Title)
		}
		b.WriteString("\n")
	}

	if len(r.Tips) > 0 {
		b.WriteString("## Top Tips\n\n")
		for i, tip := range r.Tips {
			fmt.Fprintf(&b, "%d. %s\n", i+1, tip)
		}
		b.WriteString("\n")
	}

	return b.String()
}

// Text renders a compact terminal summary. When styled is false no escape
// sequences are emitted.
func Text(r score.Report, styled bool) string {
	paint := func(s lipgloss.Style, text string) string {
		if !styled {
			return text
		}
		return s.Render(text)
	}
	scoreStyle := lipgloss.NewStyle().Bold(true).Foreground(gradeColors[r.Grade])

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", paint(titleStyle, "Score:"), paint(scoreStyle, fmt.Sprintf("%d/100 (%s)", r.Score, r.Grade)))
	for _, a := range r.Failed {
		fmt.Fprintf(&b, "  x %s %s\n", a.Title, paint(mutedStyle, fmt.Sprintf("-%d", a.Penalty)))
	}
	for _, a := range r.Passed {
		fmt.Fprintf(&b, "  ✓ %s\n", a.Title)
	}
	for _, tip := range r.Tips {
		fmt.Fprintf(&b, "- %s\n", tip)
	}
	if r.Solid {
		b.WriteString(paint(mutedStyle, "Solid prompt. No rewrite needed.") + "\n")
	}
	return b.String()
}
