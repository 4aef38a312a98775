// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/socialcopy/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// previewLength is how much of a copy text to show per variant
	previewLength = 50
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most max runes, marking the cut with an
// ellipsis. Slicing by rune keeps multi-byte text intact.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

// PrintSelection outputs the resolved platform, tone, language and content
// mode for a generation run.
func (p *Printer) PrintSelection(req *types.GenerateCopyRequest) {
	if req == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Platform:  %s (limit %d)\n", req.Platform.Name, req.Platform.Limit))
	sb.WriteString(fmt.Sprintf("Tone:      %s\n", req.Tone.Name))
	sb.WriteString(fmt.Sprintf("Language:  %s\n", req.Language.Label))
	sb.WriteString(fmt.Sprintf("Mode:      %s\n", req.ContentMode.Label))
	sb.WriteString(fmt.Sprintf("Content:   %d characters", len([]rune(req.Content))))

	p.printBox("GENERATION REQUEST", sb.String())
}

// PrintCopyBatch outputs each generated variant with its quality scores.
func (p *Printer) PrintCopyBatch(items []types.GeneratedCopy) {
	if len(items) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Generated %d variants:\n\n", len(items)))

	for i, item := range items {
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, truncate(item.Text, previewLength)))
		sb.WriteString(fmt.Sprintf("    Readability: %d  Engagement: %d  CTA: %d\n",
			item.Score.Readability, item.Score.Engagement, item.Score.CTA))
		if len(item.Score.Notes) > 0 {
			notes := truncate(strings.Join(item.Score.Notes, ", "), 45)
			sb.WriteString(fmt.Sprintf("    Notes: %s\n", notes))
		}
		if item.ImageURL != "" {
			sb.WriteString("    Image: rendered\n")
		}
		if i < len(items)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("GENERATED COPY", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintImagePrompts outputs the visual prompt attached to each variant.
func (p *Printer) PrintImagePrompts(items []types.GeneratedCopy) {
	if len(items) == 0 {
		return
	}

	var sb strings.Builder
	for i, item := range items {
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, truncate(item.ImagePrompt, previewLength)))
		if i < len(items)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("IMAGE PROMPTS", strings.TrimSuffix(sb.String(), "\n"))
}
