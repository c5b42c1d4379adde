package suggest

import (
	"context"
	"fmt"
	"strings"
)

const analyzeFallback = "Your plan is taking shape. Small consistent steps " +
	"will carry you further than any single big push, so keep showing up."

// Analyze asks for a short free-form assessment of the collected goals.
// It follows the same never-fail contract as Suggest: any upstream
// problem yields a static encouraging sentence.
func (c *Client) Analyze(ctx context.Context, goals []string, timelineYears int) string {
	cleaned := make([]string, 0, len(goals))
	for _, g := range goals {
		if strings.TrimSpace(g) != "" {
			cleaned = append(cleaned, strings.TrimSpace(g))
		}
	}
	if len(cleaned) == 0 {
		return analyzeFallback
	}

	prompt := fmt.Sprintf(
		"Someone plans to achieve these goals within %d years:\n- %s\n"+
			"In two or three encouraging sentences, tell them what stands out "+
			"about the plan and one thing to watch out for. Plain prose, no lists.",
		timelineYears, strings.Join(cleaned, "\n- "))

	text, err := c.complete(ctx,
		"You are a supportive personal coach. Answer briefly in plain prose.",
		prompt)
	if err != nil || strings.TrimSpace(text) == "" {
		return analyzeFallback
	}
	return text
}
