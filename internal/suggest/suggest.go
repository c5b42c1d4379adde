package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Kind selects what is being suggested for a parent item.
type Kind int

const (
	KindMediumTerm Kind = iota
	KindShortTerm
	KindDailyHabit
)

const systemPrompt = "You help people break down personal goals. " +
	"Answer with a bare JSON array of short strings and nothing else."

func userPrompt(kind Kind, parent string, n int) string {
	switch kind {
	case KindShortTerm:
		return fmt.Sprintf(
			"Suggest %d concrete short-term actions (doable within weeks) for the medium-term goal: %q.", n, parent)
	case KindDailyHabit:
		return fmt.Sprintf(
			"Suggest %d small daily habits that support the goal: %q.", n, parent)
	default:
		return fmt.Sprintf(
			"Suggest %d medium-term goals (6-24 months) that would make this dream achievable: %q.", n, parent)
	}
}

// Suggest returns exactly n suggestion strings for the parent item. The
// upstream call gets one attempt; short, empty, malformed or failed
// responses are normalized or replaced by deterministic fallbacks, so the
// result is always usable.
func (c *Client) Suggest(ctx context.Context, kind Kind, parent string, n int) []string {
	if n <= 0 {
		n = 3
	}
	text, err := c.complete(ctx, systemPrompt, userPrompt(kind, parent, n))
	if err == nil {
		if items := normalize(extractArray(text), n); items != nil {
			return items
		}
	}
	return Fallback(kind, parent, n)
}

// fencedRe strips markdown code fences around the payload.
var fencedRe = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")

// arrayRe pulls a JSON array out of surrounding prose.
var arrayRe = regexp.MustCompile(`(?s)\[.*\]`)

// extractArray parses a JSON string array from model output, tolerating
// code fences and surrounding prose.
func extractArray(text string) []string {
	if m := fencedRe.FindStringSubmatch(text); m != nil {
		text = m[1]
	}
	var items []string
	if err := json.Unmarshal([]byte(text), &items); err != nil {
		m := arrayRe.FindString(text)
		if m == "" {
			return nil
		}
		if err := json.Unmarshal([]byte(m), &items); err != nil {
			return nil
		}
	}
	out := items[:0]
	for _, it := range items {
		if strings.TrimSpace(it) != "" {
			out = append(out, strings.TrimSpace(it))
		}
	}
	return out
}

// normalize trims or pads items to exactly n. Padding repeats existing
// items in order. An empty input yields nil, signalling fallback.
func normalize(items []string, n int) []string {
	if len(items) == 0 {
		return nil
	}
	if len(items) >= n {
		return items[:n]
	}
	out := make([]string, 0, n)
	out = append(out, items...)
	for i := 0; len(out) < n; i++ {
		out = append(out, items[i%len(items)])
	}
	return out
}
