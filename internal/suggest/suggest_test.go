package suggest

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// newTestClient points a client at a stub Gemini server returning the
// given status and body.
func newTestClient(t *testing.T, status int, body string) (*Client, *int) {
	t.Helper()
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)

	c := NewClientWithConfig(Config{
		APIKey:  "test-key",
		BaseURL: srv.URL,
		Model:   "gemini-2.5-flash",
		Timeout: 5 * time.Second,
	})
	return c, &calls
}

// candidateBody wraps text in a minimal generateContent response.
func candidateBody(text string) string {
	return fmt.Sprintf(`{"candidates":[{"content":{"parts":[{"text":%q}]}}]}`, text)
}

func TestSuggestParsesArray(t *testing.T) {
	c, _ := newTestClient(t, 200, candidateBody(`["one", "two", "three"]`))
	got := c.Suggest(context.Background(), KindMediumTerm, "travel the world", 3)
	want := []string{"one", "two", "three"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestSuggestStripsCodeFence(t *testing.T) {
	c, _ := newTestClient(t, 200, candidateBody("```json\n[\"a\", \"b\", \"c\"]\n```"))
	got := c.Suggest(context.Background(), KindShortTerm, "x", 3)
	if len(got) != 3 || got[0] != "a" {
		t.Fatalf("fenced array not parsed: %v", got)
	}
}

func TestSuggestExtractsArrayFromProse(t *testing.T) {
	c, _ := newTestClient(t, 200, candidateBody(`Sure! Here you go: ["a", "b", "c"] Hope that helps.`))
	got := c.Suggest(context.Background(), KindDailyHabit, "x", 3)
	if len(got) != 3 || got[2] != "c" {
		t.Fatalf("embedded array not parsed: %v", got)
	}
}

func TestSuggestPadsShortResponse(t *testing.T) {
	c, _ := newTestClient(t, 200, candidateBody(`["a", "b"]`))
	got := c.Suggest(context.Background(), KindMediumTerm, "x", 3)
	if len(got) != 3 {
		t.Fatalf("expected 3 items, got %d", len(got))
	}
	if got[2] != "a" {
		t.Fatalf("padding should repeat existing items, got %v", got)
	}
}

func TestSuggestTruncatesLongResponse(t *testing.T) {
	c, _ := newTestClient(t, 200, candidateBody(`["a","b","c","d","e"]`))
	got := c.Suggest(context.Background(), KindMediumTerm, "x", 3)
	if len(got) != 3 || got[2] != "c" {
		t.Fatalf("expected first 3 items, got %v", got)
	}
}

func TestSuggestFallsBackOnMalformed(t *testing.T) {
	c, _ := newTestClient(t, 200, candidateBody("I cannot answer in that format."))
	got := c.Suggest(context.Background(), KindMediumTerm, "save money for a house", 3)
	if len(got) != 3 {
		t.Fatalf("fallback must still yield 3 items, got %d", len(got))
	}
}

func TestSuggestFallsBackOnServerError(t *testing.T) {
	c, calls := newTestClient(t, 500, `{"error":{"message":"boom"}}`)
	got := c.Suggest(context.Background(), KindMediumTerm, "x", 3)
	if len(got) != 3 {
		t.Fatalf("fallback must still yield 3 items, got %d", len(got))
	}
	if *calls != 1 {
		t.Fatalf("exactly one attempt expected, got %d", *calls)
	}
}

func TestSuggestOfflineWithoutKey(t *testing.T) {
	c := NewClient("")
	got := c.Suggest(context.Background(), KindDailyHabit, "get fit", 3)
	if len(got) != 3 {
		t.Fatalf("offline client must fall back, got %v", got)
	}
}

func TestFallbackKeywordMatch(t *testing.T) {
	got := Fallback(KindMediumTerm, "save money for a house", 3)
	if len(got) != 3 {
		t.Fatalf("expected 3 items, got %d", len(got))
	}
	// The finance category should be picked over the generic pool.
	joined := strings.ToLower(strings.Join(got, " "))
	if !strings.Contains(joined, "budget") && !strings.Contains(joined, "savings") {
		t.Fatalf("expected finance-flavored fallbacks, got %v", got)
	}

	// Same input, same output.
	again := Fallback(KindMediumTerm, "save money for a house", 3)
	for i := range got {
		if got[i] != again[i] {
			t.Fatal("fallback is not deterministic")
		}
	}
}

func TestFallbackGenericTemplates(t *testing.T) {
	got := Fallback(KindShortTerm, "climb Mount Everest one day soon enough", 3)
	found := false
	for _, s := range got {
		if strings.Contains(s, "climb Mount Everest one day") {
			found = true
		}
	}
	if !found {
		t.Fatalf("templates should embed a shortened goal text: %v", got)
	}

	got = Fallback(KindMediumTerm, "", 2)
	if len(got) != 2 {
		t.Fatalf("expected 2 items for empty parent, got %v", got)
	}
}

func TestFallbackCyclesPool(t *testing.T) {
	got := Fallback(KindDailyHabit, "get fit at the gym", 7)
	if len(got) != 7 {
		t.Fatalf("expected 7 items, got %d", len(got))
	}
	if got[0] != got[3] {
		t.Fatalf("pool of 3 should cycle at index 3: %v", got)
	}
}

func TestAnalyze(t *testing.T) {
	c, _ := newTestClient(t, 200, candidateBody("A strong, focused plan."))
	got := c.Analyze(context.Background(), []string{"run a marathon"}, 3)
	if got != "A strong, focused plan." {
		t.Fatalf("unexpected analysis: %q", got)
	}
}

func TestAnalyzeNeverFails(t *testing.T) {
	c, _ := newTestClient(t, 503, "unavailable")
	got := c.Analyze(context.Background(), []string{"run a marathon"}, 3)
	if got != analyzeFallback {
		t.Fatalf("expected fallback text, got %q", got)
	}

	// Empty goal list resolves locally without a request.
	offline := NewClient("")
	if got := offline.Analyze(context.Background(), nil, 3); got != analyzeFallback {
		t.Fatalf("expected fallback text, got %q", got)
	}
}

func TestSetModel(t *testing.T) {
	c := NewClient("k")
	c.SetModel("gemini-2.5-pro")
	if c.Model() != "gemini-2.5-pro" {
		t.Fatalf("model not updated: %q", c.Model())
	}
	c.SetModel("   ")
	if c.Model() != "gemini-2.5-pro" {
		t.Fatal("blank model name should be ignored")
	}
}
