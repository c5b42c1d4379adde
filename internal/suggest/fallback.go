package suggest

import (
	"fmt"
	"strings"
)

// fallbackCategory groups keyword-matched offline suggestions per kind.
type fallbackCategory struct {
	keywords []string
	medium   []string
	short    []string
	habit    []string
}

var fallbackCategories = []fallbackCategory{
	{
		keywords: []string{"save", "money", "budget", "invest", "debt"},
		medium: []string{
			"Build a monthly budget you can stick to",
			"Set up an automatic savings transfer",
			"Cut one recurring expense you don't need",
		},
		short: []string{
			"List all monthly expenses for %q",
			"Open a dedicated savings account",
			"Cancel one unused subscription",
		},
		habit: []string{
			"Log every purchase at the end of the day",
			"Skip one impulse buy per day",
			"Review your budget for five minutes",
		},
	},
	{
		keywords: []string{"fitness", "exercise", "run", "gym", "health", "weight"},
		medium: []string{
			"Train consistently three times a week",
			"Complete a beginner program end to end",
			"Improve your baseline endurance",
		},
		short: []string{
			"Schedule three workout slots this week",
			"Do one full session toward %q",
			"Find a training plan that fits your week",
		},
		habit: []string{
			"Walk for twenty minutes",
			"Stretch for five minutes after waking up",
			"Prepare your workout gear the night before",
		},
	},
	{
		keywords: []string{"learn", "skill", "study", "language", "course"},
		medium: []string{
			"Finish a structured course on the topic",
			"Practice deliberately every week",
			"Build one small project to apply what you learn",
		},
		short: []string{
			"Pick one course or book for %q",
			"Block two study sessions in your calendar",
			"Write down what you want to be able to do",
		},
		habit: []string{
			"Study for fifteen minutes",
			"Review yesterday's notes",
			"Practice one new thing and write it down",
		},
	},
	{
		keywords: []string{"travel", "visit", "trip", "abroad", "country"},
		medium: []string{
			"Save a dedicated travel fund",
			"Plan the route and season for the trip",
			"Sort out the paperwork early",
		},
		short: []string{
			"Estimate the total cost of %q",
			"Pick the month that works best",
			"Check passport and visa requirements",
		},
		habit: []string{
			"Put a small amount into the travel fund",
			"Read about one destination detail",
			"Learn three phrases of the local language",
		},
	},
	{
		keywords: []string{"read", "write", "book", "blog", "journal"},
		medium: []string{
			"Set a realistic yearly reading or writing target",
			"Build a shortlist of what to read or write next",
			"Share your progress with someone",
		},
		short: []string{
			"Pick the next three titles for %q",
			"Set up a distraction-free reading spot",
			"Outline the first chapter or post",
		},
		habit: []string{
			"Read ten pages",
			"Write two hundred words",
			"Note one idea worth keeping",
		},
	},
}

var genericFallbacks = fallbackCategory{
	medium: []string{
		"Break %q into three concrete milestones",
		"Find one person who has already done this and learn from them",
		"Set a first checkpoint four weeks from now",
	},
	short: []string{
		"Write down the very first step for %q",
		"Spend thirty minutes researching how others did it",
		"Tell someone about the goal to make it real",
	},
	habit: []string{
		"Spend ten minutes on it",
		"Note one small win from today",
		"Review tomorrow's single next step",
	},
}

// Fallback produces n deterministic offline suggestions keyed off the
// first few words of the parent text.
func Fallback(kind Kind, parent string, n int) []string {
	if n <= 0 {
		n = 3
	}
	cat := matchCategory(parent)

	var pool []string
	switch kind {
	case KindShortTerm:
		pool = cat.short
	case KindDailyHabit:
		pool = cat.habit
	default:
		pool = cat.medium
	}

	short := shorten(parent)
	out := make([]string, 0, n)
	for i := 0; len(out) < n; i++ {
		tmpl := pool[i%len(pool)]
		if strings.Contains(tmpl, "%q") {
			out = append(out, fmt.Sprintf(tmpl, short))
		} else {
			out = append(out, tmpl)
		}
	}
	return out
}

func matchCategory(parent string) fallbackCategory {
	lower := strings.ToLower(parent)
	for _, cat := range fallbackCategories {
		for _, kw := range cat.keywords {
			if strings.Contains(lower, kw) {
				return cat
			}
		}
	}
	return genericFallbacks
}

// shorten keeps the first few words of the goal text so templates stay
// readable.
func shorten(parent string) string {
	words := strings.Fields(parent)
	if len(words) > 5 {
		words = words[:5]
	}
	if len(words) == 0 {
		return "your goal"
	}
	return strings.Join(words, " ")
}
