package memory

import (
	"regexp"
	"strings"
)

// completionKeywords gate the task matcher: messages without any of these
// are never treated as a completion report.
var completionKeywords = []string{
	"complete",
	"completed",
	"finish",
	"finished",
	"done",
	"called",
	"emailed",
	"texted",
	"spoke",
	"talked",
	"reached out",
	"scheduled",
	"booked",
}

// taskStopwords are command verbs and filler that carry no signal when
// scoring a task description against a message.
var taskStopwords = map[string]struct{}{
	"call":     {},
	"remind":   {},
	"reminder": {},
	"email":    {},
	"text":     {},
	"follow":   {},
	"task":     {},
	"todo":     {},
	"please":   {},
	"need":     {},
	"contact":  {},
	"reach":    {},
	"talk":     {},
	"speak":    {},
	"tomorrow": {},
	"today":    {},
	"soon":     {},
	"check":    {},
	"look":     {},
}

var wordPattern = regexp.MustCompile(`[a-z0-9]+`)

// FindTaskMatch decides whether the message reports completion of one of
// the user's open tasks and returns that task's description. An exact
// substring match of a task description short-circuits; otherwise the open
// task whose significant tokens overlap the message most wins, with ties
// broken by first-seen order. Zero overlap means no match.
func FindTaskMatch(message string, tasks []Task) string {
	text := strings.ToLower(message)
	if text == "" || !containsAny(text, completionKeywords) {
		return ""
	}

	bestTask := ""
	bestScore := 0

	for _, task := range tasks {
		if task.Completed {
			continue
		}
		desc := strings.TrimSpace(task.Description)
		if desc == "" {
			continue
		}
		descLower := strings.ToLower(desc)
		if strings.Contains(text, descLower) {
			return desc
		}

		tokens := significantTokens(descLower)
		if len(tokens) == 0 {
			tokens = []string{descLower}
		}

		matches := 0
		for _, tok := range tokens {
			if strings.Contains(text, tok) {
				matches++
			}
		}
		if matches > bestScore {
			bestScore = matches
			bestTask = desc
		}
	}

	if bestScore > 0 {
		return bestTask
	}
	return ""
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func significantTokens(text string) []string {
	var out []string
	for _, tok := range wordPattern.FindAllString(text, -1) {
		if len(tok) < 3 {
			continue
		}
		if _, stop := taskStopwords[tok]; stop {
			continue
		}
		out = append(out, tok)
	}
	return out
}
