// Package classifier provides intent classification for homeowner messages.
//
// Classification is purely rule-based: fixed word-boundary patterns decide
// whether a message is about weather, documents, or reminders, or needs no
// property context at all. The orchestrator checks weather before documents
// when both match.
package classifier

import "strings"

// Result holds the intent flags for a single message.
type Result struct {
	IsWeather      bool
	IsDocument     bool
	IsReminderLike bool

	// IsGeneral is true when the message matches any non-property pattern
	// or any reminder pattern: such messages may be answered without
	// resolving a property.
	IsGeneral bool
}

// Classify tags a message with intent flags. Pure function; an empty or
// whitespace-only message yields the zero Result.
func Classify(message string) Result {
	text := strings.ToLower(strings.TrimSpace(message))
	if text == "" {
		return Result{}
	}

	r := Result{
		IsWeather:      anyMatch(weatherPatterns, text),
		IsDocument:     anyMatch(documentPatterns, text),
		IsReminderLike: anyMatch(reminderPatterns, text),
	}
	r.IsGeneral = anyMatch(generalPatterns, text) || r.IsReminderLike
	return r
}
