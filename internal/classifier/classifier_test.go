package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    Result
	}{
		{
			name:    "weather question",
			message: "What's the weather like?",
			want:    Result{IsWeather: true, IsGeneral: true},
		},
		{
			name:    "forecast term",
			message: "any rain in the forecast",
			want:    Result{IsWeather: true, IsGeneral: true},
		},
		{
			name:    "document question",
			message: "Can you summarize the PDF I uploaded?",
			want:    Result{IsDocument: true},
		},
		{
			name:    "reminder request",
			message: "remind me to call the plumber",
			want:    Result{IsReminderLike: true, IsGeneral: true},
		},
		{
			name:    "general question",
			message: "what is an escrow account",
			want:    Result{IsGeneral: true},
		},
		{
			name:    "joke",
			message: "tell me a joke",
			want:    Result{IsGeneral: true},
		},
		{
			name:    "property question",
			message: "How much is my home worth?",
			want:    Result{},
		},
		{
			name:    "empty",
			message: "",
			want:    Result{},
		},
		{
			name:    "whitespace only",
			message: "   \t  ",
			want:    Result{},
		},
		{
			name:    "weather and document both match",
			message: "does my uploaded document mention storm damage",
			want:    Result{IsWeather: true, IsDocument: true, IsGeneral: true},
		},
		{
			name:    "word boundary respected",
			message: "my grandfather clock is broken",
			want:    Result{},
		},
		{
			name:    "no substring match inside words",
			message: "the upstate house needs updates",
			want:    Result{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.message))
		})
	}
}
