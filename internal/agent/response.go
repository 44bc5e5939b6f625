package agent

import (
	"github.com/krestn/HomeAI/internal/memory"
	"github.com/krestn/HomeAI/internal/property"
)

// Response is the structured result of one conversation turn.
type Response struct {
	Reply string `json:"reply"`

	// ActiveProperty is the property this turn was grounded in, if any.
	ActiveProperty *property.Property `json:"active_property"`

	// AvailableProperties lists every property the user may select from.
	AvailableProperties []property.Property `json:"available_properties"`

	// RequiresPropertySelection tells the caller to prompt for a property
	// and retry with PropertyID set.
	RequiresPropertySelection bool `json:"requires_property_selection"`

	// Tasks is the user's follow-up task list after this turn.
	Tasks []memory.Task `json:"tasks"`
}

func buildResponse(reply string, active *property.Property, all []property.Property, requiresSelection bool, tasks []memory.Task) *Response {
	if all == nil {
		all = []property.Property{}
	}
	if tasks == nil {
		tasks = []memory.Task{}
	}
	return &Response{
		Reply:                     reply,
		ActiveProperty:            active,
		AvailableProperties:       all,
		RequiresPropertySelection: requiresSelection,
		Tasks:                     tasks,
	}
}
