// Package property handles registered properties: storage, user
// associations, and resolving which property a message refers to.
package property

import "fmt"

// Property is the projection of a stored property that the dialogue core
// works with. Read-only once created.
type Property struct {
	ID        int64  `json:"id"`
	Address   string `json:"address"`
	CityState string `json:"city_state"`
}

// Record is the full stored row.
type Record struct {
	ID            int64
	StreetAddress string
	City          string
	State         string
	PostalCode    string

	// FormattedAddress is the display form, e.g. "123 Main St, Springfield, IL 62704".
	FormattedAddress string
}

// Project converts a stored record into the agent-facing projection.
func (r Record) Project() Property {
	return Property{
		ID:        r.ID,
		Address:   r.FormattedAddress,
		CityState: fmt.Sprintf("%s, %s", r.City, r.State),
	}
}
