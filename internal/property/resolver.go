package property

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	apperrors "github.com/krestn/HomeAI/internal/errors"
)

// NoPropertyMessage is returned as the agent reply for users with no
// active property association.
const NoPropertyMessage = "No property found for your account. Please add a property first."

// InvalidSelectionMessage is returned when an explicit property id does not
// match any of the user's properties.
const InvalidSelectionMessage = "Invalid property selection."

// Lister is the persistence-layer surface the resolver needs.
type Lister interface {
	ActiveProperties(ctx context.Context, userID int64) ([]Property, error)
}

// Context is the outcome of resolving a user's property situation.
type Context struct {
	// Resolved is true when exactly one property applies.
	Resolved bool

	// Property is the resolved property when Resolved is true.
	Property *Property

	// Options lists every active property, in store order.
	Options []Property
}

// Resolver determines which of a user's properties a conversation is about.
type Resolver struct {
	store Lister
}

// NewResolver creates a resolver backed by the given store.
func NewResolver(store Lister) *Resolver {
	return &Resolver{store: store}
}

// ResolveContext loads the user's active properties and classifies the
// situation. Zero properties yields a user-facing error whose message is
// the agent reply.
func (r *Resolver) ResolveContext(ctx context.Context, userID int64) (*Context, error) {
	properties, err := r.store.ActiveProperties(ctx, userID)
	if err != nil {
		return nil, err
	}

	if len(properties) == 0 {
		return nil, apperrors.UserFacing(apperrors.CodeNoProperties, NoPropertyMessage)
	}

	if len(properties) == 1 {
		return &Context{
			Resolved: true,
			Property: &properties[0],
			Options:  properties,
		}, nil
	}

	return &Context{Options: properties}, nil
}

// SelectByID returns the option with the given id, or nil if the id does
// not belong to any option.
func SelectByID(options []Property, id int64) *Property {
	for i := range options {
		if options[i].ID == id {
			return &options[i]
		}
	}
	return nil
}

var (
	numberPattern = regexp.MustCompile(`\d+`)
	tokenPattern  = regexp.MustCompile(`[a-z0-9]+`)
)

// InferFromText attempts to infer which property the user referenced in
// free-form text. Supports matching by property id or address/city strings;
// the first option satisfying any rule wins.
func InferFromText(message string, options []Property) *Property {
	text := strings.ToLower(message)
	tokens := tokenPattern.FindAllString(text, -1)

	// Look for explicit numeric ids in the message.
	for _, tok := range numberPattern.FindAllString(message, -1) {
		id, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			continue
		}
		if p := SelectByID(options, id); p != nil {
			return p
		}
	}

	// Fall back to address/city substring matching.
	for i := range options {
		address := strings.ToLower(options[i].Address)
		cityState := strings.ToLower(options[i].CityState)

		if strings.Contains(text, address) || strings.Contains(address, text) {
			return &options[i]
		}
		if strings.Contains(text, cityState) || strings.Contains(cityState, text) {
			return &options[i]
		}

		for _, tok := range tokens {
			if len(tok) < 3 {
				continue
			}
			if strings.Contains(address, tok) || strings.Contains(cityState, tok) {
				return &options[i]
			}
		}
	}

	return nil
}

// FormatSummary renders one property per line for prompt injection.
func FormatSummary(properties []Property) string {
	lines := make([]string, 0, len(properties))
	for _, p := range properties {
		lines = append(lines, p.Address+" - "+p.CityState)
	}
	return strings.Join(lines, "\n")
}

// FormatOptionList renders the disambiguation candidate list.
func FormatOptionList(options []Property) string {
	if len(options) == 0 {
		return "- No properties available."
	}
	lines := make([]string, 0, len(options))
	for _, p := range options {
		lines = append(lines, "- "+p.Address+", "+p.CityState)
	}
	return strings.Join(lines, "\n")
}
