package property

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "homeai.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestActiveProperties(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	mapleID, err := store.AddProperty(ctx, Record{
		StreetAddress:    "42 Maple St",
		City:             "Springfield",
		State:            "IL",
		PostalCode:       "62704",
		FormattedAddress: "42 Maple St, Springfield, IL 62704",
	})
	require.NoError(t, err)

	oakID, err := store.AddProperty(ctx, Record{
		StreetAddress:    "780 Oak Ave",
		City:             "Naperville",
		State:            "IL",
		PostalCode:       "60540",
		FormattedAddress: "780 Oak Ave, Naperville, IL 60540",
	})
	require.NoError(t, err)

	require.NoError(t, store.Associate(ctx, 7, mapleID, "owner"))
	require.NoError(t, store.Associate(ctx, 7, oakID, "owner"))
	require.NoError(t, store.Associate(ctx, 8, oakID, "renter"))

	properties, err := store.ActiveProperties(ctx, 7)
	require.NoError(t, err)
	require.Len(t, properties, 2)

	// Ordered by property id, projected for the agent.
	assert.Equal(t, mapleID, properties[0].ID)
	assert.Equal(t, "42 Maple St, Springfield, IL 62704", properties[0].Address)
	assert.Equal(t, "Springfield, IL", properties[0].CityState)
	assert.Equal(t, oakID, properties[1].ID)

	other, err := store.ActiveProperties(ctx, 8)
	require.NoError(t, err)
	require.Len(t, other, 1)
	assert.Equal(t, oakID, other[0].ID)
}

func TestDeactivateHidesProperty(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	id, err := store.AddProperty(ctx, Record{
		StreetAddress:    "42 Maple St",
		City:             "Springfield",
		State:            "IL",
		PostalCode:       "62704",
		FormattedAddress: "42 Maple St, Springfield, IL 62704",
	})
	require.NoError(t, err)
	require.NoError(t, store.Associate(ctx, 7, id, "owner"))

	require.NoError(t, store.Deactivate(ctx, 7, id))

	properties, err := store.ActiveProperties(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, properties)
}

func TestActivePropertiesNoAssociations(t *testing.T) {
	store := openTestStore(t)

	properties, err := store.ActiveProperties(context.Background(), 42)
	require.NoError(t, err)
	assert.Empty(t, properties)
}
