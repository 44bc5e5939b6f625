package property

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/krestn/HomeAI/internal/errors"
)

type fakeLister struct {
	properties []Property
}

func (f *fakeLister) ActiveProperties(_ context.Context, _ int64) ([]Property, error) {
	return f.properties, nil
}

var (
	mapleSt = Property{ID: 1, Address: "42 Maple St, Springfield, IL 62704", CityState: "Springfield, IL"}
	oakAve  = Property{ID: 2, Address: "780 Oak Ave, Naperville, IL 60540", CityState: "Naperville, IL"}
)

func TestResolveContextZeroProperties(t *testing.T) {
	r := NewResolver(&fakeLister{})

	_, err := r.ResolveContext(context.Background(), 7)
	require.Error(t, err)
	assert.True(t, apperrors.IsUserFacing(err))
	assert.Contains(t, err.Error(), NoPropertyMessage)
}

func TestResolveContextSingleProperty(t *testing.T) {
	r := NewResolver(&fakeLister{properties: []Property{mapleSt}})

	ctx, err := r.ResolveContext(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, ctx.Resolved)
	require.NotNil(t, ctx.Property)
	assert.Equal(t, int64(1), ctx.Property.ID)
	assert.Len(t, ctx.Options, 1)
}

func TestResolveContextMultipleProperties(t *testing.T) {
	r := NewResolver(&fakeLister{properties: []Property{mapleSt, oakAve}})

	ctx, err := r.ResolveContext(context.Background(), 7)
	require.NoError(t, err)
	assert.False(t, ctx.Resolved)
	assert.Nil(t, ctx.Property)
	assert.Len(t, ctx.Options, 2)
}

func TestInferFromText(t *testing.T) {
	options := []Property{mapleSt, oakAve}

	tests := []struct {
		name    string
		message string
		wantID  int64
	}{
		{"numeric id", "use property 2 please", 2},
		{"street token", "the roof at maple is leaking", 1},
		{"city token", "the naperville house", 2},
		{"full address substring", "I mean 780 Oak Ave, Naperville, IL 60540", 2},
		{"city state phrase", "springfield, il one", 1},
		{"no reference", "my faucet is leaking", 0},
		{"unknown id falls through to tokens", "house 99 on oak", 2},
		{"short tokens ignored", "it is at an av", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InferFromText(tt.message, options)
			if tt.wantID == 0 {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.wantID, got.ID)
		})
	}
}

func TestSelectByID(t *testing.T) {
	options := []Property{mapleSt, oakAve}

	assert.Equal(t, &options[1], SelectByID(options, 2))
	assert.Nil(t, SelectByID(options, 99))
}

func TestFormatOptionList(t *testing.T) {
	assert.Equal(t, "- No properties available.", FormatOptionList(nil))
	assert.Equal(t,
		"- 42 Maple St, Springfield, IL 62704, Springfield, IL\n- 780 Oak Ave, Naperville, IL 60540, Naperville, IL",
		FormatOptionList([]Property{mapleSt, oakAve}))
}
