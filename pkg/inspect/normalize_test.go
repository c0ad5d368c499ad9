package inspect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/donaldgifford/tradein-valuator/pkg/types"
)

func TestNormalizeDisplay(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want domain.DisplayImageStatus
	}{
		{"OK", domain.DisplayOK},
		{"  perfecta ", domain.DisplayOK},
		{"PIX", domain.DisplayPixels},
		{"Dead Pixels", domain.DisplayPixels},
		{"líneas", domain.DisplayLines},
		{"LINES", domain.DisplayLines},
		{"Burn-In", domain.DisplayBurn},
		{"manchas", domain.DisplayMura},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()
			got, err := NormalizeDisplay(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeGlass(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want domain.GlassStatus
	}{
		{"NONE", domain.GlassNone},
		{"sin rayas", domain.GlassNone},
		{"micro-rayas", domain.GlassMicro},
		{"Micro  Scratches", domain.GlassMicro},
		{"visible", domain.GlassVisible},
		{"rayas profundas", domain.GlassDeep},
		{"chipped", domain.GlassChip},
		{"ESTRELLADO", domain.GlassCrack},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()
			got, err := NormalizeGlass(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeHousing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want domain.HousingStatus
	}{
		{"SIN_SIGNOS", domain.HousingSinSignos},
		{"like new", domain.HousingSinSignos},
		{"mínimos", domain.HousingMinimos},
		{"ALGUNOS", domain.HousingAlgunos},
		{"DESGASTE_VISIBLE", domain.HousingDesgasteVisible},
		{"visible-wear", domain.HousingDesgasteVisible},
		{"doblado", domain.HousingDoblado},
		{"bent", domain.HousingDoblado},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()
			got, err := NormalizeHousing(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Every enum value must be reachable from its own wire name.
func TestNormalize_IdentityForEveryEnumValue(t *testing.T) {
	t.Parallel()

	for _, s := range domain.AllDisplayImageStatuses() {
		got, err := NormalizeDisplay(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
	for _, s := range domain.AllGlassStatuses() {
		got, err := NormalizeGlass(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
	for _, s := range domain.AllHousingStatuses() {
		got, err := NormalizeHousing(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
	for _, s := range domain.AllPhysicalConditions() {
		got, err := NormalizePhysical(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
}

func TestNormalize_Unknown(t *testing.T) {
	t.Parallel()

	_, err := NormalizeGlass("shattered into dust")
	require.ErrorIs(t, err, ErrUnknownAnswer)
	assert.Contains(t, err.Error(), "glass")

	_, err = NormalizeDisplay("")
	require.ErrorIs(t, err, ErrUnknownAnswer)

	_, err = NormalizePhysical("mint")
	require.ErrorIs(t, err, ErrUnknownAnswer)
}

func TestNormalizeKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want string
	}{
		{"  Rayas   Profundas ", "rayas profundas"},
		{"SIGNOS MÍNIMOS", "signos minimos"},
		{"desgaste_visible", "desgaste visible"},
		{"burn-in", "burn in"},
		{"pixeles\tmuertos", "pixeles muertos"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, normalizeKey(tt.raw))
		})
	}
}
