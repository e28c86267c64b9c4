package pokedex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "Giratina", want: "giratina-altered"},
		{in: "arceus-fire", want: "arceus**fire"},
		{in: "silvally-psychic", want: "silvally**psychic"},
		{in: "arceus-fairy", want: "arceus**fairy"},
		{in: "furfrou-kabuki", want: "furfrou"},
		{in: "Flabébé", want: "flabebe"},
		{in: " Pikachu ", want: "pikachu"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.in))
		})
	}
}

func TestParseOverride(t *testing.T) {
	species, types := ParseOverride("arceus**fire")
	assert.Equal(t, "arceus", species)
	assert.Equal(t, []string{"fire"}, types)

	species, types = ParseOverride("zapdos**electric**flying")
	assert.Equal(t, "zapdos", species)
	assert.Equal(t, []string{"electric", "flying"}, types)

	species, types = ParseOverride("pikachu")
	assert.Equal(t, "pikachu", species)
	assert.Nil(t, types)
}

func TestComputeMatchupNeutralDropped(t *testing.T) {
	m := ComputeMatchup(nil)
	assert.Empty(t, m.Multipliers)
	assert.Empty(t, m.Weak())
	assert.False(t, m.Quad("fire"))
}

func TestComputeMatchupImmunityWins(t *testing.T) {
	m := ComputeMatchup([]DamageRelations{
		{Type: "ghost", NoFrom: []string{"normal", "fighting"}},
		{Type: "normal", DoubleFrom: []string{"fighting"}, NoFrom: []string{"ghost"}},
	})
	assert.Equal(t, []string{"fighting", "ghost", "normal"}, m.Immune())
	assert.Empty(t, m.Weak())
}
