package pokedex

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const charizardJSON = `{
  "name": "charizard",
  "sprites": {"front_default": "%s/sprites/6.png"},
  "types": [
    {"slot": 1, "type": {"name": "fire"}},
    {"slot": 2, "type": {"name": "flying"}}
  ],
  "stats": [
    {"base_stat": 78, "stat": {"name": "hp"}},
    {"base_stat": 84, "stat": {"name": "attack"}},
    {"base_stat": 78, "stat": {"name": "defense"}},
    {"base_stat": 109, "stat": {"name": "special-attack"}},
    {"base_stat": 85, "stat": {"name": "special-defense"}},
    {"base_stat": 100, "stat": {"name": "speed"}}
  ]
}`

const arceusJSON = `{
  "name": "arceus",
  "sprites": {"front_default": null},
  "types": [{"slot": 1, "type": {"name": "normal"}}],
  "stats": [{"base_stat": 120, "stat": {"name": "hp"}}]
}`

var typeJSON = map[string]string{
	"fire": `{"damage_relations": {
		"double_damage_from": [{"name": "ground"}, {"name": "rock"}, {"name": "water"}],
		"half_damage_from": [{"name": "bug"}, {"name": "steel"}, {"name": "fire"}, {"name": "grass"}, {"name": "ice"}, {"name": "fairy"}],
		"no_damage_from": []}}`,
	"flying": `{"damage_relations": {
		"double_damage_from": [{"name": "rock"}, {"name": "electric"}, {"name": "ice"}],
		"half_damage_from": [{"name": "fighting"}, {"name": "bug"}, {"name": "grass"}],
		"no_damage_from": [{"name": "ground"}]}}`,
	"water": `{"damage_relations": {
		"double_damage_from": [{"name": "grass"}, {"name": "electric"}],
		"half_damage_from": [{"name": "steel"}, {"name": "fire"}, {"name": "water"}, {"name": "ice"}],
		"no_damage_from": []}}`,
}

func newPokeAPI(t *testing.T) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	mux := http.NewServeMux()
	var srv *httptest.Server
	mux.HandleFunc("/pokemon/{name}", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		switch r.PathValue("name") {
		case "charizard":
			fmt.Fprintf(w, charizardJSON, srv.URL)
		case "arceus":
			fmt.Fprint(w, arceusJSON)
		default:
			http.NotFound(w, r)
		}
	})
	mux.HandleFunc("/type/{name}", func(w http.ResponseWriter, r *http.Request) {
		body, ok := typeJSON[r.PathValue("name")]
		if !ok {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, body)
	})
	mux.HandleFunc("/sprites/6.png", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("png"))
	})
	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestLookup(t *testing.T) {
	srv, _ := newPokeAPI(t)
	c := NewClient(Options{BaseURL: srv.URL, Timeout: time.Second, Logger: zaptest.NewLogger(t)})

	entry, err := c.Lookup(context.Background(), "Charizard")
	require.NoError(t, err)

	assert.Equal(t, "charizard", entry.Species)
	assert.Equal(t, []string{"fire", "flying"}, entry.Types)
	assert.Equal(t, [6]int{78, 84, 78, 109, 85, 100}, entry.Stats)
	assert.Equal(t, []byte("png"), entry.Sprite)

	assert.Equal(t, []string{"electric", "rock", "water"}, entry.Matchup.Weak())
	assert.True(t, entry.Matchup.Quad("rock"))
	assert.Equal(t, []string{"ground"}, entry.Matchup.Immune())
	assert.Contains(t, entry.Matchup.Resist(), "bug")
	assert.True(t, entry.Matchup.Quad("bug"))
	assert.Equal(t, 1.0, entry.Matchup.Multiplier("ice"))
}

func TestLookupOverride(t *testing.T) {
	srv, _ := newPokeAPI(t)
	c := NewClient(Options{BaseURL: srv.URL, Timeout: time.Second})

	entry, err := c.Lookup(context.Background(), "arceus-water")
	require.NoError(t, err)

	assert.Equal(t, "arceus**water", entry.Name)
	assert.Equal(t, []string{"water"}, entry.Types)
	assert.Equal(t, 120, entry.Stats[0])
	assert.Nil(t, entry.Sprite)
	assert.Equal(t, []string{"electric", "grass"}, entry.Matchup.Weak())
}

func TestLookupNotFound(t *testing.T) {
	srv, _ := newPokeAPI(t)
	c := NewClient(Options{BaseURL: srv.URL, Timeout: time.Second})

	_, err := c.Lookup(context.Background(), "missingno")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = c.Lookup(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLookupCaches(t *testing.T) {
	srv, hits := newPokeAPI(t)
	c := NewClient(Options{BaseURL: srv.URL + "/", Timeout: time.Second, CacheTTL: time.Minute})

	for range 3 {
		_, err := c.Lookup(context.Background(), "charizard")
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), hits.Load())
}

func TestLookupCanceled(t *testing.T) {
	srv, _ := newPokeAPI(t)
	c := NewClient(Options{BaseURL: srv.URL, Timeout: time.Second})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Lookup(ctx, "charizard")
	assert.ErrorIs(t, err, context.Canceled)
}
