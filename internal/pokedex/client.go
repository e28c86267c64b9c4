// Package pokedex fetches Pokemon data from PokeAPI and derives type matchups.
package pokedex

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrNotFound is returned when PokeAPI has no such Pokemon or type.
var ErrNotFound = errors.New("pokemon not found")

// StatNames are the base stats in display order.
var StatNames = []string{"HP", "ATK", "DEF", "SPATK", "SPDEF", "SPD"}

// apiStats maps PokeAPI stat names to StatNames indexes.
var apiStats = map[string]int{
	"hp":              0,
	"attack":          1,
	"defense":         2,
	"special-attack":  3,
	"special-defense": 4,
	"speed":           5,
}

// Entry is everything the display needs about one Pokemon.
type Entry struct {
	// Name is the resolved lookup name, e.g. "giratina-altered"
	Name      string
	Species   string
	Types     []string
	Stats     [6]int
	SpriteURL string
	Sprite    []byte
	Matchup   Matchup
}

// Options configures a Client.
type Options struct {
	BaseURL  string
	Timeout  time.Duration
	CacheTTL time.Duration
	Logger   *zap.Logger
}

// Client talks to PokeAPI. Responses are cached in memory.
// It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	cache   *cache.Cache
	logger  *zap.Logger
}

// NewClient creates a client.
func NewClient(opts Options) *Client {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	ttl := opts.CacheTTL
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}
	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		http:    &http.Client{Timeout: opts.Timeout},
		cache:   cache.New(ttl, 2*ttl),
		logger:  logger,
	}
}

// Lookup resolves name through the alias table and fetches the Pokemon,
// its type relations and its sprite. A sprite that fails to download is
// logged and left empty.
func (c *Client) Lookup(ctx context.Context, name string) (*Entry, error) {
	resolved := Resolve(name)
	species, forced := ParseOverride(resolved)
	if species == "" {
		return nil, fmt.Errorf("%w: empty name", ErrNotFound)
	}

	body, err := c.get(ctx, "/pokemon/"+species)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", species, err)
	}

	entry := &Entry{
		Name:      resolved,
		Species:   gjson.GetBytes(body, "name").String(),
		SpriteURL: gjson.GetBytes(body, "sprites.front_default").String(),
	}
	for _, t := range gjson.GetBytes(body, "types.#.type.name").Array() {
		entry.Types = append(entry.Types, t.String())
	}
	if len(forced) > 0 {
		entry.Types = forced
	}
	gjson.GetBytes(body, "stats").ForEach(func(_, stat gjson.Result) bool {
		if i, ok := apiStats[stat.Get("stat.name").String()]; ok {
			entry.Stats[i] = int(stat.Get("base_stat").Int())
		}
		return true
	})

	relations := make([]DamageRelations, len(entry.Types))
	g, gctx := errgroup.WithContext(ctx)
	for i, t := range entry.Types {
		g.Go(func() error {
			rel, err := c.TypeRelations(gctx, t)
			if err != nil {
				return err
			}
			relations[i] = rel
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to fetch types of %s: %w", species, err)
	}
	entry.Matchup = ComputeMatchup(relations)

	if entry.SpriteURL != "" {
		sprite, err := c.Sprite(ctx, entry.SpriteURL)
		if err != nil {
			c.logger.Warn("Failed to fetch sprite", zap.String("pokemon", species), zap.Error(err))
		} else {
			entry.Sprite = sprite
		}
	}

	c.logger.Debug("Looked up pokemon",
		zap.String("name", resolved),
		zap.Strings("types", entry.Types))
	return entry, nil
}

// TypeRelations fetches the defensive damage relations of a type.
func (c *Client) TypeRelations(ctx context.Context, typeName string) (DamageRelations, error) {
	body, err := c.get(ctx, "/type/"+typeName)
	if err != nil {
		return DamageRelations{}, fmt.Errorf("failed to fetch type %s: %w", typeName, err)
	}

	names := func(path string) []string {
		var out []string
		for _, r := range gjson.GetBytes(body, path).Array() {
			out = append(out, r.String())
		}
		return out
	}
	return DamageRelations{
		Type:       typeName,
		DoubleFrom: names("damage_relations.double_damage_from.#.name"),
		HalfFrom:   names("damage_relations.half_damage_from.#.name"),
		NoFrom:     names("damage_relations.no_damage_from.#.name"),
	}, nil
}

// Sprite downloads an image.
func (c *Client) Sprite(ctx context.Context, url string) ([]byte, error) {
	return c.fetch(ctx, url)
}

// get fetches an API path relative to the base URL.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	body, err := c.fetch(ctx, c.baseURL+path)
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("invalid JSON from %s", path)
	}
	return body, nil
}

func (c *Client) fetch(ctx context.Context, url string) ([]byte, error) {
	if v, ok := c.cache.Get(url); ok {
		return v.([]byte), nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	c.cache.SetDefault(url, body)
	return body, nil
}
