// Package assets holds the data files shipped inside the binary.
package assets

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/tidwall/gjson"
)

//go:embed pokemon.json
var pokemonJSON []byte

// ErrInvalidList is returned for data that is not a JSON array of strings.
var ErrInvalidList = errors.New("candidate list must be a JSON array of strings")

// Candidates returns the built-in Pokemon name list.
func Candidates() ([]string, error) {
	return ParseList(pokemonJSON)
}

// LoadFile reads a candidate list from path.
func LoadFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read candidates: %w", err)
	}
	names, err := ParseList(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return names, nil
}

// ParseList decodes a JSON array of names.
func ParseList(data []byte) ([]string, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidList
	}
	list := gjson.ParseBytes(data)
	if !list.IsArray() {
		return nil, ErrInvalidList
	}

	items := list.Array()
	names := make([]string, 0, len(items))
	for _, item := range items {
		if item.Type != gjson.String {
			return nil, ErrInvalidList
		}
		names = append(names, item.Str)
	}
	return names, nil
}

// Load returns the list at path, or the built-in list when path is empty.
func Load(path string) ([]string, error) {
	if path == "" {
		return Candidates()
	}
	return LoadFile(path)
}
