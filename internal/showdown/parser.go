// Package showdown follows a Pokemon Showdown battle log and reports which
// Pokemon each side has in play.
package showdown

import (
	"strings"

	"github.com/chenwei791129/pokehelper/internal/pokedex"
)

// Event reports that a side switched to a new Pokemon.
// Slot is 1 for the player, 2 for the opponent.
type Event struct {
	Slot    int
	Species string
}

// Parser turns battle log lines into Events. Both the chat form
// ("Go! Pikachu!") and the protocol form ("|switch|p1a: ...") are accepted.
type Parser struct {
	players [2]string
	active  [2]string
}

// Players returns the player names, empty until the battle start line is seen.
func (p *Parser) Players() (one, two string) {
	return p.players[0], p.players[1]
}

// Active returns the Pokemon last reported for slot.
func (p *Parser) Active(slot int) string {
	if slot < 1 || slot > 2 {
		return ""
	}
	return p.active[slot-1]
}

// Reset forgets players and active Pokemon.
func (p *Parser) Reset() {
	*p = Parser{}
}

// Feed parses one line. ok is false unless a slot changed Pokemon.
func (p *Parser) Feed(line string) (Event, bool) {
	line = strings.TrimSpace(line)
	if strings.HasPrefix(line, "|") {
		return p.feedProtocol(line)
	}
	return p.feedChat(line)
}

func (p *Parser) feedChat(line string) (Event, bool) {
	if rest, ok := strings.CutPrefix(line, "Battle started between "); ok {
		if p.players[0] == "" && p.players[1] == "" {
			one, two, found := strings.Cut(strings.TrimSuffix(rest, "!"), " and ")
			if found {
				p.players = [2]string{one, two}
			}
		}
		return Event{}, false
	}

	if rest, ok := strings.CutPrefix(line, "Go! "); ok {
		return p.switchIn(1, strings.TrimSuffix(rest, "!"))
	}

	if p.players[1] != "" {
		if rest, ok := strings.CutPrefix(line, p.players[1]+" sent out "); ok {
			return p.switchIn(2, strings.TrimSuffix(rest, "!"))
		}
	}
	return Event{}, false
}

// feedProtocol handles lines such as
//
//	|player|p2|Red|1
//	|switch|p1a: Sparky|Pikachu, L50, M|100/100
func (p *Parser) feedProtocol(line string) (Event, bool) {
	fields := strings.Split(line, "|")
	if len(fields) < 4 {
		return Event{}, false
	}

	switch fields[1] {
	case "player":
		if slot := sideSlot(fields[2]); slot != 0 && fields[3] != "" {
			p.players[slot-1] = fields[3]
		}
	case "switch", "drag", "replace":
		slot := sideSlot(fields[2])
		if slot == 0 {
			return Event{}, false
		}
		species, _, _ := strings.Cut(fields[3], ",")
		return p.switchIn(slot, species)
	}
	return Event{}, false
}

func (p *Parser) switchIn(slot int, name string) (Event, bool) {
	species := ProcessName(name)
	if species == "" || p.active[slot-1] == species {
		return Event{}, false
	}
	p.active[slot-1] = species
	return Event{Slot: slot, Species: species}, true
}

// sideSlot maps "p1", "p1a: Nick" and friends to 1 or 2.
func sideSlot(field string) int {
	switch {
	case strings.HasPrefix(field, "p1"):
		return 1
	case strings.HasPrefix(field, "p2"):
		return 2
	default:
		return 0
	}
}

// ProcessName turns a name as printed in battle into a lookup name.
// "Sparky (Pikachu)" yields the species in parentheses, spaces become
// dashes and the alias table is applied.
func ProcessName(name string) string {
	name = strings.TrimSpace(name)
	if strings.HasSuffix(name, ")") {
		if i := strings.LastIndex(name, "("); i >= 0 {
			name = name[i+1 : len(name)-1]
		}
	}
	if strings.Contains(name, ". ") {
		name = strings.ReplaceAll(name, ". ", "-")
	} else {
		name = strings.ReplaceAll(name, " ", "-")
	}
	return pokedex.Resolve(name)
}
