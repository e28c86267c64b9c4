package pokeshowdown

import "time"

const (
	// BattleURLPrefix is the address every battle room starts with
	BattleURLPrefix = "https://play.pokemonshowdown.com/battle-"

	// ReplayURLPrefix is the address of saved battle replays
	ReplayURLPrefix = "https://replay.pokemonshowdown.com/"

	// DefaultPokeAPIURL is the PokeAPI v2 REST root
	DefaultPokeAPIURL = "https://pokeapi.co/api/v2"

	// DefaultPollInterval is how often the battle log is read
	DefaultPollInterval = 2 * time.Second

	// DefaultLoadDelay is the wait after switching to a new battle before the first read
	DefaultLoadDelay = 3 * time.Second

	// DefaultEventBuffer is the capacity of the monitor event channel
	DefaultEventBuffer = 10

	// UnsupportedMessage is shown when a looked-up Pokemon does not exist
	UnsupportedMessage = "That pokemon is not supported"
)
