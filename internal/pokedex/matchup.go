package pokedex

import "sort"

// AllTypes lists the eighteen types in PokeAPI order.
var AllTypes = []string{
	"normal", "fighting", "flying", "poison", "ground", "rock",
	"bug", "ghost", "steel", "fire", "water", "grass",
	"electric", "psychic", "ice", "dragon", "dark", "fairy",
}

// DamageRelations is the defensive side of one type.
type DamageRelations struct {
	Type       string
	DoubleFrom []string
	HalfFrom   []string
	NoFrom     []string
}

// Matchup holds the damage multiplier of every attacking type against a
// defender. Neutral types are omitted.
type Matchup struct {
	Multipliers map[string]float64
}

// ComputeMatchup multiplies the relations of each defending type.
func ComputeMatchup(defending []DamageRelations) Matchup {
	mult := make(map[string]float64, len(AllTypes))
	for _, t := range AllTypes {
		mult[t] = 1
	}
	for _, rel := range defending {
		for _, t := range rel.DoubleFrom {
			mult[t] *= 2
		}
		for _, t := range rel.HalfFrom {
			mult[t] *= 0.5
		}
		for _, t := range rel.NoFrom {
			mult[t] = 0
		}
	}
	for t, m := range mult {
		if m == 1 {
			delete(mult, t)
		}
	}
	return Matchup{Multipliers: mult}
}

// Multiplier returns the multiplier of attacker, 1 when neutral.
func (m Matchup) Multiplier(attacker string) float64 {
	if v, ok := m.Multipliers[attacker]; ok {
		return v
	}
	return 1
}

// Weak returns the types dealing more than normal damage.
func (m Matchup) Weak() []string {
	return m.filter(func(v float64) bool { return v > 1 })
}

// Resist returns the types dealing reduced but non-zero damage.
func (m Matchup) Resist() []string {
	return m.filter(func(v float64) bool { return v > 0 && v < 1 })
}

// Immune returns the types dealing no damage.
func (m Matchup) Immune() []string {
	return m.filter(func(v float64) bool { return v == 0 })
}

// Quad reports whether attacker hits for x4 or x0.25.
func (m Matchup) Quad(attacker string) bool {
	v := m.Multiplier(attacker)
	return v >= 4 || (v > 0 && v <= 0.25)
}

func (m Matchup) filter(keep func(float64) bool) []string {
	var out []string
	for t, v := range m.Multipliers {
		if keep(v) {
			out = append(out, t)
		}
	}
	sort.Strings(out)
	return out
}
