package autofill

// GuessKind tags the variant held by a Guess.
type GuessKind int

const (
	// GuessEmpty means the buffer is empty.
	GuessEmpty GuessKind = iota
	// GuessExact means the buffer already equals a candidate.
	GuessExact
	// GuessMatches means the buffer is a prefix of zero or more candidates.
	GuessMatches
)

func (k GuessKind) String() string {
	switch k {
	case GuessEmpty:
		return "empty"
	case GuessExact:
		return "exact"
	case GuessMatches:
		return "matches"
	default:
		return "unknown"
	}
}

// Guess is the result of classifying the buffer against a CandidateSet.
// Exact is set only for GuessExact, Matches only for GuessMatches.
type Guess struct {
	Kind    GuessKind
	Exact   string
	Matches []string
}
