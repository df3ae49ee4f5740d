// ABOUTME: Policy controls matching parameters and the degrade strategy
// ABOUTME: The apology fallback is configuration, not a hard-coded string
package assistant

// DefaultApologyText is returned when response generation fails
const DefaultApologyText = "I'm sorry, I had trouble processing your request. Could you please try again?"

const (
	// DefaultMatchThreshold is the minimum similarity for a candidate
	DefaultMatchThreshold = 0.5
	// DefaultMaxResults caps the candidate list
	DefaultMaxResults = 4
)

// Policy holds the tunable behavior of the pipeline
type Policy struct {
	// MatchThreshold is the minimum similarity score a candidate must meet
	MatchThreshold float64
	// MaxResults bounds the candidate list returned by the store
	MaxResults int
	// ApologyText replaces the response when generation fails
	ApologyText string
	// DegradeOnSearchError treats store failures as an empty result set
	// instead of propagating them. This masks store outages as "no match
	// found"; it mirrors the original behavior and is logged when it fires.
	DegradeOnSearchError bool
}

// DefaultPolicy returns the stock pipeline behavior
func DefaultPolicy() Policy {
	return Policy{
		MatchThreshold:       DefaultMatchThreshold,
		MaxResults:           DefaultMaxResults,
		ApologyText:          DefaultApologyText,
		DegradeOnSearchError: true,
	}
}
