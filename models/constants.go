package models

// Trip validation limits
const (
	MinTripCapacity = 2  // a trip needs room for someone besides the owner
	MaxTripImages   = 10 // ordered image references per proposal
)

// Category-match policies for query-mode ranking. Both are in active use:
// the discover view boosts category matches, the all-posts view drops trips
// that match on nothing but category.
const (
	CategoryBoost   = "boost"
	CategoryExclude = "exclude"
)
