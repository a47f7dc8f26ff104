package services

import (
	"sort"
	"strings"

	"tripmate_server/models"
)

// RankingService orders trip snapshots either by hotness (no query) or by
// query relevance. Pure computation: no state, no I/O.
type RankingService struct{}

// ScoredTrip is a trip with its computed ranking score attached.
type ScoredTrip struct {
	models.Trip
	Score     int    `json:"score"`
	MatchType string `json:"matchType,omitempty"`
}

// Match-type labels, highest priority first.
const (
	MatchTitleExact     = "title_exact"
	MatchTitleSubstring = "title_substring"
	MatchTitleToken     = "title_token"
	MatchDestination    = "destination"
	MatchContent        = "content"
	MatchCategory       = "category"
)

// scoreGapThreshold is the relevance gap beyond which score order wins
// outright; closer scores fall back to hotness.
const scoreGapThreshold = 100

// HotScore is the popularity score used when no query is given.
func HotScore(t *models.Trip) float64 {
	return 10*float64(t.CurrentMemberCount) +
		3*float64(t.LikeCount()) +
		5*float64(t.ReviewCount) +
		8*float64(t.CompletedTripCount) +
		2*t.AverageRating
}

// Rank orders trips for display. With an empty query it ranks by hotness;
// otherwise by relevance under the given category policy
// (models.CategoryBoost or models.CategoryExclude).
func (rs *RankingService) Rank(trips []models.Trip, query, categoryPolicy string) []ScoredTrip {
	query = strings.TrimSpace(query)
	if query == "" {
		return rs.rankHot(trips)
	}
	return rs.rankByQuery(trips, query, categoryPolicy)
}

// rankHot sorts by hot score descending; equal scores keep store creation
// order. The comparison runs on the float score so a fractional rating
// difference still separates two trips.
func (rs *RankingService) rankHot(trips []models.Trip) []ScoredTrip {
	scored := make([]ScoredTrip, 0, len(trips))
	for _, t := range trips {
		scored = append(scored, ScoredTrip{Trip: t, Score: int(HotScore(&t))})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		hotI, hotJ := HotScore(&scored[i].Trip), HotScore(&scored[j].Trip)
		if hotI != hotJ {
			return hotI > hotJ
		}
		return scored[i].CreatedAt < scored[j].CreatedAt
	})
	return scored
}

func (rs *RankingService) rankByQuery(trips []models.Trip, query, categoryPolicy string) []ScoredTrip {
	var scored []ScoredTrip
	for _, t := range trips {
		score, matchType := RelevanceScore(&t, query, categoryPolicy)
		if score <= 0 {
			continue
		}
		scored = append(scored, ScoredTrip{Trip: t, Score: score, MatchType: matchType})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		diff := scored[i].Score - scored[j].Score
		if diff > scoreGapThreshold || diff < -scoreGapThreshold {
			return scored[i].Score > scored[j].Score
		}
		hotI, hotJ := HotScore(&scored[i].Trip), HotScore(&scored[j].Trip)
		if hotI != hotJ {
			return hotI > hotJ
		}
		return scored[i].CreatedAt > scored[j].CreatedAt
	})
	return scored
}

// RelevanceScore computes the query-mode score for one trip and the label
// of its highest-priority match. Zero or negative means the trip is
// excluded from results.
func RelevanceScore(t *models.Trip, query, categoryPolicy string) (int, string) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return 0, ""
	}

	score := 0
	matchType := ""
	matchedFields := 0

	// Title: only the highest-priority hit counts.
	title := strings.ToLower(t.Title)
	switch {
	case title == q:
		score += 1000
		matchType = MatchTitleExact
		matchedFields++
	case strings.Contains(title, q):
		score += 500
		matchType = MatchTitleSubstring
		matchedFields++
	case anyTokenContains(title, q):
		score += 250
		matchType = MatchTitleToken
		matchedFields++
	}

	// Destination: exact beats substring.
	destination := strings.ToLower(t.Destination)
	if destination == q {
		score += 400
		matchedFields++
		if matchType == "" {
			matchType = MatchDestination
		}
	} else if strings.Contains(destination, q) {
		score += 200
		matchedFields++
		if matchType == "" {
			matchType = MatchDestination
		}
	}

	// Free-text fields, each independent and additive.
	if strings.Contains(strings.ToLower(t.Description), q) {
		score += 100
		matchedFields++
		if matchType == "" {
			matchType = MatchContent
		}
	}
	if commentsContain(t.Comments, q) {
		score += 80
		matchedFields++
		if matchType == "" {
			matchType = MatchContent
		}
	}
	if strings.Contains(strings.ToLower(t.OwnerName), q) {
		score += 80
		matchedFields++
		if matchType == "" {
			matchType = MatchContent
		}
	}

	// Category weighting differs per call site; both policies are valid.
	if strings.Contains(strings.ToLower(t.Category), q) {
		if matchedFields == 0 && categoryPolicy == models.CategoryExclude {
			return 0, ""
		}
		score += 150
		if matchedFields > 0 {
			score += 50
		}
		matchedFields++
		if matchType == "" {
			matchType = MatchCategory
		}
	}

	if matchedFields > 1 {
		score += 10 * matchedFields
	}

	if score > 0 {
		popularity := 5*t.LikeCount() + 10*t.CurrentMemberCount + 3*len(t.JoinRequests)
		if popularity > 100 {
			popularity = 100
		}
		score += popularity
	}

	return score, matchType
}

func anyTokenContains(text, q string) bool {
	for _, token := range strings.Fields(text) {
		if strings.Contains(token, q) {
			return true
		}
	}
	return false
}

func commentsContain(comments []models.Comment, q string) bool {
	for _, c := range comments {
		if strings.Contains(strings.ToLower(c.Text), q) {
			return true
		}
	}
	return false
}
