package schema

// EnrichedProductScore adds presentation data to a ProductScore.
type EnrichedProductScore struct {
	Rank  int    `json:"rank"`
	Label string `json:"label"`
	ProductScore
}

// EnrichedAggregateEntry adds presentation data to an AggregateEntry.
type EnrichedAggregateEntry struct {
	Rank  int     `json:"rank"`
	Share float64 `json:"share"` // percentage of total revenue
	AggregateEntry
}

// Score tier labels.
const (
	LeaderValue  = "Leader"
	StrongValue  = "Strong"
	SteadyValue  = "Steady"
	LaggingValue = "Lagging"
)

// GetPlainLabel returns a plain text tier label for a composite score in [0, 1].
func GetPlainLabel(score float64) string {
	switch {
	case score >= 0.8:
		return LeaderValue
	case score >= 0.6:
		return StrongValue
	case score >= 0.4:
		return SteadyValue
	default:
		return LaggingValue
	}
}

// EnrichScores adds rank and label to a list of product scores.
func EnrichScores(scores []ProductScore) []EnrichedProductScore {
	output := make([]EnrichedProductScore, len(scores))
	for i, s := range scores {
		output[i] = EnrichedProductScore{
			Rank:         i + 1,
			Label:        GetPlainLabel(s.Score),
			ProductScore: s,
		}
	}
	return output
}

// EnrichEntries adds rank and revenue share to a list of aggregate entries.
func EnrichEntries(entries []AggregateEntry) []EnrichedAggregateEntry {
	total := 0.0
	for _, e := range entries {
		total += e.TotalRevenue.InexactFloat64()
	}
	output := make([]EnrichedAggregateEntry, len(entries))
	for i, e := range entries {
		share := 0.0
		if total > 0 {
			share = e.TotalRevenue.InexactFloat64() / total * 100
		}
		output[i] = EnrichedAggregateEntry{
			Rank:           i + 1,
			Share:          share,
			AggregateEntry: e,
		}
	}
	return output
}
