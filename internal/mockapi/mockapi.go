// Package mockapi holds the fixed JSON payloads served under /api/.
package mockapi

import "strings"

// Match is a single entry of the match history
type Match struct {
	MatchID  string `json:"matchId"`
	Result   string `json:"result"`
	Hero     string `json:"hero"`
	Kills    int    `json:"kills"`
	Deaths   int    `json:"deaths"`
	Assists  int    `json:"assists"`
	Duration string `json:"duration"`
	Date     string `json:"date"`
}

// MatchHistory is returned for any API path containing "matches"
type MatchHistory struct {
	Matches      []Match `json:"matches"`
	TotalMatches int     `json:"totalMatches"`
}

// Stats is returned for any API path containing "stats"
type Stats struct {
	TotalKills   int     `json:"totalKills"`
	TotalDeaths  int     `json:"totalDeaths"`
	TotalAssists int     `json:"totalAssists"`
	WinRate      float64 `json:"winRate"`
	AvgKDA       float64 `json:"avgKDA"`
	FavoriteHero string  `json:"favoriteHero"`
}

// Status is the generic payload for every other API path
type Status struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

var (
	sampleMatches = MatchHistory{
		Matches: []Match{
			{
				MatchID:  "12345",
				Result:   "win",
				Hero:     "Viscous",
				Kills:    12,
				Deaths:   3,
				Assists:  8,
				Duration: "28:45",
				Date:     "2024-01-20T10:30:00Z",
			},
		},
		TotalMatches: 156,
	}

	sampleStats = Stats{
		TotalKills:   1248,
		TotalDeaths:  584,
		TotalAssists: 892,
		WinRate:      67.3,
		AvgKDA:       2.14,
		FavoriteHero: "Viscous",
	}

	sampleStatus = Status{
		Status:  "success",
		Message: "API endpoint working",
	}
)

// Select picks the payload for an API path by substring: "matches" wins
// over "stats", anything else gets the generic status. The match is
// deliberately loose, so /api/foo-matches-bar also yields the history.
func Select(path string) any {
	switch {
	case strings.Contains(path, "matches"):
		return SampleMatches()
	case strings.Contains(path, "stats"):
		return sampleStats
	default:
		return sampleStatus
	}
}

// SampleMatches returns a copy of the match history so callers cannot
// mutate the shared sample.
func SampleMatches() MatchHistory {
	h := sampleMatches
	h.Matches = append([]Match(nil), sampleMatches.Matches...)
	return h
}

// SampleStats returns the aggregate stats sample
func SampleStats() Stats {
	return sampleStats
}
