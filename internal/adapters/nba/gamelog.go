package nba

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// GameSummary identifies one finished game from the season log, seen from
// the home side.
type GameSummary struct {
	GameID   string
	Season   string
	HomeTeam string
	AwayTeam string
	GameDate string
}

// statsResponse is the envelope every stats.nba.com endpoint shares: a
// list of result sets with parallel header and row arrays.
type statsResponse struct {
	ResultSets []struct {
		Name    string   `json:"name"`
		Headers []string `json:"headers"`
		RowSet  [][]any  `json:"rowSet"`
	} `json:"resultSets"`
}

// ListGames pulls the season game log and returns each game once, from
// the home team's row. Away-side rows ("TEAM @ OPPONENT") describe the
// same games and are dropped.
func (c *Client) ListGames(ctx context.Context, season string) ([]GameSummary, error) {
	q := url.Values{}
	q.Set("Season", season)
	q.Set("SeasonType", "Regular Season")
	q.Set("LeagueID", "00")
	u := fmt.Sprintf("%s/leaguegamelog?%s", c.statsBaseURL, q.Encode())

	var resp statsResponse
	if err := c.getJSON(ctx, u, &resp); err != nil {
		return nil, fmt.Errorf("fetch game log for %s: %w", season, err)
	}
	if len(resp.ResultSets) == 0 {
		return nil, fmt.Errorf("%w: game log has no result sets", ErrBadPayload)
	}

	set := resp.ResultSets[0]
	col := indexHeaders(set.Headers)
	gameID, okID := col["GAME_ID"]
	matchup, okMU := col["MATCHUP"]
	gameDate, okDate := col["GAME_DATE"]
	if !okID || !okMU {
		return nil, fmt.Errorf("%w: game log missing GAME_ID or MATCHUP", ErrBadPayload)
	}

	var out []GameSummary
	for _, row := range set.RowSet {
		id := stringCell(row, gameID)
		home, away, ok := ParseMatchup(stringCell(row, matchup))
		if id == "" || !ok {
			continue
		}
		gs := GameSummary{GameID: id, Season: season, HomeTeam: home, AwayTeam: away}
		if okDate {
			gs.GameDate = stringCell(row, gameDate)
		}
		out = append(out, gs)
	}
	return out, nil
}

// ParseMatchup splits a home-side matchup like "CHI vs. NYK" into team
// tricodes. Away-side rows use "@" and report ok=false.
func ParseMatchup(matchup string) (home, away string, ok bool) {
	parts := strings.Split(matchup, " vs. ")
	if len(parts) != 2 {
		return "", "", false
	}
	home = strings.TrimSpace(parts[0])
	away = strings.TrimSpace(parts[1])
	if home == "" || away == "" {
		return "", "", false
	}
	return home, away, true
}

func indexHeaders(headers []string) map[string]int {
	m := make(map[string]int, len(headers))
	for i, h := range headers {
		m[h] = i
	}
	return m
}

func stringCell(row []any, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	s, _ := row[i].(string)
	return s
}
