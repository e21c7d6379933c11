package nba

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/hoopsight/momentum/internal/domain/model"
)

// liveResponse is the play-by-play envelope on the live-data CDN.
type liveResponse struct {
	Game struct {
		GameID  string       `json:"gameId"`
		Actions []liveAction `json:"actions"`
	} `json:"game"`
}

type liveAction struct {
	ActionNumber int    `json:"actionNumber"`
	Clock        string `json:"clock"` // ISO 8601 duration, e.g. "PT07M42.00S"
	TimeActual   string `json:"timeActual"`
	Period       int    `json:"period"`
	TeamTricode  string `json:"teamTricode"`
	Description  string `json:"description"`
	ActionType   string `json:"actionType"`
	ShotResult   string `json:"shotResult"`
	ScoreHome    string `json:"scoreHome"`
	ScoreAway    string `json:"scoreAway"`
}

// clockPattern matches the CDN's ISO 8601 period clock.
var clockPattern = regexp.MustCompile(`^PT(\d+)M(\d+)(?:\.\d+)?S$`)

// ParseClock converts "PT07M42.00S" to "7:42". Unparseable clocks come
// back empty.
func ParseClock(iso string) string {
	m := clockPattern.FindStringSubmatch(iso)
	if m == nil {
		return ""
	}
	minutes, _ := strconv.Atoi(m[1])
	seconds, _ := strconv.Atoi(m[2])
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

// PlayByPlay fetches the full action list for a game and converts it to
// play events. Running scores are carried forward across non-scoring
// actions; the per-play score value is the delta against the previous
// action.
func (c *Client) PlayByPlay(ctx context.Context, gameID string) ([]model.PlayEvent, error) {
	u := fmt.Sprintf("%s/playbyplay/playbyplay_%s.json", c.liveBaseURL, gameID)

	var resp liveResponse
	if err := c.getJSON(ctx, u, &resp); err != nil {
		return nil, fmt.Errorf("fetch play-by-play for %s: %w", gameID, err)
	}
	if len(resp.Game.Actions) == 0 {
		return nil, fmt.Errorf("game %s: %w", gameID, ErrGameNotFound)
	}

	// Feeds occasionally omit timeActual; synthesize monotone stand-ins
	// from the action number so ordering survives downstream sorting.
	base := time.Now().Add(-4 * time.Hour)

	events := make([]model.PlayEvent, 0, len(resp.Game.Actions))
	prevHome, prevAway := 0, 0
	for _, a := range resp.Game.Actions {
		home := atoiOrPrev(a.ScoreHome, prevHome)
		away := atoiOrPrev(a.ScoreAway, prevAway)
		scored := home - prevHome + away - prevAway

		wall, err := time.Parse(time.RFC3339, a.TimeActual)
		if err != nil {
			wall = base.Add(time.Duration(a.ActionNumber) * time.Second)
		}

		events = append(events, model.PlayEvent{
			SequenceID:    a.ActionNumber,
			WallClock:     wall,
			GameClock:     ParseClock(a.Clock),
			Period:        a.Period,
			TeamID:        a.TeamTricode,
			Text:          a.Description,
			TypeLabel:     a.ActionType,
			IsScoringPlay: scored > 0,
			ScoreValue:    scored,
			HomeScore:     home,
			AwayScore:     away,
		})
		prevHome, prevAway = home, away
	}
	return events, nil
}

// FinalScore reports the last running score of a play list as "home-away".
func FinalScore(events []model.PlayEvent) string {
	if len(events) == 0 {
		return "0-0"
	}
	last := events[len(events)-1]
	return fmt.Sprintf("%d-%d", last.HomeScore, last.AwayScore)
}

func atoiOrPrev(s string, prev int) int {
	if s == "" {
		return prev
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return prev
	}
	return n
}
