// Package sportsdb reads leagues and fixtures from TheSportsDB v1 JSON API.
package sportsdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const DefaultBaseURL = "https://www.thesportsdb.com/api/v1/json"

type Client struct {
	Base string
	Key  string
	HTTP *http.Client
}

func New(base, key string) *Client {
	if base == "" {
		base = DefaultBaseURL
	}
	if key == "" {
		key = "3" // public test key
	}
	c := &http.Client{Timeout: 10 * time.Second}
	return &Client{Base: strings.TrimRight(base, "/"), Key: key, HTTP: c}
}

// Event is one fixture as the feed returns it. Numbers arrive as strings
// and may be null.
type Event struct {
	ID             string  `json:"idEvent"`
	LeagueID       string  `json:"idLeague"`
	HomeTeam       string  `json:"strHomeTeam"`
	AwayTeam       string  `json:"strAwayTeam"`
	HomeTeamBadge  string  `json:"strHomeTeamBadge"`
	AwayTeamBadge  string  `json:"strAwayTeamBadge"`
	HomeScore      *string `json:"intHomeScore"`
	AwayScore      *string `json:"intAwayScore"`
	Round          *string `json:"intRound"`
	Venue          string  `json:"strVenue"`
	Thumb          string  `json:"strThumb"`
	Video          string  `json:"strVideo"`
	Status         string  `json:"strStatus"`
	DateEventLocal string  `json:"dateEventLocal"`
	TimeLocal      string  `json:"strTimeLocal"`
	Timestamp      string  `json:"strTimestamp"`
}

// League is the subset of lookupleague.php used to describe a competition.
type League struct {
	ID    string `json:"idLeague"`
	Name  string `json:"strLeague"`
	Badge string `json:"strBadge"`
	Logo  string `json:"strLogo"`
}

type eventsResp struct {
	Events  []Event `json:"events"`
	Results []Event `json:"results"`
}

type leaguesResp struct {
	Leagues []League `json:"leagues"`
}

// SeasonEvents returns every fixture of a league season.
func (c *Client) SeasonEvents(ctx context.Context, leagueID, season string) ([]Event, error) {
	q := url.Values{"id": {leagueID}, "s": {season}}
	return c.events(ctx, "eventsseason.php", q)
}

// PastLeagueEvents returns the most recently played fixtures of a league.
func (c *Client) PastLeagueEvents(ctx context.Context, leagueID string) ([]Event, error) {
	return c.events(ctx, "eventspastleague.php", url.Values{"id": {leagueID}})
}

// NextLeagueEvents returns the upcoming fixtures of a league.
func (c *Client) NextLeagueEvents(ctx context.Context, leagueID string) ([]Event, error) {
	return c.events(ctx, "eventsnextleague.php", url.Values{"id": {leagueID}})
}

func (c *Client) LookupLeague(ctx context.Context, leagueID string) (*League, error) {
	var payload leaguesResp
	if err := c.get(ctx, "lookupleague.php", url.Values{"id": {leagueID}}, &payload); err != nil {
		return nil, err
	}
	if len(payload.Leagues) == 0 {
		return nil, fmt.Errorf("sportsdb: league %s not found", leagueID)
	}
	return &payload.Leagues[0], nil
}

func (c *Client) events(ctx context.Context, endpoint string, q url.Values) ([]Event, error) {
	var payload eventsResp
	if err := c.get(ctx, endpoint, q, &payload); err != nil {
		return nil, err
	}
	// past league events come under "results"
	if len(payload.Events) > 0 {
		return payload.Events, nil
	}
	return payload.Results, nil
}

func (c *Client) get(ctx context.Context, endpoint string, q url.Values, out any) error {
	u := fmt.Sprintf("%s/%s/%s?%s", c.Base, c.Key, endpoint, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("sportsdb GET %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("sportsdb GET %s -> %d", endpoint, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("sportsdb decode %s: %w", endpoint, err)
	}
	return nil
}

// KickoffUTC resolves the kickoff time. The local date and time are read in
// loc; strTimestamp is the fallback. ok is false when neither parses.
func (e Event) KickoffUTC(loc *time.Location) (time.Time, bool) {
	if e.DateEventLocal != "" && e.TimeLocal != "" {
		if loc == nil {
			loc = time.UTC
		}
		layouts := []string{"2006-01-02 15:04:05", "2006-01-02 15:04"}
		for _, l := range layouts {
			if t, err := time.ParseInLocation(l, e.DateEventLocal+" "+e.TimeLocal, loc); err == nil {
				return t.UTC(), true
			}
		}
	}
	return parseTimestamp(e.Timestamp)
}

func parseTimestamp(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
	}
	for _, l := range layouts {
		if t, err := time.Parse(l, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// Goals returns the home and away score, 0 when missing or malformed.
func (e Event) Goals() (home, away int) {
	return atoi(e.HomeScore), atoi(e.AwayScore)
}

// RoundNumber returns the round, nil when missing.
func (e Event) RoundNumber() *int {
	if e.Round == nil {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(*e.Round))
	if err != nil {
		return nil
	}
	return &n
}

func atoi(s *string) int {
	if s == nil {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(*s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
