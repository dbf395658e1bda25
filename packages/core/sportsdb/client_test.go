package sportsdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const seasonJSON = `{"events":[
 {"idEvent":"2001","idLeague":"4406","strHomeTeam":"Boca Juniors","strAwayTeam":"River Plate",
  "intHomeScore":"2","intAwayScore":"1","intRound":"7","strStatus":"Match Finished",
  "dateEventLocal":"2025-03-09","strTimeLocal":"17:00:00","strTimestamp":"2025-03-09T20:00:00"},
 {"idEvent":"2002","idLeague":"4406","strHomeTeam":"Racing Club","strAwayTeam":"Independiente",
  "intHomeScore":null,"intAwayScore":null,"intRound":null,"strStatus":"Not Started",
  "dateEventLocal":"","strTimeLocal":"","strTimestamp":"2025-03-10T23:30:00"}
]}`

func TestSeasonEvents(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotQuery = r.URL.Path, r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(seasonJSON))
	}))
	defer srv.Close()

	c := New(srv.URL, "secret")
	events, err := c.SeasonEvents(context.Background(), "4406", "2025")
	if err != nil {
		t.Fatalf("SeasonEvents: %v", err)
	}
	if gotPath != "/secret/eventsseason.php" || gotQuery != "id=4406&s=2025" {
		t.Fatalf("unexpected request %s?%s", gotPath, gotQuery)
	}
	if len(events) != 2 {
		t.Fatalf("want 2 events, got %d", len(events))
	}

	home, away := events[0].Goals()
	if home != 2 || away != 1 {
		t.Fatalf("goals: got %d-%d", home, away)
	}
	if r := events[0].RoundNumber(); r == nil || *r != 7 {
		t.Fatalf("round: got %v", r)
	}

	home, away = events[1].Goals()
	if home != 0 || away != 0 || events[1].RoundNumber() != nil {
		t.Fatalf("null numbers should decode to zero values")
	}
}

func TestPastLeagueEventsReadsResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results":[{"idEvent":"9"}]}`))
	}))
	defer srv.Close()

	events, err := New(srv.URL, "k").PastLeagueEvents(context.Background(), "4406")
	if err != nil {
		t.Fatalf("PastLeagueEvents: %v", err)
	}
	if len(events) != 1 || events[0].ID != "9" {
		t.Fatalf("unexpected events: %+v", events)
	}
}

func TestNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	if _, err := New(srv.URL, "k").NextLeagueEvents(context.Background(), "4406"); err == nil {
		t.Fatalf("expected an error on 429")
	}
}

func TestLookupLeague(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("id") == "4406" {
			_, _ = w.Write([]byte(`{"leagues":[{"idLeague":"4406","strLeague":"Argentinian Primera Division","strBadge":"b.png"}]}`))
			return
		}
		_, _ = w.Write([]byte(`{"leagues":null}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "k")
	league, err := c.LookupLeague(context.Background(), "4406")
	if err != nil || league.Name != "Argentinian Primera Division" {
		t.Fatalf("LookupLeague: %v %+v", err, league)
	}
	if _, err := c.LookupLeague(context.Background(), "1"); err == nil {
		t.Fatalf("expected unknown league to fail")
	}
}

func TestKickoffUTC(t *testing.T) {
	loc, err := time.LoadLocation("America/Argentina/Buenos_Aires")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	local := Event{DateEventLocal: "2025-03-09", TimeLocal: "17:00:00", Timestamp: "2025-03-09T00:00:00"}
	got, ok := local.KickoffUTC(loc)
	want := time.Date(2025, 3, 9, 20, 0, 0, 0, time.UTC)
	if !ok || !got.Equal(want) {
		t.Fatalf("local kickoff: want %s, got %s (ok=%v)", want, got, ok)
	}

	fallback := Event{Timestamp: "2025-03-10T23:30:00"}
	got, ok = fallback.KickoffUTC(loc)
	want = time.Date(2025, 3, 10, 23, 30, 0, 0, time.UTC)
	if !ok || !got.Equal(want) {
		t.Fatalf("timestamp fallback: want %s, got %s (ok=%v)", want, got, ok)
	}

	if _, ok := (Event{}).KickoffUTC(loc); ok {
		t.Fatalf("event without dates must not resolve")
	}
}
