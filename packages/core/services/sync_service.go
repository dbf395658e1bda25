package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"prode-api/packages/core/metrics"
	"prode-api/packages/core/models"
	"prode-api/packages/core/sportsdb"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EventSource is the sports feed the sync reads from.
type EventSource interface {
	SeasonEvents(ctx context.Context, leagueID, season string) ([]sportsdb.Event, error)
	PastLeagueEvents(ctx context.Context, leagueID string) ([]sportsdb.Event, error)
	NextLeagueEvents(ctx context.Context, leagueID string) ([]sportsdb.Event, error)
	LookupLeague(ctx context.Context, leagueID string) (*sportsdb.League, error)
}

type SyncReport struct {
	RunID        string `json:"run_id"`
	Competitions int    `json:"competitions"`
	Created      int    `json:"created"`
	Updated      int    `json:"updated"`
	Finished     int    `json:"finished"`
	Failed       int    `json:"failed"`
}

// SyncService mirrors feed fixtures into matches and fires scoring when a
// match turns finished.
type SyncService struct {
	db       *gorm.DB
	source   EventSource
	matches  *MatchService
	season   string
	location *time.Location
}

func NewSyncService(db *gorm.DB, source EventSource, matches *MatchService, season string, location *time.Location) *SyncService {
	if location == nil {
		location = time.UTC
	}
	return &SyncService{
		db:       db,
		source:   source,
		matches:  matches,
		season:   season,
		location: location,
	}
}

// SyncAll imports the full season of every linked competition.
func (s *SyncService) SyncAll(ctx context.Context) (*SyncReport, error) {
	return s.run(ctx, "season", func(ctx context.Context, leagueID string) ([]sportsdb.Event, error) {
		return s.source.SeasonEvents(ctx, leagueID, s.season)
	})
}

// SyncRecent refreshes the last played and next scheduled fixtures.
func (s *SyncService) SyncRecent(ctx context.Context) (*SyncReport, error) {
	return s.run(ctx, "recent", func(ctx context.Context, leagueID string) ([]sportsdb.Event, error) {
		past, err := s.source.PastLeagueEvents(ctx, leagueID)
		if err != nil {
			return nil, err
		}
		next, err := s.source.NextLeagueEvents(ctx, leagueID)
		if err != nil {
			return nil, err
		}
		return append(past, next...), nil
	})
}

// SyncLeague creates or refreshes the competition linked to a feed league.
func (s *SyncService) SyncLeague(ctx context.Context, leagueID string) (*models.Competition, error) {
	league, err := s.source.LookupLeague(ctx, leagueID)
	if err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)
	var competition models.Competition
	err = db.Where("external_id = ?", leagueID).First(&competition).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		competition = models.Competition{
			ExternalID: &leagueID,
			Name:       league.Name,
			Format:     "league",
			Image:      league.Badge,
			Image2:     league.Logo,
		}
		if err := db.Create(&competition).Error; err != nil {
			return nil, fmt.Errorf("create competition for league %s: %w", leagueID, err)
		}
	case err != nil:
		return nil, err
	default:
		if err := db.Model(&competition).Updates(map[string]interface{}{
			"name":   league.Name,
			"image":  league.Badge,
			"image2": league.Logo,
		}).Error; err != nil {
			return nil, fmt.Errorf("update competition for league %s: %w", leagueID, err)
		}
	}

	log.Printf("[sync] league %s synced as competition %d (%s)", leagueID, competition.ID, competition.Name)
	return &competition, nil
}

type fetchFunc func(ctx context.Context, leagueID string) ([]sportsdb.Event, error)

func (s *SyncService) run(ctx context.Context, kind string, fetch fetchFunc) (*SyncReport, error) {
	report := &SyncReport{RunID: uuid.NewString()}

	var competitions []models.Competition
	if err := s.db.WithContext(ctx).
		Where("external_id IS NOT NULL AND external_id <> ''").
		Order("id ASC").
		Find(&competitions).Error; err != nil {
		return nil, fmt.Errorf("load competitions: %w", err)
	}

	log.Printf("[sync %s] %s sync of %d competitions", report.RunID, kind, len(competitions))

	for _, comp := range competitions {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		events, err := fetch(ctx, *comp.ExternalID)
		if err != nil {
			log.Printf("[sync %s] competition %d (%s): %v", report.RunID, comp.ID, comp.Name, err)
			continue
		}
		report.Competitions++
		s.SyncCompetition(ctx, comp, events, report)
	}

	log.Printf("[sync %s] done: %d created, %d updated, %d finished, %d failed",
		report.RunID, report.Created, report.Updated, report.Finished, report.Failed)
	return report, nil
}

// SyncCompetition upserts the events of one competition. A failing event is
// logged and counted; the rest still run.
func (s *SyncService) SyncCompetition(ctx context.Context, comp models.Competition, events []sportsdb.Event, report *SyncReport) {
	for _, ev := range events {
		match, err := s.toMatch(comp, ev)
		if err != nil {
			report.Failed++
			metrics.SyncedMatches.WithLabelValues("failed").Inc()
			log.Printf("[sync %s] competition %d event %s: %v", report.RunID, comp.ID, ev.ID, err)
			continue
		}

		created, finished, err := s.matches.UpsertByExternalID(ctx, *match)
		if err != nil {
			report.Failed++
			metrics.SyncedMatches.WithLabelValues("failed").Inc()
			log.Printf("[sync %s] competition %d event %s: %v", report.RunID, comp.ID, ev.ID, err)
			continue
		}

		if created {
			report.Created++
			metrics.SyncedMatches.WithLabelValues("created").Inc()
		} else {
			report.Updated++
			metrics.SyncedMatches.WithLabelValues("updated").Inc()
		}
		if finished {
			report.Finished++
			log.Printf("[sync %s] event %s (%s vs %s) finished", report.RunID, ev.ID, ev.HomeTeam, ev.AwayTeam)
		}
	}
}

func (s *SyncService) toMatch(comp models.Competition, ev sportsdb.Event) (*models.Match, error) {
	if ev.ID == "" {
		return nil, errors.New("event without id")
	}
	kickoff, ok := ev.KickoffUTC(s.location)
	if !ok {
		return nil, fmt.Errorf("event %s has no usable kickoff time", ev.ID)
	}

	home, away := ev.Goals()
	externalID := ev.ID
	venue := ev.Venue
	if venue == "" {
		venue = "Estadio Principal"
	}

	return &models.Match{
		CompetitionID: comp.ID,
		ExternalID:    &externalID,
		ScheduledAt:   kickoff,
		Round:         ev.RoundNumber(),
		Venue:         venue,
		HomeTeam:      ev.HomeTeam,
		HomeTeamImage: ev.HomeTeamBadge,
		AwayTeam:      ev.AwayTeam,
		AwayTeamImage: ev.AwayTeamBadge,
		HomeGoals:     home,
		AwayGoals:     away,
		Status:        NormalizeFeedStatus(ev.Status),
		BannerURL:     ev.Thumb,
		VideoURL:      ev.Video,
	}, nil
}

// NormalizeFeedStatus maps the feed's free-text status onto MatchStatus.
func NormalizeFeedStatus(status string) models.MatchStatus {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "match finished", "ft", "aet", "pen":
		return models.MatchFinished
	case "", "not started", "ns":
		return models.MatchNotStarted
	case "postponed", "cancelled", "canceled", "abandoned":
		return models.MatchCancelled
	default:
		return models.MatchPending
	}
}
