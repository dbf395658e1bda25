package cron

import (
	"context"
	"log"
	"time"

	"prode-api/packages/core/services"

	"github.com/robfig/cron/v3"
)

// DefaultSchedule runs the recent-fixtures sync every five minutes.
const DefaultSchedule = "0 */5 * * * *"

// RecentSyncer is the job the scheduler drives.
type RecentSyncer interface {
	SyncRecent(ctx context.Context) (*services.SyncReport, error)
}

type Scheduler struct {
	cron     *cron.Cron
	syncer   RecentSyncer
	schedule string
	timeout  time.Duration
}

func NewScheduler(syncer RecentSyncer, schedule string) *Scheduler {
	if schedule == "" {
		schedule = DefaultSchedule
	}
	// Seconds precision; a run still in progress skips the next tick.
	c := cron.New(
		cron.WithSeconds(),
		cron.WithLogger(cron.VerbosePrintfLogger(log.Default())),
		cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)),
	)

	return &Scheduler{
		cron:     c,
		syncer:   syncer,
		schedule: schedule,
		timeout:  4 * time.Minute,
	}
}

// Start registers the jobs and starts the scheduler
func (s *Scheduler) Start() error {
	log.Println("Starting cron scheduler...")

	_, err := s.cron.AddFunc(s.schedule, s.runSync)
	if err != nil {
		log.Printf("Error scheduling match sync job: %v", err)
		return err
	}

	s.cron.Start()
	log.Printf("Cron scheduler started, match sync on %q", s.schedule)

	return nil
}

// Stop waits for a running job to finish
func (s *Scheduler) Stop() {
	log.Println("Stopping cron scheduler...")
	<-s.cron.Stop().Done()
	log.Println("Cron scheduler stopped")
}

func (s *Scheduler) runSync() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	report, err := s.syncer.SyncRecent(ctx)
	if err != nil {
		log.Printf("Error during match sync: %v", err)
		return
	}

	log.Printf("Match sync %s completed: %d competitions, %d finished", report.RunID, report.Competitions, report.Finished)
}

// RunNow triggers the sync job outside the schedule
func (s *Scheduler) RunNow() {
	log.Println("Manually triggering match sync job...")
	s.runSync()
}
