package cron

import (
	"context"
	"errors"
	"testing"

	"prode-api/packages/core/services"
)

type stubSyncer struct {
	runs int
	err  error
}

func (s *stubSyncer) SyncRecent(ctx context.Context) (*services.SyncReport, error) {
	s.runs++
	if _, ok := ctx.Deadline(); !ok {
		return nil, errors.New("sync must run with a deadline")
	}
	if s.err != nil {
		return nil, s.err
	}
	return &services.SyncReport{RunID: "run"}, nil
}

func TestRunNow(t *testing.T) {
	syncer := &stubSyncer{}
	s := NewScheduler(syncer, "")
	s.RunNow()
	if syncer.runs != 1 {
		t.Fatalf("want one run, got %d", syncer.runs)
	}

	syncer.err = errors.New("feed down")
	s.RunNow()
	if syncer.runs != 2 {
		t.Fatalf("a failing run should still be attempted, got %d", syncer.runs)
	}
}

func TestStartRejectsBadSchedule(t *testing.T) {
	s := NewScheduler(&stubSyncer{}, "not a schedule")
	if err := s.Start(); err == nil {
		s.Stop()
		t.Fatalf("expected an invalid schedule to fail")
	}
}

func TestStartStop(t *testing.T) {
	s := NewScheduler(&stubSyncer{}, DefaultSchedule)
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	s.Stop()
}
