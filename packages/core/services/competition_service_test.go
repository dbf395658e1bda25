package services

import (
	"context"
	"errors"
	"testing"

	"prode-api/packages/core/apperrors"
	"prode-api/packages/core/models"
	"prode-api/packages/core/testutil"
)

func TestCompetitionCRUD(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewCompetitionService(db)
	ctx := context.Background()

	comp, err := svc.CreateCompetition(ctx, models.CreateCompetitionRequest{Name: "Copa Libertadores"})
	if err != nil {
		t.Fatalf("CreateCompetition: %v", err)
	}
	if comp.Format != "cup" {
		t.Fatalf("want default format cup, got %q", comp.Format)
	}

	if _, err := svc.CreateCompetition(ctx, models.CreateCompetitionRequest{Name: "Copa Libertadores"}); !errors.Is(err, apperrors.ErrConflict) {
		t.Fatalf("duplicate: want conflict, got %v", err)
	}
	if _, err := svc.CreateCompetition(ctx, models.CreateCompetitionRequest{Name: "Copa"}); !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("short name: want validation error, got %v", err)
	}

	if _, err := svc.UpdateCompetition(ctx, comp.ID, models.UpdateCompetitionRequest{}); !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("empty update: want validation error, got %v", err)
	}
	format := "league"
	updated, err := svc.UpdateCompetition(ctx, comp.ID, models.UpdateCompetitionRequest{Format: &format})
	if err != nil || updated.Format != "league" {
		t.Fatalf("UpdateCompetition: %v %+v", err, updated)
	}

	if err := svc.DeleteCompetition(ctx, comp.ID); err != nil {
		t.Fatalf("DeleteCompetition: %v", err)
	}
	if err := svc.DeleteCompetition(ctx, comp.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("second delete: want not found, got %v", err)
	}
	if _, err := svc.GetCompetition(ctx, comp.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("deleted competition: want not found, got %v", err)
	}
}
