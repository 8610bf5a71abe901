package services

import (
	"context"
	"testing"
	"time"

	types "github.com/campuscore/campuscore-backend/internal/domain"
	"github.com/campuscore/campuscore-backend/internal/data/repos"
	"github.com/campuscore/campuscore-backend/internal/data/repos/testutil"
	"github.com/campuscore/campuscore-backend/internal/platform/apierr"
)

func newNewsEventService(t *testing.T) NewsEventService {
	t.Helper()
	gdb := testutil.DB(t)
	log := testutil.Logger(t)
	return NewNewsEventService(log, repos.NewNewsEventRepo(gdb, log))
}

func TestNewsEventService_CreateNews(t *testing.T) {
	ctx := context.Background()
	svc := newNewsEventService(t)

	entry, err := svc.Create(ctx, NewsEventInput{
		Title:       "Exam schedule online",
		Description: "Check the portal",
		Type:        types.TypeNews,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if entry.Date.IsZero() {
		t.Fatalf("expected a defaulted date")
	}

	got, err := svc.GetByID(ctx, entry.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.Title != "Exam schedule online" {
		t.Fatalf("unexpected title %q", got.Title)
	}
}

func TestNewsEventService_EventNeedsValidDateRange(t *testing.T) {
	ctx := context.Background()
	svc := newNewsEventService(t)

	start := time.Now().Add(24 * time.Hour)
	endBefore := start.Add(-time.Hour)

	_, err := svc.Create(ctx, NewsEventInput{
		Title: "Broken event",
		Type:  types.TypeEvent,
		StartDate: &start,
		EndDate:   &endBefore,
	})
	if err == nil {
		t.Fatalf("expected inverted range to fail")
	}
	if ae := apierr.From(err); ae.Code != "invalid_date_range" {
		t.Fatalf("expected invalid_date_range, got %q", ae.Code)
	}

	_, err = svc.Create(ctx, NewsEventInput{
		Title: "Half-specified event",
		Type:  types.TypeEvent,
		StartDate: &start,
	})
	if err == nil {
		t.Fatalf("expected missing end date to fail")
	}
}

func TestNewsEventService_RejectsUnknownType(t *testing.T) {
	ctx := context.Background()
	svc := newNewsEventService(t)

	_, err := svc.Create(ctx, NewsEventInput{Title: "x", Type: "announcement"})
	if err == nil {
		t.Fatalf("expected unknown type to fail")
	}
	if ae := apierr.From(err); ae.Code != "invalid_type" {
		t.Fatalf("expected invalid_type, got %q", ae.Code)
	}

	if _, err := svc.List(ctx, "announcement"); err == nil {
		t.Fatalf("expected filter on unknown type to fail")
	}
}

func TestNewsEventService_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	svc := newNewsEventService(t)

	entry, err := svc.Create(ctx, NewsEventInput{Title: "Draft", Type: types.TypeNews})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Update(ctx, entry.ID, NewsEventInput{
		Title: "Published",
		Type:  types.TypeNews,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "Published" {
		t.Fatalf("unexpected title after update: %q", updated.Title)
	}

	if err := svc.Delete(ctx, entry.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.GetByID(ctx, entry.ID); err == nil {
		t.Fatalf("entry still readable after delete")
	}
}
