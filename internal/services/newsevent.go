package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	types "github.com/campuscore/campuscore-backend/internal/domain"
	"github.com/campuscore/campuscore-backend/internal/data/repos"
	"github.com/campuscore/campuscore-backend/internal/platform/apierr"
	"github.com/campuscore/campuscore-backend/internal/platform/logger"
)

type NewsEventInput struct {
	Title       string
	Description string
	Date        time.Time
	Type        string
	StartDate   *time.Time
	EndDate     *time.Time
}

type NewsEventService interface {
	Create(ctx context.Context, input NewsEventInput) (*types.NewsEvent, error)
	Update(ctx context.Context, id uuid.UUID, input NewsEventInput) (*types.NewsEvent, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*types.NewsEvent, error)
	List(ctx context.Context, eventType string) ([]*types.NewsEvent, error)
}

type newsEventService struct {
	log           *logger.Logger
	newsEventRepo repos.NewsEventRepo
}

func NewNewsEventService(baseLog *logger.Logger, newsEventRepo repos.NewsEventRepo) NewsEventService {
	return &newsEventService{
		log:           baseLog.With("service", "NewsEventService"),
		newsEventRepo: newsEventRepo,
	}
}

func validateNewsEventInput(input NewsEventInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return apierr.Validation("invalid_request", fmt.Errorf("title is required"))
	}
	if !types.ValidNewsEventType(input.Type) {
		return apierr.Validation("invalid_type", fmt.Errorf("unknown entry type %q", input.Type))
	}
	if input.Type == types.TypeEvent {
		if input.StartDate == nil || input.EndDate == nil {
			return apierr.Validation("invalid_request", fmt.Errorf("events need a start and end date"))
		}
		if !input.StartDate.Before(*input.EndDate) {
			return apierr.Validation("invalid_date_range", fmt.Errorf("event start must be before its end"))
		}
	}
	return nil
}

func (ns *newsEventService) Create(ctx context.Context, input NewsEventInput) (*types.NewsEvent, error) {
	if err := validateNewsEventInput(input); err != nil {
		return nil, err
	}
	date := input.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}
	entry := &types.NewsEvent{
		ID:          uuid.New(),
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Date:        date,
		Type:        input.Type,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
	}
	if _, err := ns.newsEventRepo.Create(ctx, nil, []*types.NewsEvent{entry}); err != nil {
		return nil, fmt.Errorf("create news event: %w", err)
	}
	ns.log.Info("Feed entry created", "id", entry.ID.String(), "type", entry.Type)
	return entry, nil
}

func (ns *newsEventService) Update(ctx context.Context, id uuid.UUID, input NewsEventInput) (*types.NewsEvent, error) {
	if err := validateNewsEventInput(input); err != nil {
		return nil, err
	}
	existing, err := ns.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	existing.Title = strings.TrimSpace(input.Title)
	existing.Description = input.Description
	if !input.Date.IsZero() {
		existing.Date = input.Date
	}
	existing.Type = input.Type
	existing.StartDate = input.StartDate
	existing.EndDate = input.EndDate
	if err := ns.newsEventRepo.Update(ctx, nil, existing); err != nil {
		return nil, fmt.Errorf("update news event: %w", err)
	}
	return existing, nil
}

func (ns *newsEventService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := ns.GetByID(ctx, id); err != nil {
		return err
	}
	if err := ns.newsEventRepo.FullDeleteByIDs(ctx, nil, []uuid.UUID{id}); err != nil {
		return fmt.Errorf("delete news event: %w", err)
	}
	ns.log.Info("Feed entry deleted", "id", id.String())
	return nil
}

func (ns *newsEventService) GetByID(ctx context.Context, id uuid.UUID) (*types.NewsEvent, error) {
	entries, err := ns.newsEventRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
	if err != nil {
		return nil, fmt.Errorf("load news event: %w", err)
	}
	if len(entries) == 0 {
		return nil, apierr.NotFound("not_found", fmt.Errorf("entry not found"))
	}
	return entries[0], nil
}

func (ns *newsEventService) List(ctx context.Context, eventType string) ([]*types.NewsEvent, error) {
	if eventType != "" && !types.ValidNewsEventType(eventType) {
		return nil, apierr.Validation("invalid_type", fmt.Errorf("unknown entry type %q", eventType))
	}
	entries, err := ns.newsEventRepo.List(ctx, nil, eventType)
	if err != nil {
		return nil, fmt.Errorf("list news events: %w", err)
	}
	return entries, nil
}
