package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/campuscore/campuscore-backend/internal/domain"
	"github.com/campuscore/campuscore-backend/internal/data/repos"
	"github.com/campuscore/campuscore-backend/internal/platform/apierr"
	"github.com/campuscore/campuscore-backend/internal/platform/logger"
)

type AssignmentInput struct {
	Title       string
	Description string
	DueDate     time.Time
	CourseID    uuid.UUID
}

type AssignmentService interface {
	Create(ctx context.Context, lecturerID uuid.UUID, input AssignmentInput) (*types.Assignment, error)
	GetByID(ctx context.Context, assignmentID uuid.UUID) (*types.Assignment, error)
	ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*types.Assignment, error)
	Delete(ctx context.Context, assignmentID, lecturerID uuid.UUID) error
}

type assignmentService struct {
	db             *gorm.DB
	log            *logger.Logger
	assignmentRepo repos.AssignmentRepo
	courseRepo     repos.CourseRepo
}

func NewAssignmentService(
	db *gorm.DB,
	baseLog *logger.Logger,
	assignmentRepo repos.AssignmentRepo,
	courseRepo repos.CourseRepo,
) AssignmentService {
	return &assignmentService{
		db:             db,
		log:            baseLog.With("service", "AssignmentService"),
		assignmentRepo: assignmentRepo,
		courseRepo:     courseRepo,
	}
}

func (as *assignmentService) Create(ctx context.Context, lecturerID uuid.UUID, input AssignmentInput) (*types.Assignment, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apierr.Validation("invalid_request", fmt.Errorf("assignment title is required"))
	}
	if input.DueDate.IsZero() {
		return nil, apierr.Validation("invalid_request", fmt.Errorf("assignment due date is required"))
	}

	courses, err := as.courseRepo.GetByIDs(ctx, nil, []uuid.UUID{input.CourseID})
	if err != nil {
		return nil, fmt.Errorf("load course: %w", err)
	}
	if len(courses) == 0 {
		return nil, apierr.NotFound("not_found", fmt.Errorf("course not found"))
	}
	if courses[0].LecturerID != lecturerID {
		return nil, apierr.Forbidden("not_course_owner", fmt.Errorf("course belongs to another lecturer"))
	}

	assignment := &types.Assignment{
		ID:          uuid.New(),
		Title:       title,
		Description: input.Description,
		DueDate:     input.DueDate,
		CourseID:    input.CourseID,
	}
	if _, err := as.assignmentRepo.Create(ctx, nil, []*types.Assignment{assignment}); err != nil {
		return nil, fmt.Errorf("create assignment: %w", err)
	}
	as.log.Info("Assignment created", "assignment_id", assignment.ID.String(), "course_id", input.CourseID.String())
	return assignment, nil
}

func (as *assignmentService) GetByID(ctx context.Context, assignmentID uuid.UUID) (*types.Assignment, error) {
	assignments, err := as.assignmentRepo.GetByIDs(ctx, nil, []uuid.UUID{assignmentID})
	if err != nil {
		return nil, fmt.Errorf("load assignment: %w", err)
	}
	if len(assignments) == 0 {
		return nil, apierr.NotFound("not_found", fmt.Errorf("assignment not found"))
	}
	return assignments[0], nil
}

func (as *assignmentService) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*types.Assignment, error) {
	courses, err := as.courseRepo.GetByIDs(ctx, nil, []uuid.UUID{courseID})
	if err != nil {
		return nil, fmt.Errorf("load course: %w", err)
	}
	if len(courses) == 0 {
		return nil, apierr.NotFound("not_found", fmt.Errorf("course not found"))
	}
	assignments, err := as.assignmentRepo.GetByCourseIDs(ctx, nil, []uuid.UUID{courseID})
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	return assignments, nil
}

// Delete removes the assignment and everything hanging off it, submissions
// and grades included.
func (as *assignmentService) Delete(ctx context.Context, assignmentID, lecturerID uuid.UUID) error {
	assignments, err := as.assignmentRepo.GetByIDs(ctx, nil, []uuid.UUID{assignmentID})
	if err != nil {
		return fmt.Errorf("load assignment: %w", err)
	}
	if len(assignments) == 0 {
		return apierr.NotFound("not_found", fmt.Errorf("assignment not found"))
	}
	courses, err := as.courseRepo.GetByIDs(ctx, nil, []uuid.UUID{assignments[0].CourseID})
	if err != nil {
		return fmt.Errorf("load course: %w", err)
	}
	if len(courses) > 0 && courses[0].LecturerID != lecturerID {
		return apierr.Forbidden("not_course_owner", fmt.Errorf("course belongs to another lecturer"))
	}

	err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("assignment_id = ?", assignmentID).Delete(&types.Grade{}).Error; err != nil {
			return fmt.Errorf("delete grades: %w", err)
		}
		if err := tx.Where("assignment_id = ?", assignmentID).Delete(&types.Submission{}).Error; err != nil {
			return fmt.Errorf("delete submissions: %w", err)
		}
		if err := as.assignmentRepo.FullDeleteByIDs(ctx, tx, []uuid.UUID{assignmentID}); err != nil {
			return fmt.Errorf("delete assignment: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	as.log.Info("Assignment deleted", "assignment_id", assignmentID.String())
	return nil
}
