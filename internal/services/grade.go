package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/campuscore/campuscore-backend/internal/domain"
	"github.com/campuscore/campuscore-backend/internal/data/repos"
	"github.com/campuscore/campuscore-backend/internal/platform/apierr"
	"github.com/campuscore/campuscore-backend/internal/platform/logger"
)

type GradeService interface {
	// GradeOrUpdate records a grade for the submission, updating the existing
	// grade in place when the submission was graded before. Returns the grade
	// and whether it was newly created.
	GradeOrUpdate(ctx context.Context, graderID, submissionID uuid.UUID, score int, feedback string) (*types.Grade, bool, error)
	GetBySubmission(ctx context.Context, submissionID uuid.UUID) (*types.Grade, error)
	// GetByAssignmentAndStudent resolves to the student's most recent
	// submission for the assignment.
	GetByAssignmentAndStudent(ctx context.Context, assignmentID, studentID uuid.UUID) (*types.Grade, error)
	ListByStudent(ctx context.Context, studentID uuid.UUID) ([]*types.Grade, error)
	ListByAssignment(ctx context.Context, assignmentID uuid.UUID) ([]*types.Grade, error)
}

type gradeService struct {
	db             *gorm.DB
	log            *logger.Logger
	gradeRepo      repos.GradeRepo
	submissionRepo repos.SubmissionRepo
}

func NewGradeService(
	db *gorm.DB,
	baseLog *logger.Logger,
	gradeRepo repos.GradeRepo,
	submissionRepo repos.SubmissionRepo,
) GradeService {
	return &gradeService{
		db:             db,
		log:            baseLog.With("service", "GradeService"),
		gradeRepo:      gradeRepo,
		submissionRepo: submissionRepo,
	}
}

func (gs *gradeService) GradeOrUpdate(ctx context.Context, graderID, submissionID uuid.UUID, score int, feedback string) (*types.Grade, bool, error) {
	if score < 0 || score > 100 {
		return nil, false, apierr.Validation("out_of_range", fmt.Errorf("score must be between 0 and 100"))
	}

	var (
		grade   *types.Grade
		created bool
	)
	err := gs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		submissions, err := gs.submissionRepo.GetByIDs(ctx, tx, []uuid.UUID{submissionID})
		if err != nil {
			return fmt.Errorf("load submission: %w", err)
		}
		if len(submissions) == 0 {
			return apierr.NotFound("submission_not_found", fmt.Errorf("submission not found"))
		}
		submission := submissions[0]

		existing, err := gs.gradeRepo.GetBySubmissionIDs(ctx, tx, []uuid.UUID{submissionID})
		if err != nil {
			return fmt.Errorf("load grade: %w", err)
		}
		if len(existing) > 0 {
			grade = existing[0]
			if err := gs.gradeRepo.UpdateScore(ctx, tx, grade.ID, score, feedback, graderID); err != nil {
				return fmt.Errorf("update grade: %w", err)
			}
			grade.Score = score
			grade.Feedback = feedback
			grade.GradedBy = graderID
			return nil
		}

		grade = &types.Grade{
			ID:           uuid.New(),
			SubmissionID: submissionID,
			AssignmentID: submission.AssignmentID,
			StudentID:    submission.StudentID,
			Score:        score,
			Feedback:     feedback,
			GradedBy:     graderID,
		}
		if _, err := gs.gradeRepo.Create(ctx, tx, []*types.Grade{grade}); err != nil {
			return fmt.Errorf("create grade: %w", err)
		}
		if err := gs.submissionRepo.SetGradeID(ctx, tx, submissionID, grade.ID); err != nil {
			return fmt.Errorf("link grade: %w", err)
		}
		created = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	gs.log.Info("Submission graded",
		"submission_id", submissionID.String(),
		"grade_id", grade.ID.String(),
		"created", created)
	return grade, created, nil
}

func (gs *gradeService) GetBySubmission(ctx context.Context, submissionID uuid.UUID) (*types.Grade, error) {
	grades, err := gs.gradeRepo.GetBySubmissionIDs(ctx, nil, []uuid.UUID{submissionID})
	if err != nil {
		return nil, fmt.Errorf("load grade: %w", err)
	}
	if len(grades) == 0 {
		return nil, apierr.NotFound("not_found", fmt.Errorf("submission has no grade"))
	}
	return grades[0], nil
}

func (gs *gradeService) GetByAssignmentAndStudent(ctx context.Context, assignmentID, studentID uuid.UUID) (*types.Grade, error) {
	submissions, err := gs.submissionRepo.GetByAssignmentAndStudent(ctx, nil, assignmentID, studentID)
	if err != nil {
		return nil, fmt.Errorf("load submissions: %w", err)
	}
	if len(submissions) == 0 {
		return nil, apierr.NotFound("not_found", fmt.Errorf("no submission for this assignment"))
	}
	// Submissions come back newest-first; the newest one's grade wins.
	grades, err := gs.gradeRepo.GetBySubmissionIDs(ctx, nil, []uuid.UUID{submissions[0].ID})
	if err != nil {
		return nil, fmt.Errorf("load grade: %w", err)
	}
	if len(grades) == 0 {
		return nil, apierr.NotFound("not_found", fmt.Errorf("submission has no grade"))
	}
	return grades[0], nil
}

func (gs *gradeService) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]*types.Grade, error) {
	grades, err := gs.gradeRepo.GetByStudentID(ctx, nil, studentID)
	if err != nil {
		return nil, fmt.Errorf("list grades: %w", err)
	}
	return grades, nil
}

func (gs *gradeService) ListByAssignment(ctx context.Context, assignmentID uuid.UUID) ([]*types.Grade, error) {
	grades, err := gs.gradeRepo.GetByAssignmentID(ctx, nil, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("list grades: %w", err)
	}
	return grades, nil
}
