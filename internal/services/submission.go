package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/campuscore/campuscore-backend/internal/clients/gcs"
	types "github.com/campuscore/campuscore-backend/internal/domain"
	"github.com/campuscore/campuscore-backend/internal/data/repos"
	"github.com/campuscore/campuscore-backend/internal/platform/apierr"
	"github.com/campuscore/campuscore-backend/internal/platform/logger"
)

// SubmissionUpload is one file attached to a submission.
type SubmissionUpload struct {
	Filename    string
	ContentType string
	Reader      io.Reader
}

// SubmissionView pairs a submission with its grade, when one exists.
type SubmissionView struct {
	Submission *types.Submission `json:"submission"`
	Grade      *types.Grade      `json:"grade,omitempty"`
}

type SubmissionService interface {
	Submit(ctx context.Context, studentID, assignmentID uuid.UUID, uploads []SubmissionUpload) (*types.Submission, error)
	GetByID(ctx context.Context, submissionID uuid.UUID) (*types.Submission, error)
	ListByStudent(ctx context.Context, studentID uuid.UUID, assignmentID *uuid.UUID) ([]*SubmissionView, error)
	ListByAssignment(ctx context.Context, assignmentID uuid.UUID) ([]*SubmissionView, error)
}

type submissionService struct {
	db             *gorm.DB
	log            *logger.Logger
	submissionRepo repos.SubmissionRepo
	gradeRepo      repos.GradeRepo
	assignmentRepo repos.AssignmentRepo
	bucket         gcs.BucketService
}

func NewSubmissionService(
	db *gorm.DB,
	baseLog *logger.Logger,
	submissionRepo repos.SubmissionRepo,
	gradeRepo repos.GradeRepo,
	assignmentRepo repos.AssignmentRepo,
	bucket gcs.BucketService,
) SubmissionService {
	return &submissionService{
		db:             db,
		log:            baseLog.With("service", "SubmissionService"),
		submissionRepo: submissionRepo,
		gradeRepo:      gradeRepo,
		assignmentRepo: assignmentRepo,
		bucket:         bucket,
	}
}

const maxSubmissionFiles = 10

// objectKey builds the storage key for an uploaded file. The timestamp keeps
// resubmissions of the same filename from clobbering each other.
func objectKey(filename string) string {
	ext := filepath.Ext(filename)
	name := strings.TrimSuffix(filepath.Base(filename), ext)
	return fmt.Sprintf("assignments/%s-%d%s", name, time.Now().UnixNano(), ext)
}

func (ss *submissionService) Submit(ctx context.Context, studentID, assignmentID uuid.UUID, uploads []SubmissionUpload) (*types.Submission, error) {
	if len(uploads) == 0 {
		return nil, apierr.Validation("no_files", fmt.Errorf("a submission needs at least one file"))
	}
	if len(uploads) > maxSubmissionFiles {
		return nil, apierr.Validation("too_many_files", fmt.Errorf("a submission carries at most %d files", maxSubmissionFiles))
	}

	assignments, err := ss.assignmentRepo.GetByIDs(ctx, nil, []uuid.UUID{assignmentID})
	if err != nil {
		return nil, fmt.Errorf("load assignment: %w", err)
	}
	if len(assignments) == 0 {
		return nil, apierr.NotFound("not_found", fmt.Errorf("assignment not found"))
	}

	refs := make([]types.FileRef, len(uploads))
	g, gctx := errgroup.WithContext(ctx)
	for i, u := range uploads {
		g.Go(func() error {
			url, err := ss.bucket.UploadFile(gctx, objectKey(u.Filename), u.Reader, u.ContentType)
			if err != nil {
				return apierr.Dependency("upload_failed", fmt.Errorf("upload %s: %w", u.Filename, err))
			}
			refs[i] = types.FileRef{URL: url, Filename: u.Filename}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	submission := &types.Submission{
		ID:           uuid.New(),
		AssignmentID: assignmentID,
		StudentID:    studentID,
		SubmittedAt:  time.Now().UTC(),
	}
	if err := submission.SetFileRefs(refs); err != nil {
		return nil, fmt.Errorf("encode file refs: %w", err)
	}
	if _, err := ss.submissionRepo.Create(ctx, nil, []*types.Submission{submission}); err != nil {
		return nil, fmt.Errorf("create submission: %w", err)
	}

	ss.log.Info("Submission created",
		"submission_id", submission.ID.String(),
		"assignment_id", assignmentID.String(),
		"student_id", studentID.String(),
		"files", len(refs))
	return submission, nil
}

func (ss *submissionService) GetByID(ctx context.Context, submissionID uuid.UUID) (*types.Submission, error) {
	submissions, err := ss.submissionRepo.GetByIDs(ctx, nil, []uuid.UUID{submissionID})
	if err != nil {
		return nil, fmt.Errorf("load submission: %w", err)
	}
	if len(submissions) == 0 {
		return nil, apierr.NotFound("not_found", fmt.Errorf("submission not found"))
	}
	return submissions[0], nil
}

func (ss *submissionService) attachGrades(ctx context.Context, submissions []*types.Submission) ([]*SubmissionView, error) {
	ids := make([]uuid.UUID, 0, len(submissions))
	for _, s := range submissions {
		ids = append(ids, s.ID)
	}
	views := make([]*SubmissionView, 0, len(submissions))
	if len(ids) == 0 {
		return views, nil
	}
	grades, err := ss.gradeRepo.GetBySubmissionIDs(ctx, nil, ids)
	if err != nil {
		return nil, fmt.Errorf("load grades: %w", err)
	}
	bySubmission := make(map[uuid.UUID]*types.Grade, len(grades))
	for _, g := range grades {
		bySubmission[g.SubmissionID] = g
	}
	for _, s := range submissions {
		views = append(views, &SubmissionView{Submission: s, Grade: bySubmission[s.ID]})
	}
	return views, nil
}

func (ss *submissionService) ListByStudent(ctx context.Context, studentID uuid.UUID, assignmentID *uuid.UUID) ([]*SubmissionView, error) {
	submissions, err := ss.submissionRepo.GetByStudentID(ctx, nil, studentID, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	return ss.attachGrades(ctx, submissions)
}

func (ss *submissionService) ListByAssignment(ctx context.Context, assignmentID uuid.UUID) ([]*SubmissionView, error) {
	assignments, err := ss.assignmentRepo.GetByIDs(ctx, nil, []uuid.UUID{assignmentID})
	if err != nil {
		return nil, fmt.Errorf("load assignment: %w", err)
	}
	if len(assignments) == 0 {
		return nil, apierr.NotFound("not_found", fmt.Errorf("assignment not found"))
	}
	submissions, err := ss.submissionRepo.GetByAssignmentIDs(ctx, nil, []uuid.UUID{assignmentID})
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	return ss.attachGrades(ctx, submissions)
}
