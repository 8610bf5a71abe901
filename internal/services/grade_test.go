package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	types "github.com/campuscore/campuscore-backend/internal/domain"
	"github.com/campuscore/campuscore-backend/internal/data/repos"
	"github.com/campuscore/campuscore-backend/internal/data/repos/testutil"
	"github.com/campuscore/campuscore-backend/internal/platform/apierr"
)

type gradeHarness struct {
	grades      GradeService
	submissions repos.SubmissionRepo
}

func newGradeHarness(t *testing.T) gradeHarness {
	t.Helper()
	gdb := testutil.DB(t)
	log := testutil.Logger(t)
	gradeRepo := repos.NewGradeRepo(gdb, log)
	submissionRepo := repos.NewSubmissionRepo(gdb, log)
	return gradeHarness{
		grades:      NewGradeService(gdb, log, gradeRepo, submissionRepo),
		submissions: submissionRepo,
	}
}

func TestGradeService_GradeThenUpdateInPlace(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.DB(t)
	h := newGradeHarness(t)

	lecturer := testutil.SeedUser(t, ctx, gdb, uniqueEmail("grader"), types.RoleLecturer)
	student := testutil.SeedUser(t, ctx, gdb, uniqueEmail("graded"), types.RoleStudent)
	c := testutil.SeedCourse(t, ctx, gdb, lecturer.ID, "Grading 101")
	a := testutil.SeedAssignment(t, ctx, gdb, c.ID, "Essay")
	s := testutil.SeedSubmission(t, ctx, gdb, a.ID, student.ID)

	grade, created, err := h.grades.GradeOrUpdate(ctx, lecturer.ID, s.ID, 80, "good start")
	if err != nil {
		t.Fatalf("grade: %v", err)
	}
	if !created {
		t.Fatalf("expected a fresh grade")
	}
	if grade.Score != 80 || grade.StudentID != student.ID || grade.AssignmentID != a.ID {
		t.Fatalf("unexpected grade: %+v", grade)
	}

	// The submission now points back at the grade.
	subs, err := h.submissions.GetByIDs(ctx, nil, []uuid.UUID{s.ID})
	if err != nil || len(subs) != 1 {
		t.Fatalf("reload submission: %v (n=%d)", err, len(subs))
	}
	if subs[0].GradeID == nil || *subs[0].GradeID != grade.ID {
		t.Fatalf("submission grade link missing, got %v", subs[0].GradeID)
	}

	updated, created, err := h.grades.GradeOrUpdate(ctx, lecturer.ID, s.ID, 95, "revised")
	if err != nil {
		t.Fatalf("regrade: %v", err)
	}
	if created {
		t.Fatalf("expected update, not a second grade")
	}
	if updated.ID != grade.ID {
		t.Fatalf("grade id changed on update: %s vs %s", updated.ID, grade.ID)
	}
	if updated.Score != 95 || updated.Feedback != "revised" {
		t.Fatalf("unexpected grade after update: %+v", updated)
	}

	// The back-reference survives the regrade.
	subs, err = h.submissions.GetByIDs(ctx, nil, []uuid.UUID{s.ID})
	if err != nil || len(subs) != 1 {
		t.Fatalf("reload submission: %v (n=%d)", err, len(subs))
	}
	if subs[0].GradeID == nil || *subs[0].GradeID != grade.ID {
		t.Fatalf("submission grade link changed, got %v", subs[0].GradeID)
	}
}

func TestGradeService_AcceptsBoundaryScores(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.DB(t)
	h := newGradeHarness(t)

	lecturer := testutil.SeedUser(t, ctx, gdb, uniqueEmail("grader"), types.RoleLecturer)
	student := testutil.SeedUser(t, ctx, gdb, uniqueEmail("graded"), types.RoleStudent)
	c := testutil.SeedCourse(t, ctx, gdb, lecturer.ID, "Grading 102")
	a := testutil.SeedAssignment(t, ctx, gdb, c.ID, "Quiz")
	s := testutil.SeedSubmission(t, ctx, gdb, a.ID, student.ID)

	for _, score := range []int{0, 100} {
		grade, _, err := h.grades.GradeOrUpdate(ctx, lecturer.ID, s.ID, score, "")
		if err != nil {
			t.Fatalf("score %d should be accepted: %v", score, err)
		}
		if grade.Score != score {
			t.Fatalf("expected score %d, got %d", score, grade.Score)
		}
	}
}

func TestGradeService_RejectsOutOfRangeScore(t *testing.T) {
	ctx := context.Background()
	h := newGradeHarness(t)

	for _, score := range []int{-1, 101} {
		_, _, err := h.grades.GradeOrUpdate(ctx, uuid.New(), uuid.New(), score, "")
		if err == nil {
			t.Fatalf("expected score %d to be rejected", score)
		}
		if ae := apierr.From(err); ae.Code != "out_of_range" {
			t.Fatalf("expected out_of_range, got %q", ae.Code)
		}
	}
}

func TestGradeService_UnknownSubmission(t *testing.T) {
	ctx := context.Background()
	h := newGradeHarness(t)

	_, _, err := h.grades.GradeOrUpdate(ctx, uuid.New(), uuid.New(), 50, "")
	if err == nil {
		t.Fatalf("expected unknown submission to fail")
	}
	if ae := apierr.From(err); ae.Code != "submission_not_found" {
		t.Fatalf("expected submission_not_found, got %q", ae.Code)
	}
}

func TestGradeService_GetByAssignmentAndStudent_UsesNewestSubmission(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.DB(t)
	h := newGradeHarness(t)

	lecturer := testutil.SeedUser(t, ctx, gdb, uniqueEmail("grader"), types.RoleLecturer)
	student := testutil.SeedUser(t, ctx, gdb, uniqueEmail("resub"), types.RoleStudent)
	c := testutil.SeedCourse(t, ctx, gdb, lecturer.ID, "Grading 102")
	a := testutil.SeedAssignment(t, ctx, gdb, c.ID, "Project")

	first := testutil.SeedSubmission(t, ctx, gdb, a.ID, student.ID)
	if _, _, err := h.grades.GradeOrUpdate(ctx, lecturer.ID, first.ID, 60, "first try"); err != nil {
		t.Fatalf("grade first: %v", err)
	}

	second := testutil.SeedSubmission(t, ctx, gdb, a.ID, student.ID)
	// Nudge ordering in case both fixtures land on the same timestamp.
	if err := gdb.Model(&types.Submission{}).
		Where("id = ?", first.ID).
		Update("submitted_at", first.SubmittedAt.Add(-time.Hour)).Error; err != nil {
		t.Fatalf("backdate first submission: %v", err)
	}
	if _, _, err := h.grades.GradeOrUpdate(ctx, lecturer.ID, second.ID, 85, "resubmission"); err != nil {
		t.Fatalf("grade second: %v", err)
	}

	grade, err := h.grades.GetByAssignmentAndStudent(ctx, a.ID, student.ID)
	if err != nil {
		t.Fatalf("get by assignment and student: %v", err)
	}
	if grade.SubmissionID != second.ID || grade.Score != 85 {
		t.Fatalf("expected newest submission's grade, got submission=%s score=%d",
			grade.SubmissionID, grade.Score)
	}
}
