package gradebook

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	types "github.com/campuscore/campuscore-backend/internal/domain"
	"github.com/campuscore/campuscore-backend/internal/data/repos/testutil"
)

func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%s@campus.test", prefix, uuid.NewString()[:8])
}

func TestSubmissionRepo_SetGradeIDIsWriteOnce(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	repo := NewSubmissionRepo(gdb, testutil.Logger(t))

	lecturer := testutil.SeedUser(t, ctx, tx, uniqueEmail("lect"), types.RoleLecturer)
	student := testutil.SeedUser(t, ctx, tx, uniqueEmail("stud"), types.RoleStudent)
	c := testutil.SeedCourse(t, ctx, tx, lecturer.ID, "Gradebook 101")
	a := testutil.SeedAssignment(t, ctx, tx, c.ID, "Homework 1")
	s := testutil.SeedSubmission(t, ctx, tx, a.ID, student.ID)

	first := uuid.New()
	second := uuid.New()

	if err := repo.SetGradeID(ctx, tx, s.ID, first); err != nil {
		t.Fatalf("first link: %v", err)
	}
	if err := repo.SetGradeID(ctx, tx, s.ID, second); err != nil {
		t.Fatalf("second link: %v", err)
	}

	got, err := repo.GetByIDs(ctx, tx, []uuid.UUID{s.ID})
	if err != nil || len(got) != 1 {
		t.Fatalf("reload submission: %v (n=%d)", err, len(got))
	}
	if got[0].GradeID == nil || *got[0].GradeID != first {
		t.Fatalf("expected grade_id to stay %s, got %v", first, got[0].GradeID)
	}
}

func TestSubmissionRepo_GetByStudentID_FiltersAndOrders(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	repo := NewSubmissionRepo(gdb, testutil.Logger(t))

	lecturer := testutil.SeedUser(t, ctx, tx, uniqueEmail("lect"), types.RoleLecturer)
	student := testutil.SeedUser(t, ctx, tx, uniqueEmail("stud"), types.RoleStudent)
	c := testutil.SeedCourse(t, ctx, tx, lecturer.ID, "Gradebook 102")
	a1 := testutil.SeedAssignment(t, ctx, tx, c.ID, "Homework 1")
	a2 := testutil.SeedAssignment(t, ctx, tx, c.ID, "Homework 2")

	old := testutil.SeedSubmission(t, ctx, tx, a1.ID, student.ID)
	old.SubmittedAt = time.Now().Add(-time.Hour)
	if err := tx.Save(old).Error; err != nil {
		t.Fatalf("backdate submission: %v", err)
	}
	newest := testutil.SeedSubmission(t, ctx, tx, a1.ID, student.ID)
	testutil.SeedSubmission(t, ctx, tx, a2.ID, student.ID)

	subs, err := repo.GetByStudentID(ctx, tx, student.ID, testutil.PtrUUID(a1.ID))
	if err != nil {
		t.Fatalf("get by student: %v", err)
	}
	if len(subs) != 2 {
		t.Fatalf("expected 2 submissions for assignment, got %d", len(subs))
	}
	if subs[0].ID != newest.ID {
		t.Fatalf("expected newest submission first, got %s", subs[0].ID)
	}

	all, err := repo.GetByStudentID(ctx, tx, student.ID, nil)
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 submissions total, got %d", len(all))
	}
}

func TestGradeRepo_UpdateScoreRewritesInPlace(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	gradeRepo := NewGradeRepo(gdb, testutil.Logger(t))

	lecturer := testutil.SeedUser(t, ctx, tx, uniqueEmail("lect"), types.RoleLecturer)
	student := testutil.SeedUser(t, ctx, tx, uniqueEmail("stud"), types.RoleStudent)
	c := testutil.SeedCourse(t, ctx, tx, lecturer.ID, "Gradebook 103")
	a := testutil.SeedAssignment(t, ctx, tx, c.ID, "Homework 1")
	s := testutil.SeedSubmission(t, ctx, tx, a.ID, student.ID)

	g := &types.Grade{
		ID:           uuid.New(),
		SubmissionID: s.ID,
		AssignmentID: a.ID,
		StudentID:    student.ID,
		Score:        70,
		Feedback:     "solid",
		GradedBy:     lecturer.ID,
	}
	if _, err := gradeRepo.Create(ctx, tx, []*types.Grade{g}); err != nil {
		t.Fatalf("create grade: %v", err)
	}

	if err := gradeRepo.UpdateScore(ctx, tx, g.ID, 95, "much better", lecturer.ID); err != nil {
		t.Fatalf("update score: %v", err)
	}

	got, err := gradeRepo.GetBySubmissionIDs(ctx, tx, []uuid.UUID{s.ID})
	if err != nil {
		t.Fatalf("reload grade: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected one grade per submission, got %d", len(got))
	}
	if got[0].ID != g.ID || got[0].Score != 95 || got[0].Feedback != "much better" {
		t.Fatalf("unexpected grade after update: id=%s score=%d feedback=%q",
			got[0].ID, got[0].Score, got[0].Feedback)
	}
}
