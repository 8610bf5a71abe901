package course

import (
	"context"
	"testing"

	"github.com/google/uuid"

	types "github.com/campuscore/campuscore-backend/internal/domain"
	"github.com/campuscore/campuscore-backend/internal/data/repos/testutil"
)

func TestCourseRepo_GetPublicExcludesPrivate(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	repo := NewCourseRepo(gdb, testutil.Logger(t))

	lecturer := testutil.SeedUser(t, ctx, tx, uniqueEmail("lect"), types.RoleLecturer)

	pub := testutil.SeedCourse(t, ctx, tx, lecturer.ID, "Open Course")
	private := &types.Course{
		ID:         uuid.New(),
		Name:       "Closed Course",
		LecturerID: lecturer.ID,
		Difficulty: types.DifficultyBeginner,
		IsPublic:   false,
	}
	if _, err := repo.Create(ctx, tx, []*types.Course{private}); err != nil {
		t.Fatalf("create private course: %v", err)
	}

	courses, err := repo.GetPublic(ctx, tx)
	if err != nil {
		t.Fatalf("get public: %v", err)
	}
	var sawPublic bool
	for _, c := range courses {
		if c.ID == private.ID {
			t.Fatalf("private course leaked into public catalog")
		}
		if c.ID == pub.ID {
			sawPublic = true
		}
	}
	if !sawPublic {
		t.Fatalf("public course missing from catalog")
	}
}

func TestCourseRepo_UpdateInfoOnlyTouchesNameAndDescription(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	repo := NewCourseRepo(gdb, testutil.Logger(t))

	lecturer := testutil.SeedUser(t, ctx, tx, uniqueEmail("lect"), types.RoleLecturer)
	c := testutil.SeedCourse(t, ctx, tx, lecturer.ID, "Old Name")

	if err := repo.UpdateInfo(ctx, tx, c.ID, "New Name", "new description"); err != nil {
		t.Fatalf("update info: %v", err)
	}

	got, err := repo.GetByIDs(ctx, tx, []uuid.UUID{c.ID})
	if err != nil || len(got) != 1 {
		t.Fatalf("reload course: %v (n=%d)", err, len(got))
	}
	if got[0].Name != "New Name" || got[0].Description != "new description" {
		t.Fatalf("unexpected course after update: %q / %q", got[0].Name, got[0].Description)
	}
	if got[0].LecturerID != lecturer.ID {
		t.Fatalf("lecturer changed by info update")
	}
}

func TestAssignmentRepo_GetByCourseIDs(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	repo := NewAssignmentRepo(gdb, testutil.Logger(t))

	lecturer := testutil.SeedUser(t, ctx, tx, uniqueEmail("lect"), types.RoleLecturer)
	c := testutil.SeedCourse(t, ctx, tx, lecturer.ID, "Algorithms")
	other := testutil.SeedCourse(t, ctx, tx, lecturer.ID, "Compilers")

	a1 := testutil.SeedAssignment(t, ctx, tx, c.ID, "Sorting")
	testutil.SeedAssignment(t, ctx, tx, other.ID, "Parsing")

	assignments, err := repo.GetByCourseIDs(ctx, tx, []uuid.UUID{c.ID})
	if err != nil {
		t.Fatalf("get by course: %v", err)
	}
	if len(assignments) != 1 {
		t.Fatalf("expected 1 assignment, got %d", len(assignments))
	}
	if assignments[0].ID != a1.ID {
		t.Fatalf("expected assignment %s, got %s", a1.ID, assignments[0].ID)
	}
}
