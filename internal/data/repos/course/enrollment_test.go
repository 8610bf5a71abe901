package course

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"

	types "github.com/campuscore/campuscore-backend/internal/domain"
	"github.com/campuscore/campuscore-backend/internal/data/repos/testutil"
)

func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%s@campus.test", prefix, uuid.NewString()[:8])
}

func TestEnrollmentRepo_EnrollIsIdempotent(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	repo := NewEnrollmentRepo(gdb, testutil.Logger(t))

	lecturer := testutil.SeedUser(t, ctx, tx, uniqueEmail("lect"), types.RoleLecturer)
	student := testutil.SeedUser(t, ctx, tx, uniqueEmail("stud"), types.RoleStudent)
	c := testutil.SeedCourse(t, ctx, tx, lecturer.ID, "Databases")

	n, err := repo.Enroll(ctx, tx, c.ID, []uuid.UUID{student.ID})
	if err != nil {
		t.Fatalf("enroll: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 new enrollment, got %d", n)
	}

	n, err = repo.Enroll(ctx, tx, c.ID, []uuid.UUID{student.ID})
	if err != nil {
		t.Fatalf("re-enroll: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected duplicate enroll to be a no-op, got %d new rows", n)
	}

	ids, err := repo.GetStudentIDsByCourseID(ctx, tx, c.ID)
	if err != nil {
		t.Fatalf("list students: %v", err)
	}
	if len(ids) != 1 || ids[0] != student.ID {
		t.Fatalf("expected exactly the seeded student, got %v", ids)
	}
}

func TestEnrollmentRepo_UnenrollRemovesMembership(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	repo := NewEnrollmentRepo(gdb, testutil.Logger(t))

	lecturer := testutil.SeedUser(t, ctx, tx, uniqueEmail("lect"), types.RoleLecturer)
	student := testutil.SeedUser(t, ctx, tx, uniqueEmail("stud"), types.RoleStudent)
	c := testutil.SeedCourse(t, ctx, tx, lecturer.ID, "Networks")

	if _, err := repo.Enroll(ctx, tx, c.ID, []uuid.UUID{student.ID}); err != nil {
		t.Fatalf("enroll: %v", err)
	}
	if err := repo.Unenroll(ctx, tx, c.ID, []uuid.UUID{student.ID}); err != nil {
		t.Fatalf("unenroll: %v", err)
	}

	courseIDs, err := repo.GetCourseIDsByStudentID(ctx, tx, student.ID)
	if err != nil {
		t.Fatalf("list courses: %v", err)
	}
	for _, id := range courseIDs {
		if id == c.ID {
			t.Fatalf("course still listed after unenroll")
		}
	}
}
