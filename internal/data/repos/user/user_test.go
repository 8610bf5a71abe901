package user

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

func TestUserRepo_CreateAndGetByEmails(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	repo := NewUserRepo(gdb, testutil.Logger(t))

	email := uniqueEmail("create")
	u := &types.User{
		ID:       uuid.New(),
		Email:    email,
		Password: "hashed",
		Role:     types.RoleStudent,
	}
	if _, err := repo.Create(ctx, tx, []*types.User{u}); err != nil {
		t.Fatalf("create user: %v", err)
	}

	found, err := repo.GetByEmails(ctx, tx, []string{email})
	if err != nil {
		t.Fatalf("get by emails: %v", err)
	}
	if len(found) != 1 {
		t.Fatalf("expected 1 user, got %d", len(found))
	}
	if found[0].ID != u.ID {
		t.Fatalf("expected id %s, got %s", u.ID, found[0].ID)
	}
}

func TestUserRepo_EmailExists(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	repo := NewUserRepo(gdb, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, tx, uniqueEmail("exists"), types.RoleStudent)

	exists, err := repo.EmailExists(ctx, tx, u.Email)
	if err != nil {
		t.Fatalf("email exists: %v", err)
	}
	if !exists {
		t.Fatalf("expected email %s to exist", u.Email)
	}

	exists, err = repo.EmailExists(ctx, tx, uniqueEmail("missing"))
	if err != nil {
		t.Fatalf("email exists: %v", err)
	}
	if exists {
		t.Fatalf("expected missing email to not exist")
	}
}

func TestUserRepo_GetByRole_OnlyReturnsRole(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	repo := NewUserRepo(gdb, testutil.Logger(t))

	student := testutil.SeedUser(t, ctx, tx, uniqueEmail("student"), types.RoleStudent)
	lecturer := testutil.SeedUser(t, ctx, tx, uniqueEmail("lecturer"), types.RoleLecturer)

	students, err := repo.GetByRole(ctx, tx, types.RoleStudent)
	if err != nil {
		t.Fatalf("get by role: %v", err)
	}
	for _, s := range students {
		if s.Role != types.RoleStudent {
			t.Fatalf("expected only students, got role %q", s.Role)
		}
		if s.ID == lecturer.ID {
			t.Fatalf("lecturer leaked into student list")
		}
	}
	var seen bool
	for _, s := range students {
		if s.ID == student.ID {
			seen = true
		}
	}
	if !seen {
		t.Fatalf("seeded student missing from role list")
	}
}

func TestUserRepo_TwoFactorLifecycle(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	repo := NewUserRepo(gdb, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, tx, uniqueEmail("2fa"), types.RoleStudent)

	if err := repo.UpdateTwoFactorSecret(ctx, tx, u.ID, "JBSWY3DPEHPK3PXP"); err != nil {
		t.Fatalf("update secret: %v", err)
	}
	if err := repo.SetTwoFactorEnabled(ctx, tx, u.ID, true); err != nil {
		t.Fatalf("enable: %v", err)
	}

	got, err := repo.GetByIDs(ctx, tx, []uuid.UUID{u.ID})
	if err != nil || len(got) != 1 {
		t.Fatalf("reload user: %v (n=%d)", err, len(got))
	}
	if !got[0].TwoFactorEnabled || got[0].TwoFactorSecret == "" {
		t.Fatalf("expected two-factor enabled with secret, got enabled=%v secret=%q",
			got[0].TwoFactorEnabled, got[0].TwoFactorSecret)
	}

	if err := repo.ClearTwoFactor(ctx, tx, u.ID); err != nil {
		t.Fatalf("clear: %v", err)
	}
	got, err = repo.GetByIDs(ctx, tx, []uuid.UUID{u.ID})
	if err != nil || len(got) != 1 {
		t.Fatalf("reload user: %v (n=%d)", err, len(got))
	}
	if got[0].TwoFactorEnabled || got[0].TwoFactorSecret != "" {
		t.Fatalf("expected two-factor cleared, got enabled=%v secret=%q",
			got[0].TwoFactorEnabled, got[0].TwoFactorSecret)
	}
}

func TestUserRepo_UpdatePassword(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	repo := NewUserRepo(gdb, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, tx, uniqueEmail("pw"), types.RoleStudent)

	if err := repo.UpdatePassword(ctx, tx, u.ID, "newhash"); err != nil {
		t.Fatalf("update password: %v", err)
	}
	got, err := repo.GetByIDs(ctx, tx, []uuid.UUID{u.ID})
	if err != nil || len(got) != 1 {
		t.Fatalf("reload user: %v (n=%d)", err, len(got))
	}
	if got[0].Password != "newhash" {
		t.Fatalf("expected updated password hash, got %q", got[0].Password)
	}
}
