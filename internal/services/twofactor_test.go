package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/pquerna/otp/totp"

	"github.com/campuscore/campuscore-backend/internal/clients/redis"
	types "github.com/campuscore/campuscore-backend/internal/domain"
	"github.com/campuscore/campuscore-backend/internal/data/repos"
	"github.com/campuscore/campuscore-backend/internal/data/repos/testutil"
	"github.com/campuscore/campuscore-backend/internal/platform/apierr"
)

type twoFactorHarness struct {
	authHarness
	twoFactor TwoFactorService
}

func newTwoFactorHarness(t *testing.T) twoFactorHarness {
	t.Helper()
	gdb := testutil.DB(t)
	log := testutil.Logger(t)

	userRepo := repos.NewUserRepo(gdb, log)
	issuer, err := NewTokenIssuer("2fa-test-secret", time.Hour)
	if err != nil {
		t.Fatalf("new token issuer: %v", err)
	}
	pending := redis.NewMemoryPendingLoginStore(5 * time.Minute)

	base := authHarness{
		auth:    NewAuthService(gdb, log, userRepo, issuer, pending),
		users:   userRepo,
		pending: pending,
		issuer:  issuer,
	}
	return twoFactorHarness{
		authHarness: base,
		twoFactor:   NewTwoFactorService(gdb, log, userRepo, issuer, pending, "CampusCore Test"),
	}
}

func currentCode(t *testing.T, secret string) string {
	t.Helper()
	code, err := totp.GenerateCode(secret, time.Now())
	if err != nil {
		t.Fatalf("generate totp code: %v", err)
	}
	return code
}

func TestTwoFactorService_SetupConfirmAndLogin(t *testing.T) {
	ctx := context.Background()
	h := newTwoFactorHarness(t)

	email := uniqueEmail("totp")
	user, err := h.auth.Register(ctx, email, "hunter2secret", types.RoleStudent)
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	setup, err := h.twoFactor.Setup(ctx, user.ID)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if setup.Secret == "" {
		t.Fatalf("expected a secret")
	}
	if !strings.HasPrefix(setup.QRCodeDataURL, "data:image/png;base64,") {
		t.Fatalf("unexpected qr data url prefix: %.40s", setup.QRCodeDataURL)
	}
	if !strings.Contains(setup.OTPAuthURL, "otpauth://totp/") {
		t.Fatalf("unexpected provisioning uri: %s", setup.OTPAuthURL)
	}

	// Setup alone must not enable the factor.
	result, err := h.auth.Login(ctx, email, "hunter2secret")
	if err != nil {
		t.Fatalf("login before confirm: %v", err)
	}
	if result.TwoFactorRequired {
		t.Fatalf("unconfirmed secret already challenges login")
	}

	if err := h.twoFactor.ConfirmSetup(ctx, user.ID, currentCode(t, setup.Secret)); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	result, err = h.auth.Login(ctx, email, "hunter2secret")
	if err != nil {
		t.Fatalf("login after confirm: %v", err)
	}
	if !result.TwoFactorRequired {
		t.Fatalf("expected a two-factor challenge after confirm")
	}

	final, err := h.twoFactor.CompleteLogin(ctx, result.PendingHandle, currentCode(t, setup.Secret))
	if err != nil {
		t.Fatalf("complete login: %v", err)
	}
	if final.Token == "" {
		t.Fatalf("expected a token after the code step")
	}

	// The handle is single-use.
	_, err = h.twoFactor.CompleteLogin(ctx, result.PendingHandle, currentCode(t, setup.Secret))
	if err == nil {
		t.Fatalf("expected consumed handle to be rejected")
	}
	if ae := apierr.From(err); ae.Code != "no_pending_session" {
		t.Fatalf("expected no_pending_session, got %q", ae.Code)
	}
}

func TestTwoFactorService_ConfirmRejectsWrongCode(t *testing.T) {
	ctx := context.Background()
	h := newTwoFactorHarness(t)

	user, err := h.auth.Register(ctx, uniqueEmail("wrongcode"), "hunter2secret", types.RoleStudent)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := h.twoFactor.Setup(ctx, user.ID); err != nil {
		t.Fatalf("setup: %v", err)
	}

	err = h.twoFactor.ConfirmSetup(ctx, user.ID, "000000")
	if err == nil {
		t.Fatalf("expected wrong code to be rejected")
	}
	if ae := apierr.From(err); ae.Code != "invalid_code" {
		t.Fatalf("expected invalid_code, got %q", ae.Code)
	}
}

func TestTwoFactorService_ConfirmRequiresSetup(t *testing.T) {
	ctx := context.Background()
	h := newTwoFactorHarness(t)

	user, err := h.auth.Register(ctx, uniqueEmail("nosetup"), "hunter2secret", types.RoleStudent)
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	// No Setup call, so there is no secret to verify against.
	err = h.twoFactor.ConfirmSetup(ctx, user.ID, "123456")
	if err == nil {
		t.Fatalf("expected confirm without a secret to fail")
	}
	if ae := apierr.From(err); ae.Code != "two_factor_not_configured" {
		t.Fatalf("expected two_factor_not_configured, got %q", ae.Code)
	}
}

func TestTwoFactorService_SetupRejectedWhenAlreadyEnabled(t *testing.T) {
	ctx := context.Background()
	h := newTwoFactorHarness(t)

	user, err := h.auth.Register(ctx, uniqueEmail("enabled"), "hunter2secret", types.RoleStudent)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	setup, err := h.twoFactor.Setup(ctx, user.ID)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := h.twoFactor.ConfirmSetup(ctx, user.ID, currentCode(t, setup.Secret)); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	_, err = h.twoFactor.Setup(ctx, user.ID)
	if err == nil {
		t.Fatalf("expected setup on enabled account to fail")
	}
	if ae := apierr.From(err); ae.Code != "already_enabled" {
		t.Fatalf("expected already_enabled, got %q", ae.Code)
	}
}

func TestTwoFactorService_DisableDropsChallenge(t *testing.T) {
	ctx := context.Background()
	h := newTwoFactorHarness(t)

	email := uniqueEmail("disable")
	user, err := h.auth.Register(ctx, email, "hunter2secret", types.RoleStudent)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	setup, err := h.twoFactor.Setup(ctx, user.ID)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := h.twoFactor.ConfirmSetup(ctx, user.ID, currentCode(t, setup.Secret)); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	if err := h.twoFactor.Disable(ctx, user.ID); err != nil {
		t.Fatalf("disable: %v", err)
	}

	result, err := h.auth.Login(ctx, email, "hunter2secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.TwoFactorRequired {
		t.Fatalf("challenge still issued after disable")
	}
	if result.Token == "" {
		t.Fatalf("expected direct token after disable")
	}
}

func TestTwoFactorService_CompleteLoginWithoutHandle(t *testing.T) {
	ctx := context.Background()
	h := newTwoFactorHarness(t)

	_, err := h.twoFactor.CompleteLogin(ctx, "", "123456")
	if err == nil {
		t.Fatalf("expected missing handle to be rejected")
	}
	if ae := apierr.From(err); ae.Code != "no_pending_session" {
		t.Fatalf("expected no_pending_session, got %q", ae.Code)
	}
}
