package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
	qrcode "github.com/skip2/go-qrcode"
	"gorm.io/gorm"

	"github.com/campuscore/campuscore-backend/internal/clients/redis"
	types "github.com/campuscore/campuscore-backend/internal/domain"
	"github.com/campuscore/campuscore-backend/internal/data/repos"
	"github.com/campuscore/campuscore-backend/internal/platform/apierr"
	"github.com/campuscore/campuscore-backend/internal/platform/logger"
)

// TwoFactorSetup is returned by Setup. The QR data URL renders the otpauth
// provisioning URI for authenticator apps; the raw secret is included for
// manual entry.
type TwoFactorSetup struct {
	Secret        string
	OTPAuthURL    string
	QRCodeDataURL string
}

// TwoFactorService drives the per-user state machine: no secret (disabled),
// secret stored but unconfirmed (setup pending), secret confirmed (enabled).
// Generation and confirmation are separate steps so an account is never locked
// behind codes the user has not proven they can produce.
type TwoFactorService interface {
	Setup(ctx context.Context, userID uuid.UUID) (*TwoFactorSetup, error)
	ConfirmSetup(ctx context.Context, userID uuid.UUID, code string) error
	Disable(ctx context.Context, userID uuid.UUID) error
	// CompleteLogin finishes the two-step login: it resolves the pending
	// handle, checks the code, consumes the handle and issues the token.
	CompleteLogin(ctx context.Context, handle, code string) (*LoginResult, error)
}

type twoFactorService struct {
	db           *gorm.DB
	log          *logger.Logger
	userRepo     repos.UserRepo
	tokenIssuer  TokenIssuer
	pendingStore redis.PendingLoginStore
	issuerName   string
}

func NewTwoFactorService(
	db *gorm.DB,
	baseLog *logger.Logger,
	userRepo repos.UserRepo,
	tokenIssuer TokenIssuer,
	pendingStore redis.PendingLoginStore,
	issuerName string,
) TwoFactorService {
	serviceLog := baseLog.With("service", "TwoFactorService")
	if issuerName == "" {
		issuerName = "CampusCore"
	}
	return &twoFactorService{
		db:           db,
		log:          serviceLog,
		userRepo:     userRepo,
		tokenIssuer:  tokenIssuer,
		pendingStore: pendingStore,
		issuerName:   issuerName,
	}
}

func (ts *twoFactorService) loadUser(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	users, err := ts.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if len(users) == 0 {
		return nil, apierr.NotFound("not_found", fmt.Errorf("user not found"))
	}
	return users[0], nil
}

func (ts *twoFactorService) Setup(ctx context.Context, userID uuid.UUID) (*TwoFactorSetup, error) {
	user, err := ts.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.TwoFactorEnabled {
		return nil, apierr.Validation("already_enabled", fmt.Errorf("two-factor authentication is already enabled"))
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      ts.issuerName,
		AccountName: user.Email,
	})
	if err != nil {
		return nil, fmt.Errorf("generate totp secret: %w", err)
	}

	// Re-running setup before confirmation replaces the unconfirmed secret.
	if err := ts.userRepo.UpdateTwoFactorSecret(ctx, nil, userID, key.Secret()); err != nil {
		return nil, fmt.Errorf("store totp secret: %w", err)
	}

	png, err := qrcode.Encode(key.URL(), qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("render provisioning qr: %w", err)
	}

	ts.log.Info("Two-factor setup started", "user_id", userID.String())
	return &TwoFactorSetup{
		Secret:        key.Secret(),
		OTPAuthURL:    key.URL(),
		QRCodeDataURL: "data:image/png;base64," + base64.StdEncoding.EncodeToString(png),
	}, nil
}

func (ts *twoFactorService) ConfirmSetup(ctx context.Context, userID uuid.UUID, code string) error {
	user, err := ts.loadUser(ctx, userID)
	if err != nil {
		return err
	}
	if user.TwoFactorSecret == "" {
		return apierr.Validation("two_factor_not_configured", fmt.Errorf("no two-factor secret on record"))
	}

	if !validateCode(code, user.TwoFactorSecret) {
		return apierr.Validation("invalid_code", fmt.Errorf("invalid verification code"))
	}

	if err := ts.userRepo.SetTwoFactorEnabled(ctx, nil, userID, true); err != nil {
		return fmt.Errorf("enable two-factor: %w", err)
	}

	ts.log.Info("Two-factor enabled", "user_id", userID.String())
	return nil
}

func (ts *twoFactorService) Disable(ctx context.Context, userID uuid.UUID) error {
	if _, err := ts.loadUser(ctx, userID); err != nil {
		return err
	}
	if err := ts.userRepo.ClearTwoFactor(ctx, nil, userID); err != nil {
		return fmt.Errorf("disable two-factor: %w", err)
	}
	ts.log.Info("Two-factor disabled", "user_id", userID.String())
	return nil
}

func (ts *twoFactorService) CompleteLogin(ctx context.Context, handle, code string) (*LoginResult, error) {
	if handle == "" {
		return nil, apierr.Unauthorized("no_pending_session", fmt.Errorf("no pending two-factor session"))
	}

	userID, err := ts.pendingStore.Get(ctx, handle)
	if err != nil {
		if err == redis.ErrNoPendingLogin {
			return nil, apierr.Unauthorized("no_pending_session", fmt.Errorf("session expired or invalid"))
		}
		return nil, fmt.Errorf("resolve pending login: %w", err)
	}

	user, err := ts.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.TwoFactorSecret == "" {
		return nil, apierr.Validation("two_factor_not_configured", fmt.Errorf("no two-factor secret on record"))
	}

	// The pending record stays alive on a wrong code; the caller may retry
	// until the record expires.
	if !validateCode(code, user.TwoFactorSecret) {
		return nil, apierr.Validation("invalid_code", fmt.Errorf("invalid two-factor code"))
	}

	if err := ts.pendingStore.Delete(ctx, handle); err != nil {
		ts.log.Warn("Failed to consume pending login", "error", err)
	}

	token, err := ts.tokenIssuer.Issue(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &LoginResult{Token: token, Role: user.Role}, nil
}

func validateCode(code, secret string) bool {
	code = strings.TrimSpace(code)
	if code == "" {
		return false
	}
	ok, err := totp.ValidateCustom(code, secret, time.Now(), totp.ValidateOpts{
		Period:    30,
		Skew:      1,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	return err == nil && ok
}
