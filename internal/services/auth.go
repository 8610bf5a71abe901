package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/campuscore/campuscore-backend/internal/clients/redis"
	types "github.com/campuscore/campuscore-backend/internal/domain"
	"github.com/campuscore/campuscore-backend/internal/platform/apierr"
	"github.com/campuscore/campuscore-backend/internal/platform/ctxutil"
	"github.com/campuscore/campuscore-backend/internal/platform/logger"
	"github.com/campuscore/campuscore-backend/internal/data/repos"
)

// LoginResult is the outcome of the password step. When the account has
// two-factor enabled no token is issued; instead PendingHandle references the
// parked identity and the caller must complete the code step.
type LoginResult struct {
	Token             string
	Role              string
	TwoFactorRequired bool
	PendingHandle     string
	TempUserID        uuid.UUID
}

type AuthService interface {
	Register(ctx context.Context, email, password, role string) (*types.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error
	ContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	TokenTTL() time.Duration
}

type authService struct {
	db           *gorm.DB
	log          *logger.Logger
	userRepo     repos.UserRepo
	tokenIssuer  TokenIssuer
	pendingStore redis.PendingLoginStore
}

func NewAuthService(
	db *gorm.DB,
	baseLog *logger.Logger,
	userRepo repos.UserRepo,
	tokenIssuer TokenIssuer,
	pendingStore redis.PendingLoginStore,
) AuthService {
	serviceLog := baseLog.With("service", "AuthService")
	return &authService{
		db:           db,
		log:          serviceLog,
		userRepo:     userRepo,
		tokenIssuer:  tokenIssuer,
		pendingStore: pendingStore,
	}
}

func (as *authService) Register(ctx context.Context, email, password, role string) (*types.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	password = strings.TrimSpace(password)

	if email == "" {
		return nil, apierr.Validation("invalid_request", fmt.Errorf("an email is required to register"))
	}
	if password == "" {
		return nil, apierr.Validation("invalid_request", fmt.Errorf("a password is required to register"))
	}
	if !types.ValidRole(role) {
		return nil, apierr.Validation("invalid_role", fmt.Errorf("role must be either %q or %q", types.RoleStudent, types.RoleLecturer))
	}

	exists, err := as.userRepo.EmailExists(ctx, nil, email)
	if err != nil {
		return nil, fmt.Errorf("check user email: %w", err)
	}
	if exists {
		return nil, apierr.Validation("duplicate_email", fmt.Errorf("user already exists"))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &types.User{
		ID:       uuid.New(),
		Email:    email,
		Password: string(hash),
		Role:     role,
	}
	if _, err := as.userRepo.Create(ctx, nil, []*types.User{user}); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	as.log.Info("Registered user", "user_id", user.ID.String(), "role", role)
	return user, nil
}

func (as *authService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	password = strings.TrimSpace(password)

	if email == "" || password == "" {
		return nil, apierr.Validation("invalid_request", fmt.Errorf("email and password are required"))
	}

	users, err := as.userRepo.GetByEmails(ctx, nil, []string{email})
	if err != nil {
		return nil, fmt.Errorf("load user by email: %w", err)
	}
	if len(users) == 0 {
		return nil, apierr.Validation("invalid_credential", fmt.Errorf("user not found"))
	}
	user := users[0]

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apierr.Validation("invalid_credential", fmt.Errorf("invalid credentials"))
	}

	if user.TwoFactorEnabled {
		handle, err := as.pendingStore.Create(ctx, user.ID)
		if err != nil {
			return nil, fmt.Errorf("park pending login: %w", err)
		}
		return &LoginResult{
			TwoFactorRequired: true,
			PendingHandle:     handle,
			TempUserID:        user.ID,
		}, nil
	}

	token, err := as.tokenIssuer.Issue(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &LoginResult{Token: token, Role: user.Role}, nil
}

func (as *authService) ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	currentPassword = strings.TrimSpace(currentPassword)
	newPassword = strings.TrimSpace(newPassword)

	if newPassword == "" {
		return apierr.Validation("invalid_request", fmt.Errorf("a new password is required"))
	}

	users, err := as.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
	if err != nil {
		return fmt.Errorf("load user: %w", err)
	}
	if len(users) == 0 {
		return apierr.NotFound("not_found", fmt.Errorf("user not found"))
	}
	user := users[0]

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(currentPassword)); err != nil {
		return apierr.Validation("invalid_credential", fmt.Errorf("incorrect current password"))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := as.userRepo.UpdatePassword(ctx, nil, userID, string(hash)); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	as.log.Info("Password changed", "user_id", userID.String())
	return nil
}

// ContextFromToken validates the bearer token and attaches the decoded
// identity to the context for downstream handlers.
func (as *authService) ContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	userID, role, err := as.tokenIssuer.Verify(tokenString)
	if err != nil {
		return nil, apierr.Unauthorized("invalid_token", err)
	}
	return ctxutil.WithRequestData(ctx, &ctxutil.RequestData{UserID: userID, Role: role}), nil
}

func (as *authService) TokenTTL() time.Duration {
	return as.tokenIssuer.TTL()
}
