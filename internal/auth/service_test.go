package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quickwishapp/quickwish-backend/internal/users"
	pkgAuth "github.com/quickwishapp/quickwish-backend/pkg/auth"
	"github.com/quickwishapp/quickwish-backend/pkg/auth/session"
	"github.com/quickwishapp/quickwish-backend/pkg/config"
	"github.com/quickwishapp/quickwish-backend/pkg/db/models"
	"github.com/quickwishapp/quickwish-backend/pkg/enums"
	pkgerrors "github.com/quickwishapp/quickwish-backend/pkg/errors"
	"github.com/quickwishapp/quickwish-backend/pkg/security"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "secret",
		Issuer:            "quickwish",
		ExpirationMinutes: 30,
	}
}

func TestServiceRegisterCreatesAgentAccount(t *testing.T) {
	cfg := testJWTConfig()
	svc, repo, sessions, err := buildTestService(nil, cfg)
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	role := enums.UserRoleAgent
	resp, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "  Ravi Kumar ",
		Email:    "Ravi.Kumar@Example.com",
		Password: "scooter-route-9",
		Phone:    strPtr("+919812345678"),
		Role:     &role,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if repo.created == nil {
		t.Fatalf("expected user to be created")
	}
	if repo.created.Name != "Ravi Kumar" {
		t.Fatalf("expected trimmed name, got %q", repo.created.Name)
	}
	if repo.created.Email != "ravi.kumar@example.com" {
		t.Fatalf("expected lowercased email, got %q", repo.created.Email)
	}
	ok, err := security.VerifyPassword("scooter-route-9", repo.created.PasswordHash)
	if err != nil || !ok {
		t.Fatalf("expected stored hash to verify, ok=%v err=%v", ok, err)
	}

	claims, err := pkgAuth.ParseAccessToken(cfg, resp.AccessToken)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.Role != enums.UserRoleAgent {
		t.Fatalf("expected agent role claim, got %s", claims.Role)
	}
	if resp.RefreshToken == "" {
		t.Fatalf("expected refresh token to be set")
	}
	if sessions.generatedID != claims.ID {
		t.Fatalf("expected session keyed by jti %q, got %q", claims.ID, sessions.generatedID)
	}
	if resp.User == nil || resp.User.Role != enums.UserRoleAgent {
		t.Fatalf("expected agent user in response, got %+v", resp.User)
	}
	if resp.User.LastLoginAt == nil {
		t.Fatalf("expected last login to be recorded on register")
	}
}

func TestServiceRegisterDuplicateEmail(t *testing.T) {
	existing := &models.User{
		ID:           uuid.New(),
		Name:         "Priya Sharma",
		Email:        "priya@example.com",
		PasswordHash: mustHashPassword(t, "first-password"),
		Role:         enums.UserRoleUser,
	}
	svc, _, _, err := buildTestService(existing, testJWTConfig())
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	_, err = svc.Register(context.Background(), RegisterRequest{
		Name:     "Priya Again",
		Email:    "PRIYA@example.com",
		Password: "second-password",
	})
	if err == nil {
		t.Fatalf("expected duplicate email to be rejected")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestServiceRegisterValidation(t *testing.T) {
	admin := enums.UserRoleAdmin
	cases := []struct {
		name string
		req  RegisterRequest
	}{
		{
			name: "missing name",
			req:  RegisterRequest{Email: "a@example.com", Password: "long-enough-pass"},
		},
		{
			name: "invalid email",
			req:  RegisterRequest{Name: "A", Email: "not-an-email", Password: "long-enough-pass"},
		},
		{
			name: "short password",
			req:  RegisterRequest{Name: "A", Email: "a@example.com", Password: "short"},
		},
		{
			name: "admin role",
			req:  RegisterRequest{Name: "A", Email: "a@example.com", Password: "long-enough-pass", Role: &admin},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, _, _, err := buildTestService(nil, testJWTConfig())
			if err != nil {
				t.Fatalf("build service: %v", err)
			}
			_, err = svc.Register(context.Background(), tc.req)
			typed := pkgerrors.As(err)
			if typed == nil || typed.Code() != pkgerrors.CodeValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestServiceLoginIssuesTokens(t *testing.T) {
	password := "wish-granted-42"
	user := &models.User{
		ID:           uuid.New(),
		Name:         "Priya Sharma",
		Email:        "priya@example.com",
		PasswordHash: mustHashPassword(t, password),
		Role:         enums.UserRoleUser,
	}
	cfg := testJWTConfig()
	svc, _, _, err := buildTestService(user, cfg)
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "  PRIYA@example.com ",
		Password: password,
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := pkgAuth.ParseAccessToken(cfg, resp.AccessToken)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.UserID != user.ID {
		t.Fatalf("expected user id claim %s, got %s", user.ID, claims.UserID)
	}
	if claims.Role != enums.UserRoleUser {
		t.Fatalf("expected user role claim, got %s", claims.Role)
	}
	if resp.RefreshToken != "refresh-token" {
		t.Fatalf("expected stub refresh token, got %q", resp.RefreshToken)
	}
	if resp.User == nil || resp.User.LastLoginAt == nil {
		t.Fatalf("expected last login to be recorded")
	}
}

func TestServiceLoginWrongPassword(t *testing.T) {
	user := &models.User{
		ID:           uuid.New(),
		Name:         "Priya Sharma",
		Email:        "priya@example.com",
		PasswordHash: mustHashPassword(t, "right-password"),
		Role:         enums.UserRoleUser,
	}
	svc, _, _, err := buildTestService(user, testJWTConfig())
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	_, err = svc.Login(context.Background(), LoginRequest{
		Email:    user.Email,
		Password: "wrong-password",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
}

func TestServiceLoginUnknownEmail(t *testing.T) {
	svc, _, _, err := buildTestService(nil, testJWTConfig())
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	_, err = svc.Login(context.Background(), LoginRequest{
		Email:    "ghost@example.com",
		Password: "whatever-password",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
}

func TestServiceRefreshRotatesSession(t *testing.T) {
	user := &models.User{
		ID:           uuid.New(),
		Name:         "Priya Sharma",
		Email:        "priya@example.com",
		PasswordHash: mustHashPassword(t, "unused-password"),
		Role:         enums.UserRoleUser,
	}
	cfg := testJWTConfig()
	svc, _, sessions, err := buildTestService(user, cfg)
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	sessions.rotatedID = "rotated-access-id"
	sessions.rotatedToken = "rotated-refresh-token"

	oldAccessID := session.NewAccessID()
	oldToken, err := pkgAuth.MintAccessToken(cfg, time.Now().UTC().Add(-time.Hour), pkgAuth.AccessTokenPayload{
		UserID: user.ID,
		Role:   user.Role,
		JTI:    oldAccessID,
	})
	if err != nil {
		t.Fatalf("mint old token: %v", err)
	}

	resp, err := svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  oldToken,
		RefreshToken: "provided-refresh",
	})
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}

	if sessions.rotatedFrom != oldAccessID {
		t.Fatalf("expected rotation keyed by old jti %q, got %q", oldAccessID, sessions.rotatedFrom)
	}
	if sessions.provided != "provided-refresh" {
		t.Fatalf("expected provided refresh token to be checked, got %q", sessions.provided)
	}
	if resp.RefreshToken != "rotated-refresh-token" {
		t.Fatalf("expected rotated refresh token, got %q", resp.RefreshToken)
	}

	claims, err := pkgAuth.ParseAccessToken(cfg, resp.AccessToken)
	if err != nil {
		t.Fatalf("parse new access token: %v", err)
	}
	if claims.ID != "rotated-access-id" {
		t.Fatalf("expected new jti, got %q", claims.ID)
	}
	if claims.UserID != user.ID {
		t.Fatalf("expected same user id, got %s", claims.UserID)
	}
}

func TestServiceRefreshRejectsInvalidToken(t *testing.T) {
	user := &models.User{
		ID:           uuid.New(),
		Name:         "Priya Sharma",
		Email:        "priya@example.com",
		PasswordHash: mustHashPassword(t, "unused-password"),
		Role:         enums.UserRoleUser,
	}
	cfg := testJWTConfig()
	svc, _, sessions, err := buildTestService(user, cfg)
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	sessions.rotateErr = session.ErrInvalidRefreshToken

	accessToken, err := pkgAuth.MintAccessToken(cfg, time.Now().UTC(), pkgAuth.AccessTokenPayload{
		UserID: user.ID,
		Role:   user.Role,
		JTI:    session.NewAccessID(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	_, err = svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  accessToken,
		RefreshToken: "stale-refresh",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized error, got %v", err)
	}

	_, err = svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  "garbage",
		RefreshToken: "stale-refresh",
	})
	typed = pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized error for garbage token, got %v", err)
	}
}

func TestServiceLogoutRevokesSession(t *testing.T) {
	svc, _, sessions, err := buildTestService(nil, testJWTConfig())
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	if err := svc.Logout(context.Background(), "access-id-123"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if sessions.revokedID != "access-id-123" {
		t.Fatalf("expected session revoked, got %q", sessions.revokedID)
	}
}

func TestServiceMe(t *testing.T) {
	user := &models.User{
		ID:           uuid.New(),
		Name:         "Priya Sharma",
		Email:        "priya@example.com",
		PasswordHash: mustHashPassword(t, "unused-password"),
		Role:         enums.UserRoleUser,
	}
	svc, _, _, err := buildTestService(user, testJWTConfig())
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	dto, err := svc.Me(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("me: %v", err)
	}
	if dto.Email != user.Email {
		t.Fatalf("expected email %q, got %q", user.Email, dto.Email)
	}

	_, err = svc.Me(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func buildTestService(user *models.User, jwtCfg config.JWTConfig) (Service, *stubUserStore, *stubSessionManager, error) {
	repo := &stubUserStore{user: user}
	sessionMgr := &stubSessionManager{refreshToken: "refresh-token"}
	svc, err := NewService(ServiceParams{
		UserRepo:       repo,
		SessionManager: sessionMgr,
		JWTConfig:      jwtCfg,
		PasswordConfig: config.PasswordConfig{},
	})
	return svc, repo, sessionMgr, err
}

func mustHashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := security.HashPassword(password, config.PasswordConfig{})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return hash
}

func strPtr(value string) *string {
	return &value
}

type stubUserStore struct {
	user    *models.User
	created *models.User
}

func (s *stubUserStore) Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error) {
	user := dto.ToModel()
	user.ID = uuid.New()
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	s.created = user
	if s.user == nil {
		s.user = user
	}
	return user, nil
}

func (s *stubUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.user == nil || s.user.Email != email {
		return nil, gorm.ErrRecordNotFound
	}
	return s.user, nil
}

func (s *stubUserStore) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if s.user != nil && s.user.ID == id {
		return s.user, nil
	}
	if s.created != nil && s.created.ID == id {
		return s.created, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserStore) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	if s.user != nil && s.user.ID == id {
		s.user.LastLoginAt = &at
	}
	return nil
}

type stubSessionManager struct {
	refreshToken string
	rotatedID    string
	rotatedToken string
	rotateErr    error

	generatedID string
	rotatedFrom string
	provided    string
	revokedID   string
}

func (s *stubSessionManager) Generate(ctx context.Context, accessID string) (string, error) {
	s.generatedID = accessID
	return s.refreshToken, nil
}

func (s *stubSessionManager) Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error) {
	if s.rotateErr != nil {
		return "", "", s.rotateErr
	}
	s.rotatedFrom = oldAccessID
	s.provided = provided
	return s.rotatedID, s.rotatedToken, nil
}

func (s *stubSessionManager) Revoke(ctx context.Context, accessID string) error {
	s.revokedID = accessID
	return nil
}
