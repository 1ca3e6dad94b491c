package auth

import (
	"context"
	"testing"

	pkgAuth "github.com/bfb-software/foodconnect-backend/pkg/auth"
	"github.com/bfb-software/foodconnect-backend/pkg/auth/session"
	"github.com/bfb-software/foodconnect-backend/pkg/config"
	"github.com/bfb-software/foodconnect-backend/pkg/db/models"
	"github.com/bfb-software/foodconnect-backend/pkg/enums"
	pkgerrors "github.com/bfb-software/foodconnect-backend/pkg/errors"
	"github.com/bfb-software/foodconnect-backend/pkg/security"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "secret",
		Issuer:            "foodconnect",
		ExpirationMinutes: 30,
	}
}

func TestServiceLoginGrantsRequestedRole(t *testing.T) {
	password := "supplier-secret"
	account := &models.User{
		ID:           uuid.New(),
		Email:        "supplier@example.com",
		FullName:     "Supplier One",
		PasswordHash: mustHashPassword(t, password),
	}
	cfg := testJWTConfig()

	svc, roles, _ := buildTestService(t, account, cfg)

	resp, err := svc.Login(context.Background(), enums.RoleSupplier, LoginRequest{
		Email:    account.Email,
		Password: password,
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if got := roles.granted[account.ID]; len(got) != 1 || got[0] != enums.RoleSupplier {
		t.Fatalf("expected supplier role granted, got %v", got)
	}

	claims, err := pkgAuth.ParseAccessToken(cfg, resp.AccessToken)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if !claims.HasRole(enums.RoleSupplier) {
		t.Fatalf("expected supplier claim, got %v", claims.Roles)
	}
	if resp.RefreshToken == "" {
		t.Fatal("expected refresh token to be set")
	}
	if resp.User == nil || resp.User.ID != account.ID {
		t.Fatalf("expected user payload for %s", account.ID)
	}
}

func TestServiceLoginCarriesFullRoleSet(t *testing.T) {
	password := "both-roles"
	account := &models.User{
		ID:           uuid.New(),
		Email:        "both@example.com",
		PasswordHash: mustHashPassword(t, password),
	}
	cfg := testJWTConfig()

	svc, roles, _ := buildTestService(t, account, cfg)
	roles.granted[account.ID] = []enums.Role{enums.RoleSupplier}

	resp, err := svc.Login(context.Background(), enums.RoleRecipient, LoginRequest{
		Email:    account.Email,
		Password: password,
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := pkgAuth.ParseAccessToken(cfg, resp.AccessToken)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if !claims.HasRole(enums.RoleSupplier) || !claims.HasRole(enums.RoleRecipient) {
		t.Fatalf("expected both roles in claims, got %v", claims.Roles)
	}
}

func TestServiceLoginInvalidPassword(t *testing.T) {
	account := &models.User{
		ID:           uuid.New(),
		Email:        "user@example.com",
		PasswordHash: mustHashPassword(t, "right-password"),
	}

	svc, _, _ := buildTestService(t, account, testJWTConfig())

	_, err := svc.Login(context.Background(), enums.RoleRecipient, LoginRequest{
		Email:    account.Email,
		Password: "wrong-password",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
}

func TestServiceLoginUnknownEmail(t *testing.T) {
	svc, _, _ := buildTestService(t, nil, testJWTConfig())

	_, err := svc.Login(context.Background(), enums.RoleSupplier, LoginRequest{
		Email:    "ghost@example.com",
		Password: "whatever",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
}

func TestServiceRefreshRotatesSession(t *testing.T) {
	password := "refresh-me"
	account := &models.User{
		ID:           uuid.New(),
		Email:        "refresh@example.com",
		PasswordHash: mustHashPassword(t, password),
	}
	cfg := testJWTConfig()

	svc, _, sessions := buildTestService(t, account, cfg)

	resp, err := svc.Login(context.Background(), enums.RoleRecipient, LoginRequest{
		Email:    account.Email,
		Password: password,
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	refreshed, err := svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
	})
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if refreshed.AccessToken == "" || refreshed.RefreshToken == "" {
		t.Fatal("expected rotated token pair")
	}
	if len(sessions.revoked) != 0 {
		t.Fatalf("refresh should rotate, not revoke; revoked=%v", sessions.revoked)
	}

	claims, err := pkgAuth.ParseAccessToken(cfg, refreshed.AccessToken)
	if err != nil {
		t.Fatalf("parse rotated token: %v", err)
	}
	if claims.UserID != account.ID {
		t.Fatalf("rotated token lost user id")
	}

	// old refresh token no longer rotates
	_, err = svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for reused refresh token, got %v", err)
	}
}

func TestServiceLogoutRevokesSession(t *testing.T) {
	password := "logout-me"
	account := &models.User{
		ID:           uuid.New(),
		Email:        "logout@example.com",
		PasswordHash: mustHashPassword(t, password),
	}

	svc, _, sessions := buildTestService(t, account, testJWTConfig())

	resp, err := svc.Login(context.Background(), enums.RoleSupplier, LoginRequest{
		Email:    account.Email,
		Password: password,
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := svc.Logout(context.Background(), resp.AccessToken); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if len(sessions.revoked) != 1 {
		t.Fatalf("expected one revoked session, got %v", sessions.revoked)
	}
}

func buildTestService(t *testing.T, account *models.User, jwtCfg config.JWTConfig) (Service, *stubRoleRepo, *stubSessionManager) {
	t.Helper()
	roles := newStubRoleRepo()
	sessions := newStubSessionManager()
	svc, err := NewService(ServiceParams{
		UserRepo:       stubUserRepo{user: account},
		RoleRepo:       roles,
		SessionManager: sessions,
		JWTConfig:      jwtCfg,
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc, roles, sessions
}

func mustHashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := security.HashPassword(password, config.PasswordConfig{})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return hash
}

type stubUserRepo struct {
	user *models.User
}

func (s stubUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.user == nil || s.user.Email != email {
		return nil, gorm.ErrRecordNotFound
	}
	return s.user, nil
}

type stubRoleRepo struct {
	granted map[uuid.UUID][]enums.Role
}

func newStubRoleRepo() *stubRoleRepo {
	return &stubRoleRepo{granted: map[uuid.UUID][]enums.Role{}}
}

func (s *stubRoleRepo) Grant(ctx context.Context, userID uuid.UUID, role enums.Role) error {
	for _, existing := range s.granted[userID] {
		if existing == role {
			return nil
		}
	}
	s.granted[userID] = append(s.granted[userID], role)
	return nil
}

func (s *stubRoleRepo) ListForUser(ctx context.Context, userID uuid.UUID) ([]enums.Role, error) {
	return s.granted[userID], nil
}

type stubSessionManager struct {
	tokens  map[string]string
	revoked []string
	counter int
}

func newStubSessionManager() *stubSessionManager {
	return &stubSessionManager{tokens: map[string]string{}}
}

func (s *stubSessionManager) Generate(ctx context.Context, accessID string) (string, error) {
	s.counter++
	token := uuid.NewString()
	s.tokens[accessID] = token
	return token, nil
}

func (s *stubSessionManager) Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error) {
	stored, ok := s.tokens[oldAccessID]
	if !ok || stored != provided {
		return "", "", session.ErrInvalidRefreshToken
	}
	delete(s.tokens, oldAccessID)
	newAccessID := uuid.NewString()
	token, _ := s.Generate(ctx, newAccessID)
	return newAccessID, token, nil
}

func (s *stubSessionManager) Revoke(ctx context.Context, accessID string) error {
	s.revoked = append(s.revoked, accessID)
	delete(s.tokens, accessID)
	return nil
}
