package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"golang.org/x/crypto/bcrypt"
)

var pgErr = errors.New("db error")

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	t.Cleanup(mock.Close)
	return mock
}

func TestCreateUserAndLogin(t *testing.T) {
	mock := newMock(t)
	createdAt := time.Now().Add(-time.Minute)

	mock.ExpectQuery(`INSERT INTO profiles`).
		WithArgs(pgxmock.AnyArg(), "linh", "linh", pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(createdAt))

	svc := NewService("test-secret", mock)
	profile, err := svc.CreateUser(context.Background(), CreateUserRequest{Username: " linh ", Password: "password123"})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if profile.ID == "" || profile.DisplayName != "linh" {
		t.Fatalf("expected display name to default to username, got %+v", profile)
	}

	mock.ExpectQuery(`SELECT id, username, display_name, password_hash, created_at`).
		WithArgs("linh").
		WillReturnRows(pgxmock.NewRows([]string{"id", "username", "display_name", "password_hash", "created_at"}).
			AddRow(profile.ID, "linh", "linh", profile.PasswordHash, createdAt))
	mock.ExpectExec(`INSERT INTO refresh_tokens`).
		WithArgs(pgxmock.AnyArg(), profile.ID, pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	loggedIn, tokens, err := svc.Login(context.Background(), LoginRequest{Username: "linh", Password: "password123"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if loggedIn.ID != profile.ID || tokens.AccessToken == "" || tokens.RefreshToken == "" {
		t.Fatalf("expected profile and tokens")
	}

	userID, err := svc.ValidateAccessToken(tokens.AccessToken)
	if err != nil || userID != profile.ID {
		t.Fatalf("validate access token: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateUserValidation(t *testing.T) {
	svc := NewService("test-secret", nil)
	if _, err := svc.CreateUser(context.Background(), CreateUserRequest{Username: "", Password: "p"}); err == nil {
		t.Fatalf("expected error for missing username")
	}
	if _, err := svc.CreateUser(context.Background(), CreateUserRequest{Username: "u", Password: ""}); err == nil {
		t.Fatalf("expected error for missing password")
	}
}

func TestCreateUserDuplicate(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(`INSERT INTO profiles`).
		WithArgs(pgxmock.AnyArg(), "linh", "Linh", pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	svc := NewService("test-secret", mock)
	_, err := svc.CreateUser(context.Background(), CreateUserRequest{Username: "linh", Password: "p", DisplayName: "Linh"})
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected username taken, got %v", err)
	}
}

func TestCreateUserHashError(t *testing.T) {
	oldHash := hashPasswordFn
	hashPasswordFn = func(_ []byte, _ int) ([]byte, error) {
		return nil, pgErr
	}
	defer func() { hashPasswordFn = oldHash }()

	svc := NewService("test-secret", nil)
	if _, err := svc.CreateUser(context.Background(), CreateUserRequest{Username: "u", Password: "p"}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestLoginInvalidPassword(t *testing.T) {
	mock := newMock(t)
	hash, _ := bcrypt.GenerateFromPassword([]byte("correct"), bcrypt.DefaultCost)

	mock.ExpectQuery(`SELECT id, username, display_name, password_hash, created_at`).
		WithArgs("linh").
		WillReturnRows(pgxmock.NewRows([]string{"id", "username", "display_name", "password_hash", "created_at"}).
			AddRow("user-1", "linh", "Linh", string(hash), time.Now()))

	svc := NewService("test-secret", mock)
	_, _, err := svc.Login(context.Background(), LoginRequest{Username: "linh", Password: "wrong"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestLoginUnknownUser(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(`SELECT id, username, display_name, password_hash, created_at`).
		WithArgs("ghost").
		WillReturnError(pgx.ErrNoRows)

	svc := NewService("test-secret", mock)
	_, _, err := svc.Login(context.Background(), LoginRequest{Username: "ghost", Password: "x"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
}

func TestLoginQueryError(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(`SELECT id, username, display_name, password_hash, created_at`).
		WithArgs("linh").
		WillReturnError(pgErr)

	svc := NewService("test-secret", mock)
	_, _, err := svc.Login(context.Background(), LoginRequest{Username: "linh", Password: "pass"})
	if !errors.Is(err, pgErr) {
		t.Fatalf("expected db error, got %v", err)
	}
}

func TestProfile(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(`SELECT id, username, display_name, created_at`).
		WithArgs("user-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "username", "display_name", "created_at"}).
			AddRow("user-1", "linh", "Linh", time.Now()))
	mock.ExpectQuery(`SELECT id, username, display_name, created_at`).
		WithArgs("user-2").
		WillReturnError(pgx.ErrNoRows)

	svc := NewService("test-secret", mock)
	p, err := svc.Profile(context.Background(), "user-1")
	if err != nil || p.DisplayName != "Linh" {
		t.Fatalf("profile: %v", err)
	}
	if _, err := svc.Profile(context.Background(), "user-2"); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestValidateRefreshToken(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec(`INSERT INTO refresh_tokens`).
		WithArgs(pgxmock.AnyArg(), "user-1", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	svc := NewService("test-secret", mock)
	tokens, err := svc.GenerateTokens(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("generate tokens: %v", err)
	}

	mock.ExpectQuery(`SELECT user_id, expires_at`).
		WithArgs(tokens.RefreshToken).
		WillReturnRows(pgxmock.NewRows([]string{"user_id", "expires_at"}).AddRow("user-1", time.Now().Add(5*time.Minute)))

	userID, err := svc.ValidateRefreshToken(context.Background(), tokens.RefreshToken)
	if err != nil {
		t.Fatalf("validate refresh: %v", err)
	}
	if userID != "user-1" {
		t.Fatalf("unexpected user_id: %s", userID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestValidateRefreshTokenExpired(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec(`INSERT INTO refresh_tokens`).
		WithArgs(pgxmock.AnyArg(), "user-2", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	svc := NewService("test-secret", mock)
	tokens, err := svc.GenerateTokens(context.Background(), "user-2")
	if err != nil {
		t.Fatalf("generate tokens: %v", err)
	}

	mock.ExpectQuery(`SELECT user_id, expires_at`).
		WithArgs(tokens.RefreshToken).
		WillReturnRows(pgxmock.NewRows([]string{"user_id", "expires_at"}).AddRow("user-2", time.Now().Add(-time.Minute)))

	if _, err := svc.ValidateRefreshToken(context.Background(), tokens.RefreshToken); err == nil {
		t.Fatalf("expected expired token error")
	}
}

func TestLogout(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec(`UPDATE refresh_tokens SET revoked_at`).
		WithArgs("tok").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`UPDATE refresh_tokens SET revoked_at`).
		WithArgs("gone").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	svc := NewService("test-secret", mock)
	if err := svc.Logout(context.Background(), "tok"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if err := svc.Logout(context.Background(), "gone"); err == nil {
		t.Fatalf("expected error for unknown token")
	}
}

func TestGenerateTokensSaveRefreshError(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec(`INSERT INTO refresh_tokens`).
		WithArgs(pgxmock.AnyArg(), "user-1", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(pgErr)

	svc := NewService("test-secret", mock)
	if _, err := svc.GenerateTokens(context.Background(), "user-1"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestGenerateTokensSignErrors(t *testing.T) {
	oldSign := signTokenFn
	defer func() { signTokenFn = oldSign }()

	signTokenFn = func(_ *Service, _ string, _ time.Duration) (string, error) {
		return "", pgErr
	}
	svc := NewService("test-secret", nil)
	if _, err := svc.GenerateTokens(context.Background(), "user-1"); err == nil {
		t.Fatalf("expected access sign error")
	}

	call := 0
	signTokenFn = func(_ *Service, _ string, _ time.Duration) (string, error) {
		call++
		if call == 2 {
			return "", pgErr
		}
		return "token", nil
	}
	if _, err := svc.GenerateTokens(context.Background(), "user-1"); err == nil {
		t.Fatalf("expected refresh sign error")
	}
}

func TestParseTokenInvalid(t *testing.T) {
	oldParse := parseWithClaimsFn
	parseWithClaimsFn = func(_ string, _ jwt.Claims, _ jwt.Keyfunc, _ ...jwt.ParserOption) (*jwt.Token, error) {
		return &jwt.Token{Valid: false, Claims: &Claims{}}, nil
	}
	defer func() { parseWithClaimsFn = oldParse }()

	svc := NewService("test-secret", nil)
	if _, err := svc.parseToken("token"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestValidateAccessTokenWrongSecret(t *testing.T) {
	signer := NewService("one", nil)
	token, err := signer.signToken("user-1", accessTokenTTL)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := NewService("two", nil).ValidateAccessToken(token); err == nil {
		t.Fatalf("expected signature error")
	}
	if _, err := signer.ValidateAccessToken("invalid-token"); err == nil {
		t.Fatalf("expected parse error")
	}
}
