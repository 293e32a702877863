package services

import (
	"testing"
	"time"

	"github.com/calmtasks/calmtasks-api/internal/models"
	"github.com/calmtasks/calmtasks-api/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAuthService(t *testing.T) *AuthService {
	t.Helper()
	db := setupServiceDB(t)
	tokenService := NewTokenService("test-secret", time.Hour)
	return NewAuthService(repository.NewUserRepository(db), tokenService)
}

func TestSignup_NormalizesEmail(t *testing.T) {
	service := setupAuthService(t)

	user, token, err := service.Signup(SignupInput{
		Name:     "Alice",
		Email:    "  Alice@Example.COM ",
		Password: "supersecret",
	})
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", user.Email)
	require.NotEmpty(t, token)
	require.NotEqual(t, "supersecret", user.PasswordHash)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	service := setupAuthService(t)

	_, _, err := service.Signup(SignupInput{Name: "Alice", Email: "alice@example.com", Password: "supersecret"})
	require.NoError(t, err)

	// Same address in a different spelling is still a duplicate.
	_, _, err = service.Signup(SignupInput{Name: "Other", Email: "ALICE@example.com", Password: "supersecret"})
	require.ErrorIs(t, err, ErrEmailTaken)
}

// blindLookupUserRepo never finds an existing email, so a signup always
// reaches the insert. This recreates two concurrent signups both passing
// the duplicate pre-check before either row exists.
type blindLookupUserRepo struct {
	repository.UserRepository
}

func (r blindLookupUserRepo) FindByEmail(email string) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func TestSignup_RacingDuplicateMapsToEmailTaken(t *testing.T) {
	db := setupServiceDB(t)
	tokenService := NewTokenService("test-secret", time.Hour)
	service := NewAuthService(blindLookupUserRepo{repository.NewUserRepository(db)}, tokenService)

	_, _, err := service.Signup(SignupInput{Name: "Alice", Email: "alice@example.com", Password: "supersecret"})
	require.NoError(t, err)

	// The loser hits the unique index, not a generic failure.
	_, _, err = service.Signup(SignupInput{Name: "Other", Email: "alice@example.com", Password: "supersecret"})
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestSignup_Validation(t *testing.T) {
	service := setupAuthService(t)

	_, _, err := service.Signup(SignupInput{Email: "a@b.com", Password: "supersecret"})
	require.ErrorIs(t, err, ErrNameRequired)

	_, _, err = service.Signup(SignupInput{Name: "Alice", Password: "supersecret"})
	require.ErrorIs(t, err, ErrEmailRequired)

	_, _, err = service.Signup(SignupInput{Name: "Alice", Email: "a@b.com", Password: "short"})
	require.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestLogin(t *testing.T) {
	service := setupAuthService(t)

	created, _, err := service.Signup(SignupInput{Name: "Alice", Email: "alice@example.com", Password: "supersecret"})
	require.NoError(t, err)

	user, token, err := service.Login(LoginInput{Email: "Alice@Example.com", Password: "supersecret"})
	require.NoError(t, err)
	require.Equal(t, created.ID, user.ID)
	require.NotEmpty(t, token)

	_, _, err = service.Login(LoginInput{Email: "alice@example.com", Password: "wrongpass"})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = service.Login(LoginInput{Email: "nobody@example.com", Password: "supersecret"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestTokenService_RoundTrip(t *testing.T) {
	tokenService := NewTokenService("test-secret", time.Hour)

	token, err := tokenService.Generate(42)
	require.NoError(t, err)

	userID, err := tokenService.Parse(token)
	require.NoError(t, err)
	require.EqualValues(t, 42, userID)
}

func TestTokenService_RejectsBadTokens(t *testing.T) {
	tokenService := NewTokenService("test-secret", time.Hour)

	_, err := tokenService.Parse("not-a-token")
	require.ErrorIs(t, err, ErrInvalidToken)

	other := NewTokenService("other-secret", time.Hour)
	token, err := other.Generate(42)
	require.NoError(t, err)
	_, err = tokenService.Parse(token)
	require.ErrorIs(t, err, ErrInvalidToken)

	expired := NewTokenService("test-secret", -time.Hour)
	token, err = expired.Generate(42)
	require.NoError(t, err)
	_, err = tokenService.Parse(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}
