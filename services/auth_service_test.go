package services

import (
	"context"
	"testing"
	"time"

	"lostfound/models"
	"lostfound/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "test-secret"

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()
	return NewAuthService(newTestCache(t), testJWTSecret, time.Hour, "ADMIN2024", []string{"klu.ac.in"})
}

func validRegisterInput() RegisterInput {
	return RegisterInput{
		FullName:        "Asha Rao",
		Email:           "asha@klu.ac.in",
		Phone:           "9876543210",
		Password:        "Abcd123!",
		ConfirmPassword: "Abcd123!",
	}
}

func TestRegisterIsAlsoLogin(t *testing.T) {
	svc := newTestAuthService(t)

	user, token, offline, err := svc.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)
	assert.False(t, offline)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "asha@klu.ac.in", user.Email)

	// The returned token already authenticates the new account.
	claims, err := utils.VerifyJWTToken(token, testJWTSecret)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, utils.RoleUser, claims.Role)

	// The password is stored hashed.
	stored, err := svc.GetUser(user.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "Abcd123!", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("Abcd123!")))
}

func TestRegisterNormalizesEmail(t *testing.T) {
	svc := newTestAuthService(t)

	in := validRegisterInput()
	in.Email = "  Asha@KLU.ac.in "
	user, _, _, err := svc.Register(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "asha@klu.ac.in", user.Email)
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	in := validRegisterInput()
	in.Email = "asha@gmail.com"
	_, _, _, err := svc.Register(ctx, in)
	assert.Error(t, err, "foreign email domain")

	in = validRegisterInput()
	in.Password = "weak"
	in.ConfirmPassword = "weak"
	_, _, _, err = svc.Register(ctx, in)
	assert.Error(t, err, "weak password")

	in = validRegisterInput()
	in.ConfirmPassword = "Abcd123?"
	_, _, _, err = svc.Register(ctx, in)
	assert.Error(t, err, "password mismatch")

	in = validRegisterInput()
	in.Phone = "1234567890"
	_, _, _, err = svc.Register(ctx, in)
	assert.Error(t, err, "bad phone")

	in = validRegisterInput()
	in.FullName = ""
	_, _, _, err = svc.Register(ctx, in)
	assert.Error(t, err, "missing field")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	_, _, _, err := svc.Register(ctx, validRegisterInput())
	require.NoError(t, err)

	in := validRegisterInput()
	in.Email = "ASHA@klu.ac.in"
	_, _, _, err = svc.Register(ctx, in)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	svc := newTestAuthService(t)

	registered, _, _, err := svc.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	user, token, err := svc.Login("asha@klu.ac.in", "Abcd123!")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.NotEmpty(t, token)

	_, _, err = svc.Login("asha@klu.ac.in", "WrongPass1!")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login("nobody@klu.ac.in", "Abcd123!")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAdminLogin(t *testing.T) {
	svc := newTestAuthService(t)

	token, err := svc.AdminLogin("ADMIN2024")
	require.NoError(t, err)

	claims, err := utils.VerifyJWTToken(token, testJWTSecret)
	require.NoError(t, err)
	assert.Equal(t, utils.RoleAdmin, claims.Role)

	_, err = svc.AdminLogin("admin2024")
	assert.ErrorIs(t, err, ErrInvalidAdminCode)

	_, err = svc.AdminLogin("")
	assert.ErrorIs(t, err, ErrInvalidAdminCode)
}

// Full reporting round trip through the services: register, file a
// report, watch the dashboard counters move with the status toggle.
func TestReportLifecycle(t *testing.T) {
	cache := newTestCache(t)
	auth := NewAuthService(cache, testJWTSecret, time.Hour, "ADMIN2024", []string{"klu.ac.in"})
	reports := NewReportService(cache, nil, []string{"klu.ac.in"})
	ctx := context.Background()

	user, _, _, err := auth.Register(ctx, validRegisterInput())
	require.NoError(t, err)

	report, _, err := reports.Report(ctx, user.ID, models.KindLost, validReportInput())
	require.NoError(t, err)

	stats, err := reports.UserStats(user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.UserStats{TotalLost: 1, TotalFound: 0, TotalResolved: 0}, stats)

	resolved, _, err := reports.ToggleStatus(ctx, report.ID, models.KindLost)
	require.NoError(t, err)
	require.NotNil(t, resolved.ResolvedAt)

	stats, err = reports.UserStats(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalResolved)
}
