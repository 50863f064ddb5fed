package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskmaster/internal/apperror"
	"taskmaster/pkg/token"
)

func TestRegister(t *testing.T) {
	f := newFixture(t)

	res := f.register(t, "a@x.com")
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "a@x.com", res.User.Email)
	assert.Equal(t, "Ann", res.User.Name)
	_, err := uuid.Parse(res.User.ID)
	assert.NoError(t, err)

	stored, err := f.users.FindByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.NotEqual(t, "password1", stored.Password)
}

func TestRegisterValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := []struct {
		name string
		in   RegisterInput
		msg  string
	}{
		{"missing name", RegisterInput{Email: "a@x.com", Password: "password1"}, "Please provide email, password, and name"},
		{"missing email", RegisterInput{Password: "password1", Name: "Ann"}, "Please provide email, password, and name"},
		{"blank name", RegisterInput{Email: "a@x.com", Password: "password1", Name: "   "}, "Please provide email, password, and name"},
		{"short password", RegisterInput{Email: "a@x.com", Password: "short", Name: "Ann"}, "Password must be at least 8 characters long"},
		{"bad email", RegisterInput{Email: "not-an-email", Password: "password1", Name: "Ann"}, "Please provide a valid email address"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.auth.Register(ctx, tc.in)
			require.Error(t, err)
			assert.True(t, apperror.Is(err, apperror.KindValidation))
			assert.Equal(t, tc.msg, err.Error())
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := newFixture(t)
	f.register(t, "a@x.com")

	_, err := f.auth.Register(context.Background(), RegisterInput{Email: "a@x.com", Password: "another-pass", Name: "Other"})
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindConflict))
}

func TestLoginPasswordRoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	reg := f.register(t, "a@x.com")

	res, err := f.auth.Login(ctx, LoginInput{Email: "a@x.com", Password: "password1"})
	require.NoError(t, err)
	assert.Equal(t, reg.User, res.User)
	assert.NotEmpty(t, res.Token)

	for _, wrong := range []string{"password2", "Password1", "password1 ", ""} {
		_, err := f.auth.Login(ctx, LoginInput{Email: "a@x.com", Password: wrong})
		require.Error(t, err, wrong)
		assert.True(t, apperror.Is(err, apperror.KindAuth) || apperror.Is(err, apperror.KindValidation), wrong)
	}
}

func TestLoginUniformMessage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.register(t, "a@x.com")

	_, unknown := f.auth.Login(ctx, LoginInput{Email: "nobody@x.com", Password: "password1"})
	_, wrong := f.auth.Login(ctx, LoginInput{Email: "a@x.com", Password: "wrong-password"})

	require.Error(t, unknown)
	require.Error(t, wrong)
	assert.Equal(t, unknown.Error(), wrong.Error())
	assert.Equal(t, "Invalid email or password", wrong.Error())
	assert.True(t, apperror.Is(unknown, apperror.KindAuth))
}

func TestLoginMissingFields(t *testing.T) {
	f := newFixture(t)

	_, err := f.auth.Login(context.Background(), LoginInput{Email: "a@x.com"})
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindValidation))
	assert.Equal(t, "Please provide email and password", err.Error())
}

func TestVerifyToken(t *testing.T) {
	f := newFixture(t)
	reg := f.register(t, "a@x.com")

	id, err := f.auth.VerifyToken(reg.Token)
	require.NoError(t, err)
	assert.Equal(t, Identity{UserID: reg.User.ID, Email: "a@x.com"}, id)
}

func TestVerifyTokenFailures(t *testing.T) {
	f := newFixture(t)

	expired, err := token.NewManager(testSecret, -time.Minute).Issue(uuid.NewString(), "a@x.com")
	require.NoError(t, err)
	foreign, err := token.NewManager("other-secret", time.Hour).Issue(uuid.NewString(), "a@x.com")
	require.NoError(t, err)

	cases := map[string]string{
		expired:     "Token expired. Please login again.",
		foreign:     "Invalid token. Access denied.",
		"not.a.jwt": "Invalid token. Access denied.",
	}
	for tok, msg := range cases {
		_, err := f.auth.VerifyToken(tok)
		require.Error(t, err)
		assert.True(t, apperror.Is(err, apperror.KindAuth))

		var appErr *apperror.Error
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, msg, appErr.Message)
	}
}

func TestGetProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	reg := f.register(t, "a@x.com")

	profile, err := f.auth.GetProfile(ctx, reg.User.ID)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, profile.ID)
	assert.Equal(t, "Ann", profile.Name)
	assert.False(t, profile.CreatedAt.IsZero())

	for _, id := range []string{uuid.NewString(), "not-a-uuid"} {
		_, err = f.auth.GetProfile(ctx, id)
		require.Error(t, err)
		assert.True(t, apperror.Is(err, apperror.KindNotFound))
		assert.Equal(t, "User not found", err.Error())
	}
}

func TestChangePassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	reg := f.register(t, "a@x.com")

	err := f.auth.ChangePassword(ctx, reg.User.ID, "wrong-current", "new-password")
	assert.True(t, apperror.Is(err, apperror.KindAuth))

	err = f.auth.ChangePassword(ctx, reg.User.ID, "password1", "short")
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	require.NoError(t, f.auth.ChangePassword(ctx, reg.User.ID, "password1", "new-password"))

	_, err = f.auth.Login(ctx, LoginInput{Email: "a@x.com", Password: "password1"})
	assert.True(t, apperror.Is(err, apperror.KindAuth))
	_, err = f.auth.Login(ctx, LoginInput{Email: "a@x.com", Password: "new-password"})
	assert.NoError(t, err)
}
