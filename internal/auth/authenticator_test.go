package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/Spok95/sales-training-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeLookup(users map[string]*models.UserStats) Lookup {
	return func(_ context.Context, email string) (*models.UserStats, error) {
		if u, ok := users[email]; ok {
			return u, nil
		}
		return nil, models.ErrNotFound
	}
}

func newTestAuth(t *testing.T) *Authenticator {
	t.Helper()
	h := NewBcryptHasher(4)
	hash, err := h.Hash("s3cret")
	require.NoError(t, err)
	users := map[string]*models.UserStats{
		"shawn@x.com":  {ID: 7, Email: "shawn@x.com", Name: "Shawn", PasswordHash: &hash},
		"nopass@x.com": {ID: 8, Email: "nopass@x.com"},
	}
	return NewAuthenticator(fakeLookup(users), h)
}

func TestAuthenticate_OK(t *testing.T) {
	a := newTestAuth(t)
	u, err := a.Authenticate(context.Background(), " Shawn@X.com ", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, int64(7), u.ID)
}

func TestAuthenticate_SameErrorForWrongPasswordAndUnknownEmail(t *testing.T) {
	a := newTestAuth(t)
	ctx := context.Background()

	_, errWrong := a.Authenticate(ctx, "shawn@x.com", "nope")
	_, errUnknown := a.Authenticate(ctx, "ghost@x.com", "s3cret")
	_, errNoPass := a.Authenticate(ctx, "nopass@x.com", "anything")
	_, errMalformed := a.Authenticate(ctx, "not-an-email", "anything")

	for _, err := range []error{errWrong, errUnknown, errNoPass, errMalformed} {
		assert.ErrorIs(t, err, models.ErrInvalidCredentials)
	}
	assert.Equal(t, errWrong.Error(), errUnknown.Error())
}

func TestAuthenticate_MissingFields(t *testing.T) {
	a := newTestAuth(t)
	_, err := a.Authenticate(context.Background(), "", "x")
	assert.True(t, models.IsValidation(err))
	_, err = a.Authenticate(context.Background(), "shawn@x.com", "")
	assert.True(t, models.IsValidation(err))
}

func TestAuthenticate_LookupFailure(t *testing.T) {
	boom := errors.New("db down")
	a := NewAuthenticator(func(context.Context, string) (*models.UserStats, error) { return nil, boom }, NewBcryptHasher(4))
	_, err := a.Authenticate(context.Background(), "a@x.com", "pw")
	assert.ErrorIs(t, err, boom)
}

func TestNewBcryptHasher_ClampsCost(t *testing.T) {
	assert.Equal(t, 10, NewBcryptHasher(0).cost)
	assert.Equal(t, 12, NewBcryptHasher(12).cost)
}
