package auth

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/Spok95/sales-training-backend/internal/ctxutil"
	"github.com/Spok95/sales-training-backend/internal/db"
	"github.com/Spok95/sales-training-backend/internal/models"
)

// Lookup ищет пользователя по нормализованному email; models.ErrNotFound, если нет.
type Lookup func(ctx context.Context, email string) (*models.UserStats, error)

func DBLookup(database *sql.DB) Lookup {
	return func(ctx context.Context, email string) (*models.UserStats, error) {
		ctx, cancel := ctxutil.WithDBTimeout(ctx)
		defer cancel()
		return db.GetStatsContext(ctx, database, email)
	}
}

type Authenticator struct {
	lookup Lookup
	hasher Hasher
	// хеш для сравнения, когда пользователя нет: время ответа не выдаёт существование email
	dummy string
}

func NewAuthenticator(lookup Lookup, hasher Hasher) *Authenticator {
	dummy, _ := hasher.Hash("placeholder-password")
	return &Authenticator{lookup: lookup, hasher: hasher, dummy: dummy}
}

// Authenticate возвращает models.ErrInvalidCredentials одинаково для неизвестного
// email, пустого сохранённого пароля и неверного пароля.
func (a *Authenticator) Authenticate(ctx context.Context, email, password string) (*models.UserStats, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, models.Invalid("", "Email and password required")
	}
	norm, err := models.NormalizeEmail(email)
	if err != nil {
		a.burn(password)
		return nil, models.ErrInvalidCredentials
	}

	u, err := a.lookup(ctx, norm)
	switch {
	case errors.Is(err, models.ErrNotFound):
		a.burn(password)
		return nil, models.ErrInvalidCredentials
	case err != nil:
		return nil, err
	}
	if u.PasswordHash == nil || *u.PasswordHash == "" {
		a.burn(password)
		return nil, models.ErrInvalidCredentials
	}
	if err := a.hasher.Compare(*u.PasswordHash, password); err != nil {
		return nil, models.ErrInvalidCredentials
	}
	return u, nil
}

func (a *Authenticator) burn(password string) {
	if a.dummy != "" {
		_ = a.hasher.Compare(a.dummy, password)
	}
}
