package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/MKhiriev/go-six-notes/internal/logger"
	"github.com/MKhiriev/go-six-notes/models"
	"github.com/jackc/pgerrcode"
)

// userRepository keeps accounts in the users table. Passwords arrive
// already hashed.
type userRepository struct {
	db     *DB
	logger *logger.Logger
}

func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	return &userRepository{db: db, logger: logger}
}

func scanUser(row rowScanner) (models.User, error) {
	var u models.User
	err := row.Scan(&u.UserID, &u.Login, &u.PasswordHash, &u.Restricted, &u.CreatedAt)
	return u, err
}

// CreateUser returns [ErrLoginAlreadyExists] when the login is taken.
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	created, err := scanUser(r.db.QueryRowContext(ctx, createUser, user.Login, user.PasswordHash))
	if err == nil {
		return created, nil
	}

	if pgCode(err) == pgerrcode.UniqueViolation {
		return models.User{}, ErrLoginAlreadyExists
	}
	logger.FromContext(ctx).Err(err).Str("login", user.Login).Msg("inserting user failed")
	return models.User{}, r.db.wrapError(ErrExecutingStatement, err)
}

// FindUserByLogin and FindUserByID return [ErrNoUserWasFound] for a miss.
func (r *userRepository) FindUserByLogin(ctx context.Context, login string) (models.User, error) {
	return r.findOne(ctx, findUserByLogin, login)
}

func (r *userRepository) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	return r.findOne(ctx, findUserByID, userID)
}

func (r *userRepository) findOne(ctx context.Context, query string, key any) (models.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx, query, key))
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.User{}, ErrNoUserWasFound
	case err != nil:
		logger.FromContext(ctx).Err(err).Any("key", key).Msg("user lookup failed")
		return models.User{}, r.db.wrapError(ErrExecutingQuery, err)
	}
	return user, nil
}
