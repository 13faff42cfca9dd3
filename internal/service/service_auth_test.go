package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/go-six-notes/internal/config"
	"github.com/MKhiriev/go-six-notes/internal/crypto"
	"github.com/MKhiriev/go-six-notes/internal/logger"
	"github.com/MKhiriev/go-six-notes/internal/store"
	"github.com/MKhiriev/go-six-notes/internal/utils"
	"github.com/MKhiriev/go-six-notes/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testAppCfg = config.App{
	TokenSignKey:  "sign-key",
	TokenIssuer:   "six-notes",
	TokenDuration: time.Hour,
}

func newTestAuthService(repo store.UserRepository, hasher crypto.PasswordHasher) AuthService {
	return NewAuthService(repo, hasher, testAppCfg, logger.Nop())
}

// ─────────────────────────────────────────────
// RegisterUser
// ─────────────────────────────────────────────

func TestRegisterUser_HashesPassword(t *testing.T) {
	var stored models.User
	repo := &mockUserRepository{createFn: func(ctx context.Context, user models.User) (models.User, error) {
		stored = user
		user.UserID = 42
		return user, nil
	}}

	got, err := newTestAuthService(repo, stubHasher{}).RegisterUser(context.Background(), models.User{Login: "ann", Password: "pw"})

	require.NoError(t, err)
	assert.Equal(t, int64(42), got.UserID)
	assert.Equal(t, "hashed:pw", stored.PasswordHash)
	assert.Empty(t, stored.Password, "plain password must never reach the repository")
}

func TestRegisterUser_InvalidData(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{}, stubHasher{})

	for _, u := range []models.User{{Login: "ann"}, {Password: "pw"}, {}} {
		_, err := svc.RegisterUser(context.Background(), u)
		assert.ErrorIs(t, err, ErrInvalidDataProvided)
	}
}

func TestRegisterUser_HashFails(t *testing.T) {
	boom := errors.New("no entropy")
	_, err := newTestAuthService(&mockUserRepository{}, stubHasher{hashErr: boom}).
		RegisterUser(context.Background(), models.User{Login: "ann", Password: "pw"})

	assert.ErrorIs(t, err, boom)
}

func TestRegisterUser_LoginTaken(t *testing.T) {
	repo := &mockUserRepository{createFn: func(ctx context.Context, user models.User) (models.User, error) {
		return models.User{}, store.ErrLoginAlreadyExists
	}}

	_, err := newTestAuthService(repo, stubHasher{}).RegisterUser(context.Background(), models.User{Login: "ann", Password: "pw"})

	assert.ErrorIs(t, err, store.ErrLoginAlreadyExists)
}

// ─────────────────────────────────────────────
// Login
// ─────────────────────────────────────────────

func TestLogin(t *testing.T) {
	repo := &mockUserRepository{findByLoginFn: func(ctx context.Context, login string) (models.User, error) {
		if login != "ann" {
			return models.User{}, store.ErrNoUserWasFound
		}
		return models.User{UserID: 3, Login: "ann", PasswordHash: "hashed:pw"}, nil
	}}
	svc := newTestAuthService(repo, stubHasher{})

	tests := []struct {
		name    string
		user    models.User
		wantErr error
	}{
		{name: "success", user: models.User{Login: "ann", Password: "pw"}},
		{name: "wrong password", user: models.User{Login: "ann", Password: "nope"}, wantErr: ErrWrongPassword},
		{name: "unknown user", user: models.User{Login: "bob", Password: "pw"}, wantErr: store.ErrNoUserWasFound},
		{name: "empty password", user: models.User{Login: "ann"}, wantErr: ErrInvalidDataProvided},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Login(context.Background(), tt.user)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(3), got.UserID)
		})
	}
}

func TestLogin_CorruptedHash(t *testing.T) {
	repo := &mockUserRepository{findByLoginFn: func(ctx context.Context, login string) (models.User, error) {
		return models.User{UserID: 3, Login: login, PasswordHash: "garbage"}, nil
	}}

	_, err := newTestAuthService(repo, stubHasher{verifyErr: crypto.ErrMalformedHash}).
		Login(context.Background(), models.User{Login: "ann", Password: "pw"})

	assert.ErrorIs(t, err, crypto.ErrMalformedHash)
	assert.NotErrorIs(t, err, ErrWrongPassword)
}

func TestLogin_RealHasher(t *testing.T) {
	hasher := crypto.NewPasswordHasher()
	encoded, err := hasher.Hash("pw")
	require.NoError(t, err)

	repo := &mockUserRepository{findByLoginFn: func(ctx context.Context, login string) (models.User, error) {
		return models.User{UserID: 5, Login: login, PasswordHash: encoded}, nil
	}}

	_, err = newTestAuthService(repo, hasher).Login(context.Background(), models.User{Login: "ann", Password: "pw"})
	assert.NoError(t, err)
}

// ─────────────────────────────────────────────
// Tokens
// ─────────────────────────────────────────────

func TestCreateAndParseToken(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{}, stubHasher{})

	token, err := svc.CreateToken(context.Background(), models.User{UserID: 77})
	require.NoError(t, err)
	require.NotEmpty(t, token.String())

	parsed, err := svc.ParseToken(context.Background(), token.String())
	require.NoError(t, err)
	assert.Equal(t, int64(77), parsed.UserID)
}

func TestCreateToken_MisconfiguredKey(t *testing.T) {
	svc := NewAuthService(&mockUserRepository{}, stubHasher{}, config.App{TokenIssuer: "x", TokenDuration: time.Hour}, logger.Nop())

	_, err := svc.CreateToken(context.Background(), models.User{UserID: 1})
	assert.ErrorIs(t, err, ErrTokenCreationFailed)
}

func TestParseToken_Expired(t *testing.T) {
	token, err := utils.GenerateJWTToken(testAppCfg.TokenIssuer, 1, -time.Minute, testAppCfg.TokenSignKey)
	require.NoError(t, err)

	_, err = newTestAuthService(&mockUserRepository{}, stubHasher{}).ParseToken(context.Background(), token.String())
	assert.ErrorIs(t, err, ErrTokenIsExpired)
}

func TestParseToken_Invalid(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{}, stubHasher{})

	_, err := svc.ParseToken(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)

	foreign, err := utils.GenerateJWTToken("someone-else", 1, time.Hour, testAppCfg.TokenSignKey)
	require.NoError(t, err)
	_, err = svc.ParseToken(context.Background(), foreign.String())
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

// ─────────────────────────────────────────────
// AccountStatus
// ─────────────────────────────────────────────

func TestAccountStatus(t *testing.T) {
	svcWith := func(find func(ctx context.Context, id int64) (models.User, error)) AuthService {
		return newTestAuthService(&mockUserRepository{findByIDFn: find}, stubHasher{})
	}
	issue := func(t *testing.T) string {
		tok, err := newTestAuthService(&mockUserRepository{}, stubHasher{}).CreateToken(context.Background(), models.User{UserID: 9})
		require.NoError(t, err)
		return tok.String()
	}

	tests := []struct {
		name  string
		token func(t *testing.T) string
		find  func(ctx context.Context, id int64) (models.User, error)
		want  models.AccountStatus
	}{
		{
			name:  "no token",
			token: func(t *testing.T) string { return "" },
			want:  models.AccountStatusNoAccount,
		},
		{
			name:  "bad token",
			token: func(t *testing.T) string { return "junk" },
			want:  models.AccountStatusNoAccount,
		},
		{
			name:  "available",
			token: issue,
			want:  models.AccountStatusAvailable,
		},
		{
			name:  "restricted",
			token: issue,
			find: func(ctx context.Context, id int64) (models.User, error) {
				return models.User{UserID: id, Restricted: true}, nil
			},
			want: models.AccountStatusRestricted,
		},
		{
			name:  "deleted user",
			token: issue,
			find: func(ctx context.Context, id int64) (models.User, error) {
				return models.User{}, store.ErrNoUserWasFound
			},
			want: models.AccountStatusNoAccount,
		},
		{
			name:  "storage down",
			token: issue,
			find: func(ctx context.Context, id int64) (models.User, error) {
				return models.User{}, errors.Join(store.ErrStoreUnavailable, errors.New("conn refused"))
			},
			want: models.AccountStatusTemporarilyUnavailable,
		},
		{
			name:  "unexpected failure",
			token: issue,
			find: func(ctx context.Context, id int64) (models.User, error) {
				return models.User{}, errors.New("weird")
			},
			want: models.AccountStatusUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := svcWith(tt.find).AccountStatus(context.Background(), tt.token(t))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCheckUserAllowed(t *testing.T) {
	restricted := newTestAuthService(&mockUserRepository{findByIDFn: func(ctx context.Context, id int64) (models.User, error) {
		return models.User{UserID: id, Restricted: true}, nil
	}}, stubHasher{})
	assert.ErrorIs(t, restricted.CheckUserAllowed(context.Background(), 1), ErrAccountRestricted)

	allowed := newTestAuthService(&mockUserRepository{}, stubHasher{})
	assert.NoError(t, allowed.CheckUserAllowed(context.Background(), 1))

	missing := newTestAuthService(&mockUserRepository{findByIDFn: func(ctx context.Context, id int64) (models.User, error) {
		return models.User{}, store.ErrNoUserWasFound
	}}, stubHasher{})
	assert.ErrorIs(t, missing.CheckUserAllowed(context.Background(), 1), store.ErrNoUserWasFound)
}
