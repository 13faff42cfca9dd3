package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-six-notes/internal/config"
	"github.com/MKhiriev/go-six-notes/internal/crypto"
	"github.com/MKhiriev/go-six-notes/internal/logger"
	"github.com/MKhiriev/go-six-notes/internal/store"
	"github.com/MKhiriev/go-six-notes/internal/utils"
	"github.com/MKhiriev/go-six-notes/internal/validators"
	"github.com/MKhiriev/go-six-notes/models"
	"github.com/golang-jwt/jwt/v5"
)

// authService registers users, checks passwords (Argon2id via
// crypto.PasswordHasher) and issues and parses HS256 session tokens.
type authService struct {
	userRepository store.UserRepository
	hasher         crypto.PasswordHasher
	credentials    validators.Validator

	tokenSignKey  string
	tokenIssuer   string
	tokenDuration time.Duration

	logger *logger.Logger
}

func NewAuthService(userRepository store.UserRepository, hasher crypto.PasswordHasher, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		hasher:         hasher,
		credentials:    validators.NewRecordValidator(0),
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		logger:         logger,
	}
}

// checkCredentials rejects an empty login or password with
// ErrInvalidDataProvided.
func (a *authService) checkCredentials(ctx context.Context, user models.User) error {
	if err := a.credentials.Validate(ctx, user, validators.FieldLogin, validators.FieldPassword); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("login", user.Login).Msg("credentials rejected")
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return nil
}

// RegisterUser stores a new user with the password replaced by its hash.
// A taken login surfaces as store.ErrLoginAlreadyExists.
func (a *authService) RegisterUser(ctx context.Context, user models.User) (models.User, error) {
	if err := a.checkCredentials(ctx, user); err != nil {
		return models.User{}, err
	}

	encoded, err := a.hasher.Hash(user.Password)
	if err != nil {
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}
	user.PasswordHash, user.Password = encoded, ""

	registered, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("login", user.Login).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return registered, nil
}

// Login returns the stored user when the password matches. An unknown
// login (store.ErrNoUserWasFound) and ErrWrongPassword both reach the
// client as the same 401.
func (a *authService) Login(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := a.checkCredentials(ctx, user); err != nil {
		return models.User{}, err
	}

	found, err := a.userRepository.FindUserByLogin(ctx, user.Login)
	if err != nil {
		return models.User{}, fmt.Errorf("user search by login failed: %w", err)
	}

	ok, err := a.hasher.Verify(user.Password, found.PasswordHash)
	switch {
	case err != nil:
		log.Err(err).Int64("user_id", found.UserID).Msg("stored password hash is unreadable")
		return models.User{}, fmt.Errorf("verifying password: %w", err)
	case !ok:
		log.Warn().Int64("user_id", found.UserID).Msg("wrong password")
		return models.User{}, ErrWrongPassword
	}

	return found, nil
}

func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.UserID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken tells an expired token (ErrTokenIsExpired) apart from every
// other rejection (ErrTokenIsExpiredOrInvalid).
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.Token{}, ErrTokenIsExpired
		}
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

// AccountStatus reports whether the bearer of tokenString may sync.
//
//	no / bad / expired token  -> noAccount
//	user deleted              -> noAccount
//	user restricted           -> restricted
//	storage unreachable       -> temporarilyUnavailable
//	anything else failing     -> unknown
func (a *authService) AccountStatus(ctx context.Context, tokenString string) models.AccountStatus {
	if tokenString == "" {
		return models.AccountStatusNoAccount
	}

	token, err := a.ParseToken(ctx, tokenString)
	if err != nil {
		return models.AccountStatusNoAccount
	}

	user, err := a.userRepository.FindUserByID(ctx, token.UserID)
	switch {
	case err == nil:
	case errors.Is(err, store.ErrNoUserWasFound):
		return models.AccountStatusNoAccount
	case errors.Is(err, store.ErrStoreUnavailable):
		return models.AccountStatusTemporarilyUnavailable
	default:
		logger.FromContext(ctx).Err(err).Str("func", "authService.AccountStatus").Msg("user lookup failed")
		return models.AccountStatusUnknown
	}

	if user.Restricted {
		return models.AccountStatusRestricted
	}

	return models.AccountStatusAvailable
}

func (a *authService) CheckUserAllowed(ctx context.Context, userID int64) error {
	user, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("user lookup failed: %w", err)
	}
	if user.Restricted {
		return ErrAccountRestricted
	}
	return nil
}
