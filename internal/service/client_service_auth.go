package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-six-notes/internal/adapter"
	"github.com/MKhiriev/go-six-notes/internal/store"
	"github.com/MKhiriev/go-six-notes/internal/utils"
	"github.com/MKhiriev/go-six-notes/models"
)

type clientAuthService struct {
	localStore *store.ClientStorages
	adapter    adapter.RecordStore
	ids        *utils.UUIDGenerator
}

func NewClientAuthService(localStore *store.ClientStorages, records adapter.RecordStore) ClientAuthService {
	return &clientAuthService{localStore: localStore, adapter: records, ids: utils.NewUUIDGenerator()}
}

func (a *clientAuthService) Register(ctx context.Context, user models.User) error {
	if user.Login == "" || user.Password == "" {
		return ErrInvalidDataProvided
	}

	if _, err := a.adapter.Register(ctx, user); err != nil {
		return fmt.Errorf("%w: %w", ErrRegisterOnServer, mapAdapterError(err))
	}

	return a.saveSession(ctx, user.Login)
}

func (a *clientAuthService) Login(ctx context.Context, user models.User) error {
	if user.Login == "" || user.Password == "" {
		return ErrInvalidDataProvided
	}

	if _, err := a.adapter.Login(ctx, user); err != nil {
		// на логине 401 означает неверную пару логин/пароль, а не протухший токен
		if errors.Is(err, adapter.ErrNotAuthenticated) {
			return fmt.Errorf("%w: %w", ErrLoginOnServer, ErrWrongPassword)
		}
		return fmt.Errorf("%w: %w", ErrLoginOnServer, mapAdapterError(err))
	}

	return a.saveSession(ctx, user.Login)
}

func (a *clientAuthService) saveSession(ctx context.Context, login string) error {
	session := models.Session{Login: login, Token: a.adapter.Token()}
	if err := a.localStore.SaveSession(ctx, session); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (a *clientAuthService) Logout(ctx context.Context) error {
	a.adapter.SetToken("")
	return a.localStore.SaveSession(ctx, models.Session{})
}

func (a *clientAuthService) RestoreSession(ctx context.Context) (bool, error) {
	session, err := a.localStore.LoadSession(ctx)
	if errors.Is(err, store.ErrLocalKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load session: %w", err)
	}
	if session.Empty() {
		return false, nil
	}

	a.adapter.SetToken(session.Token)
	return true, nil
}

func (a *clientAuthService) EnsureSubscription(ctx context.Context) (string, error) {
	id, err := a.localStore.LoadString(ctx, store.KeySubscriptionID, "")
	if err != nil {
		return "", fmt.Errorf("load subscription id: %w", err)
	}
	if id == "" {
		id = a.ids.Generate()
		if err = a.localStore.SaveString(ctx, store.KeySubscriptionID, id); err != nil {
			return "", fmt.Errorf("save subscription id: %w", err)
		}
	}

	if err = a.adapter.Subscribe(ctx, id); err != nil {
		return id, fmt.Errorf("subscribe: %w", mapAdapterError(err))
	}

	return id, nil
}
