package store

import (
	"context"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// Keys of the client key-value store.
const (
	KeyNotes          = "notes"
	KeySelectedIndex  = "selectedIndex"
	KeyTextFont       = "textFont"
	KeyCodeFont       = "codeFont"
	KeySyncEnabled    = "syncEnabled"
	KeySession        = "session"
	KeySubscriptionID = "subscriptionID"
)

// LocalStorage is the client's durable key-value store. Get returns
// [ErrLocalKeyNotFound] for keys that were never set.
type LocalStorage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}
