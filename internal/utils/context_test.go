package utils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetUserIDFromContext(t *testing.T) {
	tests := []struct {
		name   string
		ctx    context.Context
		want   int64
		wantOK bool
	}{
		{name: "set", ctx: context.WithValue(context.Background(), UserIDCtxKey, int64(42)), want: 42, wantOK: true},
		{name: "missing", ctx: context.Background()},
		{name: "int instead of int64", ctx: context.WithValue(context.Background(), UserIDCtxKey, 42)},
		// строковый ключ с тем же текстом - другой ключ
		{name: "plain string key", ctx: context.WithValue(context.Background(), "userID", int64(42))}, //nolint:staticcheck
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := GetUserIDFromContext(tt.ctx)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUserIDCtxKey_String(t *testing.T) {
	assert.Equal(t, "userID", UserIDCtxKey.String())
}
