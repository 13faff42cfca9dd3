package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"sync"
)

// hasherPool holds HMAC-SHA256 hashers keyed with the body signing key.
// InitHasherPool must run before Hash, SignBody or VerifyBody.
var hasherPool sync.Pool

// InitHasherPool sets the key used to sign request bodies. The client and
// the server must use the same key.
func InitHasherPool(hashKey string) {
	key := []byte(hashKey)
	hasherPool = sync.Pool{
		New: func() any { return hmac.New(sha256.New, key) },
	}
}

// Hash returns the HMAC-SHA256 of data.
func Hash(data []byte) []byte {
	h := hasherPool.Get().(hash.Hash)
	defer hasherPool.Put(h)

	h.Reset()
	h.Write(data)
	return h.Sum(nil)
}

// SignBody returns the hex HMAC-SHA256 of a request body, the value of the
// HashSHA256 header.
func SignBody(body []byte) string {
	return hex.EncodeToString(Hash(body))
}

// VerifyBody reports whether signature is the hex HMAC-SHA256 of body. The
// comparison is constant-time.
func VerifyBody(body []byte, signature string) bool {
	got, err := hex.DecodeString(signature)
	if err != nil || len(got) == 0 {
		return false
	}
	return hmac.Equal(got, Hash(body))
}
