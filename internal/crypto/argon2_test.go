package crypto

import (
	"strings"
	"testing"
)

// testHasher uses small parameters to keep the suite fast.
func testHasher() PasswordHasher {
	return &argon2idHasher{argonTime: 1, argonMemory: 1024, argonThreads: 1, argonKeyLen: 32}
}

func TestHash_Format(t *testing.T) {
	encoded, err := testHasher().Hash("secret")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if !strings.HasPrefix(encoded, "$argon2id$v=19$m=1024,t=1,p=1$") {
		t.Fatalf("unexpected encoding: %s", encoded)
	}
}

func TestHash_SaltIsRandom(t *testing.T) {
	h := testHasher()

	a, err := h.Hash("same")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	b, err := h.Hash("same")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if a == b {
		t.Fatalf("expected different hashes for the same password")
	}
}

func TestVerify(t *testing.T) {
	h := testHasher()

	encoded, err := h.Hash("correct horse")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}

	ok, err := h.Verify("correct horse", encoded)
	if err != nil || !ok {
		t.Fatalf("Verify(correct) = %v, %v; want true, nil", ok, err)
	}

	ok, err = h.Verify("wrong", encoded)
	if err != nil || ok {
		t.Fatalf("Verify(wrong) = %v, %v; want false, nil", ok, err)
	}
}

func TestVerify_UsesEncodedParameters(t *testing.T) {
	encoded, err := testHasher().Hash("pw")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}

	// другой экземпляр с другими параметрами должен проверить старый хеш
	other := &argon2idHasher{argonTime: 2, argonMemory: 2048, argonThreads: 2, argonKeyLen: 16}
	ok, err := other.Verify("pw", encoded)
	if err != nil || !ok {
		t.Fatalf("Verify with different params = %v, %v", ok, err)
	}
}

func TestVerify_Malformed(t *testing.T) {
	h := testHasher()

	for _, encoded := range []string{
		"",
		"plain",
		"$bcrypt$v=19$m=1,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=18$m=1,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$broken$c2FsdA$a2V5",
		"$argon2id$v=19$m=1,t=1,p=1$!!!$a2V5",
		"$argon2id$v=19$m=1,t=1,p=1$c2FsdA$",
	} {
		if _, err := h.Verify("pw", encoded); err != ErrMalformedHash {
			t.Errorf("Verify(%q) error = %v, want ErrMalformedHash", encoded, err)
		}
	}
}
