package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func TestGenerateAndParse_Success(t *testing.T) {
	t.Parallel()

	for _, kind := range []TokenKind{KindAccess, KindRefresh} {
		tok, err := GenerateToken("user-123", kind, testSecret, time.Hour)
		if err != nil {
			t.Fatalf("GenerateToken(%s) error: %v", kind, err)
		}

		got, err := GetUserIDFromToken(tok, kind, testSecret)
		if err != nil {
			t.Fatalf("GetUserIDFromToken(%s) error: %v", kind, err)
		}
		if got != "user-123" {
			t.Fatalf("userID mismatch: got %q want %q", got, "user-123")
		}
	}
}

func TestGetUserIDFromToken_KindMismatch(t *testing.T) {
	t.Parallel()

	access, err := GenerateToken("u1", KindAccess, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}
	refresh, err := GenerateToken("u1", KindRefresh, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	if _, err := GetUserIDFromToken(access, KindRefresh, testSecret); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("access token accepted as refresh: %v", err)
	}
	if _, err := GetUserIDFromToken(refresh, KindAccess, testSecret); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("refresh token accepted as access: %v", err)
	}
}

func TestGetUserIDFromToken_Expired(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken("u1", KindAccess, testSecret, -1*time.Second)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	if _, err := GetUserIDFromToken(tok, KindAccess, testSecret); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken for expired token, got %v", err)
	}
}

func TestGetUserIDFromToken_ExpiryBoundary(t *testing.T) {
	t.Parallel()

	// Zero validity puts expires_at at (or before, after second truncation)
	// the verification instant; the token must already be rejected.
	tok, err := GenerateToken("u1", KindAccess, testSecret, 0)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}
	if _, err := GetUserIDFromToken(tok, KindAccess, testSecret); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("token valid at its own expires_at: %v", err)
	}

	// A comfortably future expiry is accepted.
	tok, err = GenerateToken("u1", KindAccess, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}
	if _, err := GetUserIDFromToken(tok, KindAccess, testSecret); err != nil {
		t.Fatalf("unexpired token rejected: %v", err)
	}
}

func TestGetUserIDFromToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken("u2", KindAccess, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	if _, err := GetUserIDFromToken(tok, KindAccess, []byte("another-secret-another-secret-32")); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestGetUserIDFromToken_TamperedSignature(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken("u3", KindAccess, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	parts := strings.Split(tok, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", tok)
	}

	// Flip one bit in every position of the signature segment; none of the
	// mutations may verify.
	sig := []byte(parts[2])
	for i := range sig {
		mutated := make([]byte, len(sig))
		copy(mutated, sig)
		mutated[i] ^= 0x01

		forged := parts[0] + "." + parts[1] + "." + string(mutated)
		if forged == tok {
			continue
		}
		if _, err := GetUserIDFromToken(forged, KindAccess, testSecret); !errors.Is(err, common.ErrInvalidToken) {
			t.Fatalf("tampered signature (bit %d) accepted: %v", i, err)
		}
	}
}

func TestGetUserIDFromToken_Malformed(t *testing.T) {
	t.Parallel()

	for _, tok := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		if _, err := GetUserIDFromToken(tok, KindAccess, testSecret); !errors.Is(err, common.ErrInvalidToken) {
			t.Fatalf("malformed token %q: expected common.ErrInvalidToken, got %v", tok, err)
		}
	}
}
