package token

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func TestIssueAndVerify(t *testing.T) {
	codec := NewCodec([]byte("test-secret"))

	emails := []string{
		"alice@example.com",
		"bob@example.net",
		"UPPER@Example.Com",
	}

	for _, email := range emails {
		t.Run(email, func(t *testing.T) {
			credential, err := codec.Issue(email)
			if err != nil {
				t.Fatalf("Issue() error = %+v", err)
			}

			got, err := codec.Verify(credential)
			if err != nil {
				t.Fatalf("Verify() error = %+v", err)
			}

			if got != email {
				t.Errorf("Verify() = %q, want %q", got, email)
			}
		})
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	codec := NewCodec([]byte("test-secret"))
	other := NewCodec([]byte("other-secret"))

	credential, err := codec.Issue("alice@example.com")
	if err != nil {
		t.Fatalf("Issue() error = %+v", err)
	}

	if _, err := other.Verify(credential); !errors.Is(err, ErrInvalidCredential) {
		t.Errorf("Verify() error = %v, want ErrInvalidCredential", err)
	}
}

func TestVerifyTamperedPayload(t *testing.T) {
	codec := NewCodec([]byte("test-secret"))

	credential, err := codec.Issue("alice@example.com")
	if err != nil {
		t.Fatalf("Issue() error = %+v", err)
	}

	parts := strings.Split(credential, ".")
	if len(parts) != 3 {
		t.Fatalf("expected a compact token with 3 parts, got %d", len(parts))
	}

	forged := base64.RawURLEncoding.EncodeToString([]byte(`{"email":"mallory@example.com"}`))
	tampered := strings.Join([]string{parts[0], forged, parts[2]}, ".")

	if _, err := codec.Verify(tampered); !errors.Is(err, ErrInvalidCredential) {
		t.Errorf("Verify() error = %v, want ErrInvalidCredential", err)
	}
}

func TestVerifyMalformed(t *testing.T) {
	codec := NewCodec([]byte("test-secret"))

	tests := []struct {
		name       string
		credential string
	}{
		{"empty", ""},
		{"garbage", "not-a-token"},
		{"truncated", "eyJhbGciOiJIUzI1NiJ9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := codec.Verify(tt.credential); !errors.Is(err, ErrInvalidCredential) {
				t.Errorf("Verify(%q) error = %v, want ErrInvalidCredential", tt.credential, err)
			}
		})
	}
}

func TestVerifyMissingEmailClaim(t *testing.T) {
	codec := NewCodec([]byte("test-secret"))

	// A structurally valid token signed with the right secret but
	// carrying no email claim must still be rejected.
	credential, err := codec.Issue("")
	if err != nil {
		t.Fatalf("Issue() error = %+v", err)
	}

	if _, err := codec.Verify(credential); !errors.Is(err, ErrInvalidCredential) {
		t.Errorf("Verify() error = %v, want ErrInvalidCredential", err)
	}
}
