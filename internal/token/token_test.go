package token

import (
	"testing"
	"time"
)

func TestIssueAndValidate(t *testing.T) {
	svc := New([]byte("super-secret"), time.Hour)

	tok, err := svc.Issue("user-123")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	got, err := svc.Validate(tok)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if got != "user-123" {
		t.Errorf("subject = %q, want %q", got, "user-123")
	}
}

func TestValidateExpired(t *testing.T) {
	svc := New([]byte("secret"), -1*time.Second)

	tok, err := svc.Issue("u1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := svc.Validate(tok); err != ErrInvalidToken {
		t.Errorf("err = %v, want ErrInvalidToken", err)
	}
}

func TestValidateWrongSecret(t *testing.T) {
	tok, err := New([]byte("right-secret"), time.Hour).Issue("u2")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := New([]byte("wrong-secret"), time.Hour).Validate(tok); err != ErrInvalidToken {
		t.Errorf("err = %v, want ErrInvalidToken", err)
	}
}

func TestValidateMalformed(t *testing.T) {
	svc := New([]byte("k"), time.Hour)

	for _, tok := range []string{"", "garbage", "not.a.jwt"} {
		if _, err := svc.Validate(tok); err != ErrInvalidToken {
			t.Errorf("Validate(%q) err = %v, want ErrInvalidToken", tok, err)
		}
	}
}
