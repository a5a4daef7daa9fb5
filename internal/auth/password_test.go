package auth

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("admin123", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "admin123" {
		t.Error("Hash should not equal the password")
	}
	if !IsHashed(hash) {
		t.Errorf("Expected a bcrypt hash, got %q", hash)
	}
}

func TestHashPassword_ShortPasswordsAllowed(t *testing.T) {
	if _, err := HashPassword("abc", bcrypt.MinCost); err != nil {
		t.Errorf("Expected short password to be accepted, got %v", err)
	}
}

func TestHashPassword_Empty(t *testing.T) {
	if _, err := HashPassword("", bcrypt.MinCost); err != ErrPasswordRequired {
		t.Errorf("Expected ErrPasswordRequired, got %v", err)
	}
}

func TestHashPassword_TooLong(t *testing.T) {
	if _, err := HashPassword(strings.Repeat("a", 73), bcrypt.MinCost); err != ErrPasswordTooLong {
		t.Errorf("Expected ErrPasswordTooLong, got %v", err)
	}
}

func TestHashPassword_InvalidCostFallsBack(t *testing.T) {
	hash, err := HashPassword("admin123", 0)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	cost, _ := bcrypt.Cost([]byte(hash))
	if cost != bcrypt.DefaultCost {
		t.Errorf("Expected cost %d, got %d", bcrypt.DefaultCost, cost)
	}
}

func TestCheckPassword_Hashed(t *testing.T) {
	hash, _ := HashPassword("admin123", bcrypt.MinCost)

	if err := CheckPassword("admin123", hash); err != nil {
		t.Errorf("Expected match, got %v", err)
	}
	if err := CheckPassword("wrong", hash); err != ErrInvalidPassword {
		t.Errorf("Expected ErrInvalidPassword, got %v", err)
	}
}

func TestCheckPassword_UnhashedStoredValue(t *testing.T) {
	if err := CheckPassword("admin123", "admin123"); err != ErrInvalidPassword {
		t.Errorf("Expected a plaintext stored value to be rejected, got %v", err)
	}
	if err := CheckPassword("", ""); err != ErrInvalidPassword {
		t.Errorf("Expected an empty stored value to be rejected, got %v", err)
	}
}

func TestCSRFKey(t *testing.T) {
	hexSecret := strings.Repeat("ab", 32)
	key, err := CSRFKey(hexSecret)
	if err != nil {
		t.Fatalf("CSRFKey failed: %v", err)
	}
	if len(key) != 32 || key[0] != 0xab {
		t.Errorf("Expected decoded hex key, got %x", key)
	}

	derived, _ := CSRFKey("not hex at all")
	again, _ := CSRFKey("not hex at all")
	if len(derived) != 32 || string(derived) != string(again) {
		t.Error("Expected a stable 32-byte key derived from a plain secret")
	}

	first, _ := CSRFKey("")
	second, _ := CSRFKey("")
	if len(first) != 32 || string(first) == string(second) {
		t.Error("Expected random 32-byte keys for an empty secret")
	}
}
