package utils_test

import (
	"testing"

	"golang.org/x/crypto/bcrypt"

	"speakup/utils"
)

func TestHashPassword(t *testing.T) {
	password := "SecurePass123!"

	hash, err := utils.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == password {
		t.Error("HashPassword() stored the plaintext password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		t.Errorf("generated hash does not verify against original password: %v", err)
	}
}

func TestCheckPasswordHash(t *testing.T) {
	password := "SecurePass123!"

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("Failed to generate password hash: %v", err)
	}

	tests := []struct {
		name     string
		password string
		hash     string
		want     bool
	}{
		{
			name:     "Correct password",
			password: password,
			hash:     string(hash),
			want:     true,
		},
		{
			name:     "Wrong password",
			password: "WrongPass123!",
			hash:     string(hash),
			want:     false,
		},
		{
			name:     "Empty password",
			password: "",
			hash:     string(hash),
			want:     false,
		},
		{
			name:     "Invalid hash",
			password: password,
			hash:     "not-a-bcrypt-hash",
			want:     false,
		},
		{
			name:     "Case-sensitive password",
			password: "securepass123!",
			hash:     string(hash),
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := utils.CheckPasswordHash(tt.password, tt.hash); got != tt.want {
				t.Errorf("CheckPasswordHash() = %v, want %v", got, tt.want)
			}
		})
	}
}
