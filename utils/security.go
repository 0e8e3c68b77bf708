package utils

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"speakup/models"
)

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// RegisterUser hashes the password and inserts the new user in a single
// statement. A taken username or email surfaces as ErrDuplicate after the
// failed write; no partial user is ever created.
func (s *Store) RegisterUser(ctx context.Context, username, password, email, firstName, lastName string) (models.User, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return models.User{}, fmt.Errorf("hashing password: %w", err)
	}

	u := models.User{
		Username:     username,
		PasswordHash: hash,
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
	}

	if err := s.insertUser(ctx, u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

// Authenticate looks the user up by username and verifies the password
// against the stored bcrypt hash. Either a missing user or a wrong password
// yields ErrInvalidCredentials, so callers cannot tell which field was
// wrong.
func (s *Store) Authenticate(ctx context.Context, username, password string) (models.User, error) {
	u, err := s.GetUser(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, err
	}

	if !CheckPasswordHash(password, u.PasswordHash) {
		return models.User{}, ErrInvalidCredentials
	}
	return u, nil
}
