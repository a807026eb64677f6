package domain

import (
	"errors"
	"time"
)

var ErrUserExists = errors.New("user with email or username already exists")
var ErrUserNotFound = errors.New("user does not exist")
var ErrInvalidCredentials = errors.New("invalid user credentials")
var ErrUploadFailed = errors.New("failed to upload avatar")
var ErrTokenGeneration = errors.New("token generation failed")
var ErrUserCreation = errors.New("something went wrong while registering the user")

// ErrValidation is the marker for all bad-input failures. Concrete
// occurrences carry their own field message and match this sentinel
// through errors.Is.
var ErrValidation = errors.New("invalid input")

type validationError struct {
	msg string
}

func (e validationError) Error() string { return e.msg }

func (e validationError) Is(target error) bool { return target == ErrValidation }

// Validation builds a field-level validation error, e.g. "email is required".
func Validation(msg string) error {
	return validationError{msg: msg}
}

// User models a registered account. Secret fields never cross the JSON
// boundary: PasswordHash and RefreshToken are excluded from every response.
type User struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	FullName      string    `json:"fullName"`
	AvatarURL     string    `json:"avatarUrl"`
	CoverImageURL string    `json:"coverImageUrl,omitempty"`
	PasswordHash  string    `json:"-"`
	RefreshToken  string    `json:"-"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// TokenPair carries the credentials issued on login: a short-lived access
// token and the longer-lived refresh token stored on the user record.
// Exactly one refresh token is valid per user; issuing a new one
// invalidates the previous by overwrite.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
