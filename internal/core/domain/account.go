package domain

import (
	"errors"
	"time"
)

// MaxPasswordBytes is the longest password bcrypt will hash.
const MaxPasswordBytes = 72

var ErrPasswordTooLong = errors.New("password exceeds 72 bytes")

type Account struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"`
	Username       string    `json:"username"`
	FullName       string    `json:"full_name"`
	Phone          string    `json:"phone"`
	Role           string    `json:"role"`
	PostOfficeCode string    `json:"post_office_code"`
	Address        string    `json:"address"`
	CreatedAt      time.Time `json:"created_at"`
}

type SignupInput struct {
	Email          string
	Password       string
	Username       string
	FullName       string
	Phone          string
	Role           string
	PostOfficeCode string
	Address        string
}

type Session struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}
