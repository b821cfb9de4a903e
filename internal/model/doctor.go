package model

import "github.com/google/uuid"

// Doctor is the authenticated clinician who owns patients and authors
// consultations.
type Doctor struct {
	Base
	Name         string `json:"name" db:"name"`
	Email        string `json:"email" db:"email"`
	PasswordHash string `json:"-" db:"password_hash"`
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	AccessToken string  `json:"access_token"`
	Doctor      *Doctor `json:"doctor"`
}

// TokenClaims carries the authenticated doctor identity extracted from a
// bearer token.
type TokenClaims struct {
	DoctorID uuid.UUID
	Email    string
}
