package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/clinicsync/records-api/internal/model"
)

// JWTService issues and validates the bearer tokens that stand in for the
// doctor session.
type JWTService interface {
	Generate(doctor *model.Doctor) (string, error)
	Validate(token string) (*model.TokenClaims, error)
}

type jwtService struct {
	secret []byte
	expiry time.Duration
}

func NewJWTService(secret string, expiryHours int) JWTService {
	return &jwtService{
		secret: []byte(secret),
		expiry: time.Duration(expiryHours) * time.Hour,
	}
}

func (s *jwtService) Generate(doctor *model.Doctor) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"doctor_id": doctor.ID.String(),
		"email":     doctor.Email,
		"iat":       now.Unix(),
		"exp":       now.Add(s.expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (s *jwtService) Validate(tokenString string) (*model.TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	rawID, ok := claims["doctor_id"].(string)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}
	doctorID, err := uuid.Parse(rawID)
	if err != nil {
		return nil, fmt.Errorf("invalid doctor ID in token")
	}

	email, _ := claims["email"].(string)

	return &model.TokenClaims{
		DoctorID: doctorID,
		Email:    email,
	}, nil
}
