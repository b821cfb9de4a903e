package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/clinicsync/records-api/internal/model"
	"github.com/clinicsync/records-api/internal/repository"
	pkgauth "github.com/clinicsync/records-api/pkg/auth"
	apperrors "github.com/clinicsync/records-api/pkg/errors"
	"github.com/clinicsync/records-api/pkg/security"
)

type AuthService interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.TokenResponse, error)
	Login(ctx context.Context, email, password string) (*model.TokenResponse, error)
	CurrentDoctor(ctx context.Context, id uuid.UUID) (*model.Doctor, error)
	ValidateToken(token string) (*model.TokenClaims, error)
}

type Service struct {
	doctorRepo repository.DoctorRepository
	hasher     security.PasswordHasher
	jwtSvc     pkgauth.JWTService
}

func NewService(doctorRepo repository.DoctorRepository, hasher security.PasswordHasher, jwtSvc pkgauth.JWTService) *Service {
	return &Service{
		doctorRepo: doctorRepo,
		hasher:     hasher,
		jwtSvc:     jwtSvc,
	}
}

func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) (*model.TokenResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if existing, _ := s.doctorRepo.GetByEmail(ctx, email); existing != nil {
		return nil, apperrors.BadRequest("a doctor with this email already exists", nil)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.BadRequest("password does not meet requirements", err)
	}

	doctor := &model.Doctor{
		Base:         model.Base{ID: uuid.New()},
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: hash,
	}

	if err := s.doctorRepo.Create(ctx, doctor); err != nil {
		return nil, fmt.Errorf("failed to create doctor: %w", err)
	}

	return s.issueToken(doctor)
}

func (s *Service) Login(ctx context.Context, email, password string) (*model.TokenResponse, error) {
	doctor, err := s.doctorRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, apperrors.Unauthorized(err)
	}

	if err := s.hasher.Compare(doctor.PasswordHash, password); err != nil {
		return nil, apperrors.Unauthorized(err)
	}

	return s.issueToken(doctor)
}

func (s *Service) CurrentDoctor(ctx context.Context, id uuid.UUID) (*model.Doctor, error) {
	doctor, err := s.doctorRepo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.Unauthorized(err)
	}
	return doctor, nil
}

func (s *Service) ValidateToken(token string) (*model.TokenClaims, error) {
	claims, err := s.jwtSvc.Validate(token)
	if err != nil {
		return nil, apperrors.Unauthorized(err)
	}
	return claims, nil
}

func (s *Service) issueToken(doctor *model.Doctor) (*model.TokenResponse, error) {
	token, err := s.jwtSvc.Generate(doctor)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &model.TokenResponse{
		AccessToken: token,
		Doctor:      doctor,
	}, nil
}
