package auth

import (
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// Service performs authentication business logic.
type Service struct {
	userRepo       RepositoryAPI
	tokenGenerator TokenGeneratorAPI
	bcryptCost     int
	logger         *slog.Logger
}

func NewService(userRepo RepositoryAPI, tokenGen TokenGeneratorAPI, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		userRepo:       userRepo,
		tokenGenerator: tokenGen,
		bcryptCost:     bcryptCost,
		logger:         logger,
	}
}

// Authenticate verifies credentials and issues a bearer token.
func (s *Service) Authenticate(dto LoginDTO) (Tokens, error) {
	if err := dto.Validate(); err != nil {
		return Tokens{}, err
	}

	record, err := s.userRepo.GetByUsername(dto.Username)
	if err != nil {
		s.logger.Warn("login for unknown username", "username", dto.Username)
		return Tokens{}, ErrInvalidCredentials
	}

	if err := VerifyPassword(record.PasswordHash, dto.Password); err != nil {
		s.logger.Warn("login with wrong password", "username", dto.Username)
		return Tokens{}, ErrInvalidCredentials
	}

	if !record.IsActive {
		return Tokens{}, ErrUserInactive
	}

	accessToken, err := s.tokenGenerator.GenerateAccessToken(record.Username)
	if err != nil {
		s.logger.Error("failed to sign access token", "error", err, "username", dto.Username)
		return Tokens{}, err
	}

	return Tokens{
		AccessToken: accessToken,
		TokenType:   "bearer",
	}, nil
}

// ValidateAccessToken validates a bearer token and returns its claims.
func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokenGenerator.ValidateToken(tokenString)
}

// ResolveUser loads the user a validated token refers to. Inactive users
// are rejected here so every protected endpoint shares the gate.
func (s *Service) ResolveUser(username string) (*User, error) {
	record, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if !record.IsActive {
		return nil, ErrUserInactive
	}

	return &User{
		ID:       record.ID,
		Username: record.Username,
		Email:    record.Email,
		FullName: record.FullName,
		Role:     record.Role,
		IsActive: record.IsActive,
	}, nil
}

// HashPassword creates a bcrypt hash of the password.
func (s *Service) HashPassword(password string) (string, error) {
	return HashPassword(password, s.bcryptCost)
}
