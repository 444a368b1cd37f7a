package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	userDatamodel "github.com/voltmover/crm/internal/core/datamodel/user"
)

// User is the authenticated caller placed on the request context.
type User struct {
	ID       int64              `json:"id"`
	Username string             `json:"username"`
	Email    string             `json:"email"`
	FullName string             `json:"full_name"`
	Role     userDatamodel.Role `json:"role"`
	IsActive bool               `json:"is_active"`
}

func (u *User) IsAdmin() bool {
	return u.Role == userDatamodel.RoleAdmin
}

// Tokens is the login response body.
type Tokens struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Claims carried by access tokens. The username doubles as the subject so
// the middleware can resolve the token back to a user record.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type ServiceAPI interface {
	Authenticate(dto LoginDTO) (Tokens, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
	ResolveUser(username string) (*User, error)
	HashPassword(password string) (string, error)
}

type RepositoryAPI interface {
	GetByUsername(username string) (*userDatamodel.User, error)
}

type TokenGeneratorAPI interface {
	GenerateAccessToken(username string) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

// JWTTokenGenerator signs and validates HS256 bearer tokens.
type JWTTokenGenerator struct {
	Secret         []byte
	AccessTokenTTL time.Duration
}

func NewJWTTokenGenerator(secret string, ttl time.Duration) *JWTTokenGenerator {
	return &JWTTokenGenerator{
		Secret:         []byte(secret),
		AccessTokenTTL: ttl,
	}
}

func (j *JWTTokenGenerator) GenerateAccessToken(username string) (string, error) {
	now := time.Now()
	claims := &Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(j.AccessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   username,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.Secret)
}

func (j *JWTTokenGenerator) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.Secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrUserInactive       = errors.New("user is inactive")
)

func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
