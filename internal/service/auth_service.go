package service

import (
	"errors"

	"github.com/evigdia/evigdia-backend/internal/common"
	"github.com/evigdia/evigdia-backend/internal/domain"
	"github.com/evigdia/evigdia-backend/internal/repository"
	"github.com/evigdia/evigdia-backend/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RegisterRequest is the signup payload
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Nickname string `json:"nickname"`
}

// LoginRequest is the login payload
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenPair is the issued access/refresh token pair
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthService handles registration, login and token issuance
type AuthService struct {
	users repository.UserRepository
	jwt   *jwt.Manager
}

// NewAuthService creates a new AuthService
func NewAuthService(users repository.UserRepository, jwtManager *jwt.Manager) *AuthService {
	return &AuthService{users: users, jwt: jwtManager}
}

// Register creates a new account
func (s *AuthService) Register(req *RegisterRequest) (*domain.User, error) {
	exists, err := s.users.ExistsByUsernameOrEmail(req.Username, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, common.ErrUserAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	nickname := req.Nickname
	if nickname == "" {
		nickname = req.Username
	}
	user := &domain.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hash),
		Nickname: nickname,
		Level:    1,
		Status:   "active",
	}
	if err := s.users.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and issues a token pair
func (s *AuthService) Login(req *LoginRequest) (*domain.User, *TokenPair, error) {
	user, err := s.users.FindByUsername(req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, common.ErrInvalidCredentials
		}
		return nil, nil, err
	}
	if user.Status != "active" {
		return nil, nil, common.ErrForbidden
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, nil, common.ErrInvalidCredentials
	}

	pair, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Refresh exchanges a valid refresh token for a new pair
func (s *AuthService) Refresh(refreshToken string) (*TokenPair, error) {
	claims, err := s.jwt.VerifyToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrExpiredToken) {
			return nil, common.ErrExpiredToken
		}
		return nil, common.ErrInvalidToken
	}

	user, err := s.users.FindByID(claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, err
	}
	if user.Status != "active" {
		return nil, common.ErrForbidden
	}
	return s.issueTokens(user)
}

// GetUser returns a user by ID
func (s *AuthService) GetUser(userID uint64) (*domain.User, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) issueTokens(user *domain.User) (*TokenPair, error) {
	access, err := s.jwt.GenerateToken(user.ID, user.Username, user.Nickname, user.Level)
	if err != nil {
		return nil, err
	}
	refresh, err := s.jwt.GenerateRefreshToken(user.ID, user.Username, user.Nickname, user.Level)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
