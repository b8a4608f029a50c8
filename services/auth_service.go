package services

import (
	"context"
	"errors"

	"quizhub/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	// ErrInvalidCredentials deliberately covers both an unknown email and a
	// wrong password so callers cannot probe which one failed.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrUsernameTaken      = errors.New("username already taken")
)

type AuthService struct {
	db       *gorm.DB
	sessions *SessionStore
}

func NewAuthService(db *gorm.DB, sessions *SessionStore) *AuthService {
	return &AuthService{db: db, sessions: sessions}
}

// PublicUser is the subset of account fields safe to hand to clients.
type PublicUser struct {
	ID        uint    `json:"id"`
	Username  string  `json:"username"`
	AvatarURL *string `json:"avatar_url"`
}

// Authenticate verifies an email/password pair and, on success, opens a
// server-side session and returns its token alongside the public user fields.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*PublicUser, string, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.sessions.Create(ctx, user.ID, user.Username)
	if err != nil {
		return nil, "", err
	}

	return &PublicUser{
		ID:        user.ID,
		Username:  user.Username,
		AvatarURL: user.AvatarURL,
	}, token, nil
}

// Register creates a new account. The duplicate probe is a single
// email-or-username query, so the conflict error does not say which field
// collided.
func (s *AuthService) Register(username, email, password string) (*PublicUser, error) {
	var count int64
	if err := s.db.Model(&models.User{}).
		Where("email = ? OR username = ?", email, username).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}

	return &PublicUser{ID: user.ID, Username: user.Username}, nil
}

func (s *AuthService) UpdateAvatar(userID uint, avatarURL string) error {
	return s.db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("avatar_url", avatarURL).Error
}

// UpdateUsername renames the account after checking that no other account
// holds the name. When the caller has an active session its cached username
// is refreshed as well.
func (s *AuthService) UpdateUsername(ctx context.Context, userID uint, username, sessionToken string) error {
	var count int64
	if err := s.db.Model(&models.User{}).
		Where("username = ? AND id <> ?", username, userID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrUsernameTaken
	}

	if err := s.db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("username", username).Error; err != nil {
		return err
	}

	if sessionToken != "" {
		if err := s.sessions.SetUsername(ctx, sessionToken, username); err != nil && !errors.Is(err, ErrSessionNotFound) {
			return err
		}
	}
	return nil
}

func (s *AuthService) UpdatePassword(userID uint, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("password_hash", string(hash)).Error
}
