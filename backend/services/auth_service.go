package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"pylearn/backend/models"

	"github.com/gosimple/slug"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	DB *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{DB: db}
}

type RegisterInput struct {
	Email       string `json:"email"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
}

// Register creates a password account with zeroed stats. Duplicate checks run
// up front; a concurrent registration that slips past them loses on the unique
// index and is mapped back to the same duplicate errors.
func (s *AuthService) Register(in RegisterInput) (*models.User, error) {
	var count int64
	if err := s.DB.Model(&models.User{}).Where("email = ?", in.Email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateEmail
	}

	if err := s.DB.Model(&models.User{}).Where("username = ?", in.Username).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateUsername
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Email:        in.Email,
		Username:     in.Username,
		DisplayName:  in.DisplayName,
		PasswordHash: string(hashed),
	}
	if err := s.DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, s.duplicateError(in.Email)
		}
		return nil, err
	}
	return &user, nil
}

// duplicateError decides which unique index a concurrent insert collided on.
func (s *AuthService) duplicateError(email string) error {
	var count int64
	s.DB.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		return ErrDuplicateEmail
	}
	return ErrDuplicateUsername
}

// Login authenticates an email/password pair. OAuth-only accounts have no
// password hash and always fail here.
func (s *AuthService) Login(email, password string) (*models.User, error) {
	var user models.User
	err := s.DB.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if user.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	user.LastLogin = &now
	if err := s.DB.Save(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// OAuthLogin resolves a provider identity into a user, creating the account
// on first login. Existing users get last_login refreshed and the avatar
// backfilled only if they have none.
func (s *AuthService) OAuthLogin(ident *Identity) (*models.User, error) {
	if ident == nil || ident.Email == "" {
		return nil, ErrOAuthExchangeFailed
	}

	var user models.User
	err := s.DB.Where("email = ?", ident.Email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		username, err := s.uniqueUsername(ident)
		if err != nil {
			return nil, err
		}

		user = models.User{
			Email:         ident.Email,
			Username:      username,
			DisplayName:   ident.Name,
			Avatar:        ident.Picture,
			OAuthProvider: ident.Provider,
			OAuthID:       ident.ID,
		}
		if err := s.DB.Create(&user).Error; err != nil {
			return nil, err
		}
		return &user, nil
	}
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user.LastLogin = &now
	if user.Avatar == "" && ident.Picture != "" {
		user.Avatar = ident.Picture
	}
	if err := s.DB.Save(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// uniqueUsername synthesizes a username from the provider login or the email
// local part, appending a numeric suffix until it is free.
func (s *AuthService) uniqueUsername(ident *Identity) (string, error) {
	base := ident.Username
	if base == "" {
		base = strings.SplitN(ident.Email, "@", 2)[0]
	}
	base = slug.Make(base)
	if base == "" {
		base = "user"
	}

	username := base
	for counter := 1; ; counter++ {
		var count int64
		if err := s.DB.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return username, nil
		}
		username = fmt.Sprintf("%s%d", base, counter)
	}
}
