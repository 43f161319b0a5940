package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"lostfound/models"
	"lostfound/storage"
	"lostfound/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	cache          *storage.Cache
	jwtSecret      string
	jwtExpiration  time.Duration
	adminCode      string
	allowedDomains []string
}

func NewAuthService(cache *storage.Cache, jwtSecret string, jwtExpiration time.Duration, adminCode string, allowedDomains []string) *AuthService {
	return &AuthService{
		cache:          cache,
		jwtSecret:      jwtSecret,
		jwtExpiration:  jwtExpiration,
		adminCode:      adminCode,
		allowedDomains: allowedDomains,
	}
}

type RegisterInput struct {
	FullName        string `json:"fullName"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Register creates an account and returns a session token, so a
// successful registration is also a login.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, string, bool, error) {
	fullName := strings.TrimSpace(in.FullName)
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if fullName == "" || email == "" || in.Phone == "" || in.Password == "" || in.ConfirmPassword == "" {
		return nil, "", false, fmt.Errorf("please fill in all fields")
	}
	if err := utils.ValidateEmail(email, s.allowedDomains); err != nil {
		return nil, "", false, err
	}
	if in.Password != in.ConfirmPassword {
		return nil, "", false, fmt.Errorf("passwords do not match")
	}
	if err := utils.ValidatePassword(in.Password); err != nil {
		return nil, "", false, err
	}
	if err := utils.ValidatePhone(in.Phone); err != nil {
		return nil, "", false, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", false, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:        uuid.NewString(),
		FullName:  fullName,
		Email:     email,
		Phone:     in.Phone,
		Password:  string(hash),
		CreatedAt: time.Now().UTC(),
	}

	var offline bool
	for attempt := 0; attempt < casRetries; attempt++ {
		var users []models.User
		version, err := s.cache.Read(storage.CollectionUsers, &users)
		if err != nil {
			return nil, "", false, err
		}

		for _, u := range users {
			if u.Email == email {
				return nil, "", false, ErrEmailTaken
			}
		}

		users = append(users, user)

		offline, err = s.cache.Write(ctx, storage.CollectionUsers, users, version)
		if errors.Is(err, storage.ErrConflict) {
			continue
		}
		if err != nil {
			return nil, "", false, err
		}

		token, err := utils.GenerateJWTToken(user.ID, user.Email, user.FullName, utils.RoleUser, s.jwtSecret, s.jwtExpiration)
		if err != nil {
			return nil, "", false, fmt.Errorf("failed to issue token: %w", err)
		}
		return &user, token, offline, nil
	}

	return nil, "", false, storage.ErrConflict
}

// Login checks credentials and issues a session token.
func (s *AuthService) Login(email, password string) (*models.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", ErrInvalidCredentials
	}

	var users []models.User
	if _, err := s.cache.Read(storage.CollectionUsers, &users); err != nil {
		return nil, "", err
	}

	for i := range users {
		if users[i].Email != email {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(users[i].Password), []byte(password)) != nil {
			return nil, "", ErrInvalidCredentials
		}

		token, err := utils.GenerateJWTToken(users[i].ID, users[i].Email, users[i].FullName, utils.RoleUser, s.jwtSecret, s.jwtExpiration)
		if err != nil {
			return nil, "", fmt.Errorf("failed to issue token: %w", err)
		}

		user := users[i]
		return &user, token, nil
	}

	return nil, "", ErrInvalidCredentials
}

// AdminLogin gates the admin surface behind the shared access code.
func (s *AuthService) AdminLogin(code string) (string, error) {
	if subtle.ConstantTimeCompare([]byte(code), []byte(s.adminCode)) != 1 {
		return "", ErrInvalidAdminCode
	}

	token, err := utils.GenerateJWTToken("admin", "", "Admin", utils.RoleAdmin, s.jwtSecret, s.jwtExpiration)
	if err != nil {
		return "", fmt.Errorf("failed to issue admin token: %w", err)
	}
	return token, nil
}

// GetUser loads a full user record by id.
func (s *AuthService) GetUser(id string) (*models.User, error) {
	var users []models.User
	if _, err := s.cache.Read(storage.CollectionUsers, &users); err != nil {
		return nil, err
	}

	for i := range users {
		if users[i].ID == id {
			user := users[i]
			return &user, nil
		}
	}
	return nil, ErrNotFound
}
