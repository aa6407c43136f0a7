package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/forgo/festival/api/internal/database"
	"github.com/forgo/festival/api/internal/model"
)

// bcrypt cost factor
const bcryptCost = 10

// UserRepository defines the interface for user storage
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByToken(ctx context.Context, token string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByUsernameAndEmail(ctx context.Context, username, email string) (*model.User, error)
	UsernameTaken(ctx context.Context, username string) (bool, error)
	EmailTaken(ctx context.Context, email string) (bool, error)
	ListPublicExcept(ctx context.Context, token string) ([]model.PublicUser, error)
	ListFriendProfiles(ctx context.Context, ids []string) ([]model.FriendProfile, error)
	GetProfileByToken(ctx context.Context, token string) (*model.Profile, error)
	GetProfileByID(ctx context.Context, id string) (*model.Profile, error)
	UpdateProfile(ctx context.Context, token string, changes model.ProfileChanges) (*model.Profile, error)
	AddFriendship(ctx context.Context, userID, friendID string) error
	RemoveFriendship(ctx context.Context, userID, friendID string) error
	SetLiked(ctx context.Context, userID, token, festivalID string, liked bool) error
	SetMemory(ctx context.Context, userID, festivalID string, kept bool) error
}

// Authenticator resolves the caller from the credential sent in a request body
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*model.User, error)
}

// TokenIssuer mints the credential handed out at signup
type TokenIssuer interface {
	Issue() (string, error)
}

// OpaqueTokenAuth treats the token as a capability: it never expires and
// is looked up as-is in the user table.
type OpaqueTokenAuth struct {
	users UserRepository
}

// NewOpaqueTokenAuth creates the opaque token strategy
func NewOpaqueTokenAuth(users UserRepository) *OpaqueTokenAuth {
	return &OpaqueTokenAuth{users: users}
}

// Authenticate returns ErrUserNotFound when no user holds the token
func (a *OpaqueTokenAuth) Authenticate(ctx context.Context, token string) (*model.User, error) {
	if strings.TrimSpace(token) == "" {
		return nil, missingFieldsError("token")
	}
	user, err := a.users.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// Issue returns 32 random hex characters
func (a *OpaqueTokenAuth) Issue() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return strings.ReplaceAll(id.String(), "-", ""), nil
}

// AuthService handles signup, signin and availability checks
type AuthService struct {
	userRepo UserRepository
	issuer   TokenIssuer
}

// AuthServiceConfig holds configuration for the auth service
type AuthServiceConfig struct {
	UserRepo UserRepository
	Issuer   TokenIssuer
}

// NewAuthService creates a new auth service
func NewAuthService(cfg AuthServiceConfig) *AuthService {
	return &AuthService{
		userRepo: cfg.UserRepo,
		issuer:   cfg.Issuer,
	}
}

// SigninResult is returned on successful signin
type SigninResult struct {
	Username string
	Token    string
}

// Signup creates an account and returns its token
func (s *AuthService) Signup(ctx context.Context, req model.SignupRequest) (string, error) {
	if missing := missingFields(map[string]string{
		"username": req.Username,
		"email":    req.Email,
		"password": req.Password,
	}); len(missing) > 0 {
		return "", missingFieldsError(missing...)
	}

	existing, err := s.userRepo.GetByUsernameAndEmail(ctx, req.Username, req.Email)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", ErrUserAlreadyExists
	}

	user := &model.User{
		Username:          req.Username,
		Email:             req.Email,
		Firstname:         optional(req.Firstname),
		Lastname:          optional(req.Lastname),
		Phone:             optional(req.Phone),
		City:              optional(req.City),
		Picture:           optional(req.Picture),
		Friends:           req.Friends,
		LikedFestivals:    req.LikedFestivals,
		MemoriesFestivals: req.MemoriesFestivals,
		Styles:            req.Styles,
		Artists:           req.Artists,
	}
	if req.Birthdate != "" {
		born, err := model.ParseBirthdate(req.Birthdate)
		if err != nil {
			return "", fmt.Errorf("%w: %q", ErrInvalidBirthdate, req.Birthdate)
		}
		user.Birthdate = &born
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return "", err
	}
	user.Password = string(hash)

	token, err := s.issuer.Issue()
	if err != nil {
		return "", err
	}
	user.Token = token

	if err := s.userRepo.Create(ctx, user); err != nil {
		// Lost a race with a concurrent signup, or the username/email is
		// already held by another account
		if errors.Is(err, database.ErrDuplicate) {
			return "", ErrUserAlreadyExists
		}
		return "", err
	}

	return user.Token, nil
}

// Signin verifies the password. Unknown user and wrong password both
// return ErrInvalidCredentials.
func (s *AuthService) Signin(ctx context.Context, username, password string) (*SigninResult, error) {
	if missing := missingFields(map[string]string{
		"username": username,
		"password": password,
	}); len(missing) > 0 {
		return nil, missingFieldsError(missing...)
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &SigninResult{Username: user.Username, Token: user.Token}, nil
}

// UsernameTaken reports whether the username is used, ignoring case
func (s *AuthService) UsernameTaken(ctx context.Context, username string) (bool, error) {
	if strings.TrimSpace(username) == "" {
		return false, missingFieldsError("username")
	}
	return s.userRepo.UsernameTaken(ctx, strings.TrimSpace(username))
}

// EmailTaken reports whether the email is used, ignoring case
func (s *AuthService) EmailTaken(ctx context.Context, email string) (bool, error) {
	if strings.TrimSpace(email) == "" {
		return false, missingFieldsError("email")
	}
	return s.userRepo.EmailTaken(ctx, strings.TrimSpace(email))
}

// missingFields returns the names whose value is empty after trimming, sorted
func missingFields(fields map[string]string) []string {
	var missing []string
	for name, v := range fields {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	return missing
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
