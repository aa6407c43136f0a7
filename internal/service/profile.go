package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/forgo/festival/api/internal/database"
	"github.com/forgo/festival/api/internal/model"
)

// ProfileService reads and updates user profiles
type ProfileService struct {
	userRepo UserRepository
}

// NewProfileService creates a new profile service
func NewProfileService(userRepo UserRepository) *ProfileService {
	return &ProfileService{userRepo: userRepo}
}

// GetProfile returns the projection of the token's owner
func (s *ProfileService) GetProfile(ctx context.Context, token string) (*model.Profile, error) {
	if strings.TrimSpace(token) == "" {
		return nil, missingFieldsError("token")
	}
	profile, err := s.userRepo.GetProfileByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrUserNotFound
	}
	return profile, nil
}

// GetUserByID returns the projection of a user by record id
func (s *ProfileService) GetUserByID(ctx context.Context, id string) (*model.Profile, error) {
	if strings.TrimSpace(id) == "" {
		return nil, missingFieldsError("id")
	}
	profile, err := s.userRepo.GetProfileByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrUserNotFound
	}
	return profile, nil
}

// UpdateProfile applies the keys present in the request. An explicit null
// clears a field, an omitted key leaves it unchanged. Email is only changed
// to a non-empty value; styles and artists only when not null.
func (s *ProfileService) UpdateProfile(ctx context.Context, req model.ProfileUpdate) (*model.Profile, error) {
	if strings.TrimSpace(req.Token) == "" {
		return nil, missingFieldsError("token")
	}

	changes, err := buildChanges(req)
	if err != nil {
		return nil, err
	}

	profile, err := s.userRepo.UpdateProfile(ctx, req.Token, changes)
	if err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	if profile == nil {
		return nil, ErrUserNotFound
	}
	return profile, nil
}

func buildChanges(req model.ProfileUpdate) (model.ProfileChanges, error) {
	changes := model.ProfileChanges{
		Firstname: req.Firstname,
		Lastname:  req.Lastname,
		Phone:     req.Phone,
		City:      req.City,
		Picture:   req.Picture,
	}

	if req.Email.Present() && strings.TrimSpace(req.Email.Value) != "" {
		email := strings.TrimSpace(req.Email.Value)
		changes.Email = &email
	}

	if req.Birthdate.Set {
		switch {
		case req.Birthdate.Null, strings.TrimSpace(req.Birthdate.Value) == "":
			changes.Birthdate = model.Null[time.Time]()
		default:
			born, err := model.ParseBirthdate(req.Birthdate.Value)
			if err != nil {
				return changes, fmt.Errorf("%w: %q", ErrInvalidBirthdate, req.Birthdate.Value)
			}
			changes.Birthdate = model.Some(born)
		}
	}

	if req.Styles.Present() {
		changes.Styles = req.Styles
	}
	if req.Artists.Present() {
		changes.Artists = req.Artists
	}

	return changes, nil
}
