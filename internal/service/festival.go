package service

import (
	"context"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/forgo/festival/api/internal/model"
)

// FestivalRepository defines the interface for festival storage
type FestivalRepository interface {
	GetByID(ctx context.Context, id string) (*model.Festival, error)
	ListByIDs(ctx context.Context, ids []string) ([]model.Festival, error)
}

// FestivalService handles the liked and memory festival lists
type FestivalService struct {
	userRepo     UserRepository
	festivalRepo FestivalRepository
	auth         Authenticator
}

// FestivalServiceConfig holds configuration for the festival service
type FestivalServiceConfig struct {
	UserRepo     UserRepository
	FestivalRepo FestivalRepository
	Auth         Authenticator
}

// NewFestivalService creates a new festival service
func NewFestivalService(cfg FestivalServiceConfig) *FestivalService {
	return &FestivalService{
		userRepo:     cfg.UserRepo,
		festivalRepo: cfg.FestivalRepo,
		auth:         cfg.Auth,
	}
}

// ToggleLiked adds the festival to the caller's likes (and the caller's
// token to the festival's nbLikes) or removes it from both. Returns the
// new liked list.
func (s *FestivalService) ToggleLiked(ctx context.Context, token, festivalID string) ([]string, error) {
	if strings.TrimSpace(festivalID) == "" {
		return nil, missingFieldsError("festivalId")
	}
	festivalID = model.RecordID(model.TableFestival, festivalID)

	var user *model.User
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		u, err := s.auth.Authenticate(gctx, token)
		if err != nil {
			return err
		}
		user = u
		return nil
	})
	g.Go(func() error {
		f, err := s.festivalRepo.GetByID(gctx, festivalID)
		if err != nil {
			return err
		}
		if f == nil {
			return ErrFestivalNotFound
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	liked := !user.HasLiked(festivalID)
	if err := s.userRepo.SetLiked(ctx, user.ID, user.Token, festivalID, liked); err != nil {
		return nil, err
	}

	return toggled(user.LikedFestivals, festivalID, liked), nil
}

// ToggleMemory adds or removes the festival from the caller's memories.
// Only the user document changes.
func (s *FestivalService) ToggleMemory(ctx context.Context, token, festivalID string) ([]string, error) {
	if strings.TrimSpace(festivalID) == "" {
		return nil, missingFieldsError("festivalId")
	}
	festivalID = model.RecordID(model.TableFestival, festivalID)

	user, err := s.auth.Authenticate(ctx, token)
	if err != nil {
		return nil, err
	}

	kept := !user.HasMemory(festivalID)
	if err := s.userRepo.SetMemory(ctx, user.ID, festivalID, kept); err != nil {
		return nil, err
	}

	return toggled(user.MemoriesFestivals, festivalID, kept), nil
}

// ListLiked resolves the caller's liked festivals
func (s *FestivalService) ListLiked(ctx context.Context, token string) ([]model.Festival, error) {
	user, err := s.auth.Authenticate(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.festivalRepo.ListByIDs(ctx, user.LikedFestivals)
}

// ListMemories resolves the caller's memory festivals
func (s *FestivalService) ListMemories(ctx context.Context, token string) ([]model.Festival, error) {
	user, err := s.auth.Authenticate(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.festivalRepo.ListByIDs(ctx, user.MemoriesFestivals)
}

// toggled returns list with id appended or removed, never nil
func toggled(list []string, id string, add bool) []string {
	out := lo.Without(list, id)
	if add {
		out = append(out, id)
	}
	if out == nil {
		out = []string{}
	}
	return out
}
