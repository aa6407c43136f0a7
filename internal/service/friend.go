package service

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/forgo/festival/api/internal/model"
)

// FriendService manages the symmetric friend graph
type FriendService struct {
	userRepo UserRepository
	auth     Authenticator
}

// FriendServiceConfig holds configuration for the friend service
type FriendServiceConfig struct {
	UserRepo UserRepository
	Auth     Authenticator
}

// NewFriendService creates a new friend service
func NewFriendService(cfg FriendServiceConfig) *FriendService {
	return &FriendService{
		userRepo: cfg.UserRepo,
		auth:     cfg.Auth,
	}
}

// resolvePair looks up the caller and the friend concurrently
func (s *FriendService) resolvePair(ctx context.Context, token, friendToken string) (*model.User, *model.User, error) {
	if strings.TrimSpace(token) == "" || strings.TrimSpace(friendToken) == "" {
		return nil, nil, ErrTokensRequired
	}

	var user, friend *model.User
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		f, err := s.userRepo.GetByToken(gctx, friendToken)
		if err != nil {
			return err
		}
		if f == nil {
			return ErrFriendNotFound
		}
		friend = f
		return nil
	})
	g.Go(func() error {
		u, err := s.auth.Authenticate(gctx, token)
		if err != nil {
			return err
		}
		user = u
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return user, friend, nil
}

// AddFriend links both users. Fails with ErrAlreadyFriends when both sides
// already list each other; a one-sided link is repaired.
func (s *FriendService) AddFriend(ctx context.Context, token, friendToken string) error {
	if token != "" && token == friendToken {
		return ErrCannotFriendSelf
	}

	user, friend, err := s.resolvePair(ctx, token, friendToken)
	if err != nil {
		return err
	}

	if user.HasFriend(friend.ID) && friend.HasFriend(user.ID) {
		return ErrAlreadyFriends
	}

	return s.userRepo.AddFriendship(ctx, user.ID, friend.ID)
}

// DeleteFriend unlinks both users; removing a non-friend is not an error
func (s *FriendService) DeleteFriend(ctx context.Context, token, friendToken string) error {
	user, friend, err := s.resolvePair(ctx, token, friendToken)
	if err != nil {
		return err
	}

	return s.userRepo.RemoveFriendship(ctx, user.ID, friend.ID)
}

// ListUsers returns every other user's public listing
func (s *FriendService) ListUsers(ctx context.Context, token string) ([]model.PublicUser, error) {
	if strings.TrimSpace(token) == "" {
		return nil, ErrTokensRequired
	}
	return s.userRepo.ListPublicExcept(ctx, token)
}

// ListFriends returns the caller's friends with styles and artists resolved
func (s *FriendService) ListFriends(ctx context.Context, token string) ([]model.FriendProfile, error) {
	user, err := s.auth.Authenticate(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.userRepo.ListFriendProfiles(ctx, user.Friends)
}
