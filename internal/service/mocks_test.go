package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/forgo/festival/api/internal/database"
	"github.com/forgo/festival/api/internal/model"
)

// Mock implementations

type mockUserRepo struct {
	mu        sync.Mutex
	users     map[string]*model.User
	festivals *mockFestivalRepo

	createErr error
	getErr    error
	writeErr  error

	lastChanges *model.ProfileChanges
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		users:     make(map[string]*model.User),
		festivals: newMockFestivalRepo(),
	}
}

// seed stores a user directly, bypassing signup
func (m *mockUserRepo) seed(username, token string) *model.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := &model.User{
		ID:       "user:" + username,
		Username: username,
		Email:    username + "@x.com",
		Token:    token,
	}
	m.users[u.ID] = u
	return clone(u)
}

func (m *mockUserRepo) byID(id string) *model.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return clone(m.users[id])
}

func clone(u *model.User) *model.User {
	if u == nil {
		return nil
	}
	c := *u
	c.Friends = append([]string(nil), u.Friends...)
	c.LikedFestivals = append([]string(nil), u.LikedFestivals...)
	c.MemoriesFestivals = append([]string(nil), u.MemoriesFestivals...)
	return &c
}

func (m *mockUserRepo) find(match func(*model.User) bool) (*model.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if match(u) {
			return clone(u), nil
		}
	}
	return nil, nil
}

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == user.Username || u.Email == user.Email {
			return fmt.Errorf("%w: index", database.ErrDuplicate)
		}
	}
	user.ID = "user:" + user.Username
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	m.users[user.ID] = clone(user)
	return nil
}

func (m *mockUserRepo) GetByToken(ctx context.Context, token string) (*model.User, error) {
	return m.find(func(u *model.User) bool { return u.Token == token })
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return m.find(func(u *model.User) bool { return u.Username == username })
}

func (m *mockUserRepo) GetByUsernameAndEmail(ctx context.Context, username, email string) (*model.User, error) {
	return m.find(func(u *model.User) bool { return u.Username == username && u.Email == email })
}

func (m *mockUserRepo) UsernameTaken(ctx context.Context, username string) (bool, error) {
	u, err := m.find(func(u *model.User) bool { return strings.EqualFold(u.Username, username) })
	return u != nil, err
}

func (m *mockUserRepo) EmailTaken(ctx context.Context, email string) (bool, error) {
	u, err := m.find(func(u *model.User) bool { return strings.EqualFold(u.Email, email) })
	return u != nil, err
}

func (m *mockUserRepo) ListPublicExcept(ctx context.Context, token string) ([]model.PublicUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.PublicUser{}
	for _, u := range m.users {
		if u.Token != token {
			out = append(out, model.PublicUser{Token: u.Token, Username: u.Username, City: u.City, Picture: u.Picture})
		}
	}
	return out, nil
}

func (m *mockUserRepo) ListFriendProfiles(ctx context.Context, ids []string) ([]model.FriendProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.FriendProfile{}
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			out = append(out, model.FriendProfile{Username: u.Username, Token: u.Token, City: u.City})
		}
	}
	return out, nil
}

func profileOf(u *model.User) *model.Profile {
	if u == nil {
		return nil
	}
	return &model.Profile{
		Username:  u.Username,
		Email:     u.Email,
		Firstname: u.Firstname,
		Lastname:  u.Lastname,
		Phone:     u.Phone,
		Birthdate: u.Birthdate,
		City:      u.City,
		Picture:   u.Picture,
	}
}

func (m *mockUserRepo) GetProfileByToken(ctx context.Context, token string) (*model.Profile, error) {
	u, err := m.GetByToken(ctx, token)
	return profileOf(u), err
}

func (m *mockUserRepo) GetProfileByID(ctx context.Context, id string) (*model.Profile, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return profileOf(m.byID(model.RecordID(model.TableUser, id))), nil
}

func applyString(dst **string, p model.Patch[string]) {
	switch {
	case !p.Set:
	case p.Null:
		*dst = nil
	default:
		v := p.Value
		*dst = &v
	}
}

func (m *mockUserRepo) UpdateProfile(ctx context.Context, token string, changes model.ProfileChanges) (*model.Profile, error) {
	if m.writeErr != nil {
		return nil, m.writeErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastChanges = &changes
	for _, u := range m.users {
		if u.Token != token {
			continue
		}
		if changes.Email != nil {
			u.Email = *changes.Email
		}
		applyString(&u.Firstname, changes.Firstname)
		applyString(&u.Lastname, changes.Lastname)
		applyString(&u.Phone, changes.Phone)
		applyString(&u.City, changes.City)
		applyString(&u.Picture, changes.Picture)
		if changes.Birthdate.Set {
			if changes.Birthdate.Null {
				u.Birthdate = nil
			} else {
				b := changes.Birthdate.Value
				u.Birthdate = &b
			}
		}
		if changes.Styles.Present() {
			u.Styles = changes.Styles.Value
		}
		if changes.Artists.Present() {
			u.Artists = changes.Artists.Value
		}
		return profileOf(u), nil
	}
	return nil, nil
}

func (m *mockUserRepo) AddFriendship(ctx context.Context, userID, friendID string) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	a, b := m.users[userID], m.users[friendID]
	a.Friends = lo.Uniq(append(a.Friends, friendID))
	b.Friends = lo.Uniq(append(b.Friends, userID))
	return nil
}

func (m *mockUserRepo) RemoveFriendship(ctx context.Context, userID, friendID string) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	a, b := m.users[userID], m.users[friendID]
	a.Friends = lo.Without(a.Friends, friendID)
	b.Friends = lo.Without(b.Friends, userID)
	return nil
}

func (m *mockUserRepo) SetLiked(ctx context.Context, userID, token, festivalID string, liked bool) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.festivals.mu.Lock()
	defer m.festivals.mu.Unlock()

	u := m.users[userID]
	f := m.festivals.festivals[festivalID]
	if liked {
		u.LikedFestivals = lo.Uniq(append(u.LikedFestivals, festivalID))
		f.NbLikes = lo.Uniq(append(f.NbLikes, token))
	} else {
		u.LikedFestivals = lo.Without(u.LikedFestivals, festivalID)
		f.NbLikes = lo.Without(f.NbLikes, token)
	}
	return nil
}

func (m *mockUserRepo) SetMemory(ctx context.Context, userID, festivalID string, kept bool) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	u := m.users[userID]
	if kept {
		u.MemoriesFestivals = lo.Uniq(append(u.MemoriesFestivals, festivalID))
	} else {
		u.MemoriesFestivals = lo.Without(u.MemoriesFestivals, festivalID)
	}
	return nil
}

type mockFestivalRepo struct {
	mu        sync.Mutex
	festivals map[string]*model.Festival
	getErr    error
}

func newMockFestivalRepo() *mockFestivalRepo {
	return &mockFestivalRepo{festivals: make(map[string]*model.Festival)}
}

func (m *mockFestivalRepo) seed(id, name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.festivals[id] = &model.Festival{ID: id, Name: name, NbLikes: []string{}}
}

func (m *mockFestivalRepo) likes(id string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.festivals[id].NbLikes...)
}

func (m *mockFestivalRepo) GetByID(ctx context.Context, id string) (*model.Festival, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.festivals[id]
	if !ok {
		return nil, nil
	}
	c := *f
	return &c, nil
}

func (m *mockFestivalRepo) ListByIDs(ctx context.Context, ids []string) ([]model.Festival, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.Festival{}
	for _, id := range ids {
		if f, ok := m.festivals[id]; ok {
			out = append(out, *f)
		}
	}
	return out, nil
}
