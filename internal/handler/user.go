package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/forgo/festival/api/internal/model"
	"github.com/forgo/festival/api/internal/service"
)

// AccountService is the signup and signin surface used by UserHandler
type AccountService interface {
	Signup(ctx context.Context, req model.SignupRequest) (string, error)
	Signin(ctx context.Context, username, password string) (*service.SigninResult, error)
	UsernameTaken(ctx context.Context, username string) (bool, error)
	EmailTaken(ctx context.Context, email string) (bool, error)
}

// FriendService manages the friend graph
type FriendService interface {
	AddFriend(ctx context.Context, token, friendToken string) error
	DeleteFriend(ctx context.Context, token, friendToken string) error
	ListUsers(ctx context.Context, token string) ([]model.PublicUser, error)
	ListFriends(ctx context.Context, token string) ([]model.FriendProfile, error)
}

// FestivalService toggles and lists liked and memory festivals
type FestivalService interface {
	ToggleLiked(ctx context.Context, token, festivalID string) ([]string, error)
	ToggleMemory(ctx context.Context, token, festivalID string) ([]string, error)
	ListLiked(ctx context.Context, token string) ([]model.Festival, error)
	ListMemories(ctx context.Context, token string) ([]model.Festival, error)
}

// ProfileService reads and patches profiles
type ProfileService interface {
	GetProfile(ctx context.Context, token string) (*model.Profile, error)
	GetUserByID(ctx context.Context, id string) (*model.Profile, error)
	UpdateProfile(ctx context.Context, req model.ProfileUpdate) (*model.Profile, error)
}

// PhotoService relays uploaded photos to the image host
type PhotoService interface {
	Upload(ctx context.Context, src io.Reader) (string, error)
}

// UserHandler serves the user routes
type UserHandler struct {
	accounts       AccountService
	friends        FriendService
	festivals      FestivalService
	profiles       ProfileService
	photos         PhotoService
	maxUploadBytes int64
}

// UserHandlerConfig holds the dependencies of UserHandler
type UserHandlerConfig struct {
	Accounts       AccountService
	Friends        FriendService
	Festivals      FestivalService
	Profiles       ProfileService
	Photos         PhotoService
	MaxUploadBytes int64
}

// NewUserHandler creates a new user handler
func NewUserHandler(cfg UserHandlerConfig) *UserHandler {
	maxUpload := cfg.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = 10 << 20
	}
	return &UserHandler{
		accounts:       cfg.Accounts,
		friends:        cfg.Friends,
		festivals:      cfg.Festivals,
		profiles:       cfg.Profiles,
		photos:         cfg.Photos,
		maxUploadBytes: maxUpload,
	}
}

// RegisterRoutes mounts the user routes under prefix ("" or "/users")
func (h *UserHandler) RegisterRoutes(mux *http.ServeMux, prefix string) {
	// Friends
	mux.HandleFunc("POST "+prefix+"/getAllUsers", h.GetAllUsers)
	mux.HandleFunc("POST "+prefix+"/getAllFriends", h.GetAllFriends)
	mux.HandleFunc("PUT "+prefix+"/addFriend", h.AddFriend)
	mux.HandleFunc("PUT "+prefix+"/deleteFriend", h.DeleteFriend)

	// Account
	mux.HandleFunc("POST "+prefix+"/signup", h.Signup)
	mux.HandleFunc("POST "+prefix+"/signin", h.Signin)
	mux.HandleFunc("POST "+prefix+"/checkUser", h.CheckUser)
	mux.HandleFunc("POST "+prefix+"/checkMail", h.CheckMail)

	// Festivals
	mux.HandleFunc("POST "+prefix+"/likeDislikeFestival", h.LikeDislikeFestival)
	mux.HandleFunc("POST "+prefix+"/findLiked", h.FindLiked)
	mux.HandleFunc("POST "+prefix+"/MemFest", h.MemFest)
	mux.HandleFunc("POST "+prefix+"/findMemories", h.FindMemories)

	// Profile
	mux.HandleFunc("POST "+prefix+"/iprofil", h.Profile)
	mux.HandleFunc("POST "+prefix+"/infoUser", h.InfoUser)
	mux.HandleFunc("PUT "+prefix+"/update", h.Update)
	mux.HandleFunc("POST "+prefix+"/photo", h.Photo)
}

// orEmpty keeps list payloads as [] rather than null
func orEmpty[T any](list []T) []T {
	if list == nil {
		return []T{}
	}
	return list
}
