package model

import (
	"strings"
	"time"

	"github.com/samber/lo"
)

// Record tables
const (
	TableUser     = "user"
	TableFestival = "festival"
	TableStyle    = "style"
	TableArtist   = "artist"
)

// User represents a user account
type User struct {
	ID                string     `json:"id"`
	Username          string     `json:"username"`
	Email             string     `json:"email"`
	Password          string     `json:"-"` // bcrypt hash, never exposed
	Token             string     `json:"token"`
	Firstname         *string    `json:"firstname,omitempty"`
	Lastname          *string    `json:"lastname,omitempty"`
	Phone             *string    `json:"phone,omitempty"`
	Birthdate         *time.Time `json:"birthdate,omitempty"`
	City              *string    `json:"city,omitempty"`
	Picture           *string    `json:"picture,omitempty"`
	Friends           []string   `json:"friends"`
	LikedFestivals    []string   `json:"likedFestivals"`
	MemoriesFestivals []string   `json:"memoriesFestivals"`
	Styles            []string   `json:"styles"`
	Artists           []string   `json:"artists"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

// HasFriend reports whether id is in the user's friend list
func (u *User) HasFriend(id string) bool {
	return lo.Contains(u.Friends, id)
}

// HasLiked reports whether the festival is in the user's liked list
func (u *User) HasLiked(festivalID string) bool {
	return lo.Contains(u.LikedFestivals, festivalID)
}

// HasMemory reports whether the festival is in the user's memories
func (u *User) HasMemory(festivalID string) bool {
	return lo.Contains(u.MemoriesFestivals, festivalID)
}

// PublicUser is the minimal listing entry returned by /getAllUsers
type PublicUser struct {
	Token    string  `json:"token"`
	Username string  `json:"username"`
	City     *string `json:"city"`
	Picture  *string `json:"picture"`
}

// FriendProfile is a friend as shown in the caller's friend list
type FriendProfile struct {
	Username  string     `json:"username"`
	City      *string    `json:"city"`
	Picture   *string    `json:"picture"`
	Token     string     `json:"token"`
	Lastname  *string    `json:"lastname"`
	Firstname *string    `json:"firstname"`
	Birthdate *time.Time `json:"birthdate"`
	Styles    []Style    `json:"styles"`
	Artists   []Artist   `json:"artists"`
}

// Profile is the user projection without credentials, relations or record id.
// Styles and artists are resolved.
type Profile struct {
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Firstname *string    `json:"firstname,omitempty"`
	Lastname  *string    `json:"lastname,omitempty"`
	Phone     *string    `json:"phone,omitempty"`
	Birthdate *time.Time `json:"birthdate,omitempty"`
	City      *string    `json:"city,omitempty"`
	Picture   *string    `json:"picture,omitempty"`
	Styles    []Style    `json:"styles"`
	Artists   []Artist   `json:"artists"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// SignupRequest carries the signup body. Optional fields are only stored
// when they hold a non-empty value.
type SignupRequest struct {
	Username          string   `json:"username"`
	Email             string   `json:"email"`
	Password          string   `json:"password"`
	Phone             string   `json:"phone,omitempty"`
	Firstname         string   `json:"firstname,omitempty"`
	Lastname          string   `json:"lastname,omitempty"`
	Birthdate         string   `json:"birthdate,omitempty"`
	City              string   `json:"city,omitempty"`
	Picture           string   `json:"picture,omitempty"`
	Styles            []string `json:"styles,omitempty"`
	Artists           []string `json:"artists,omitempty"`
	Friends           []string `json:"friends,omitempty"`
	LikedFestivals    []string `json:"likedFestivals,omitempty"`
	MemoriesFestivals []string `json:"memoriesFestivals,omitempty"`
}

// ProfileUpdate carries the /update body. Every field distinguishes an
// omitted key from an explicit null.
type ProfileUpdate struct {
	Token     string          `json:"token"`
	Email     Patch[string]   `json:"email"`
	Firstname Patch[string]   `json:"firstname"`
	Lastname  Patch[string]   `json:"lastname"`
	Phone     Patch[string]   `json:"phone"`
	City      Patch[string]   `json:"city"`
	Picture   Patch[string]   `json:"picture"`
	Birthdate Patch[string]   `json:"birthdate"`
	Styles    Patch[[]string] `json:"styles"`
	Artists   Patch[[]string] `json:"artists"`
}

// ParseBirthdate accepts a full RFC 3339 timestamp or a bare date
func ParseBirthdate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), nil
	}
	return time.Parse(time.DateOnly, s)
}

// RecordID returns id qualified with table, adding the prefix when missing
func RecordID(table, id string) string {
	id = strings.TrimSpace(id)
	if id == "" || strings.HasPrefix(id, table+":") {
		return id
	}
	return table + ":" + id
}

// ProfileChanges is a checked ProfileUpdate ready to be stored.
// Unset patches leave the stored value alone; null patches clear it.
type ProfileChanges struct {
	Email     *string
	Firstname Patch[string]
	Lastname  Patch[string]
	Phone     Patch[string]
	City      Patch[string]
	Picture   Patch[string]
	Birthdate Patch[time.Time]
	Styles    Patch[[]string]
	Artists   Patch[[]string]
}
