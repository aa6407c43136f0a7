package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/forgo/festival/api/internal/database"
	"github.com/forgo/festival/api/internal/model"
)

// profileSelect returns the user projection without credentials or relations,
// with styles and artists resolved.
const profileSelect = `SELECT * OMIT id, password, token, friends, likedFestivals, memoriesFestivals FROM user`

// UserRepository handles user data access
type UserRepository struct {
	db database.Database
}

// NewUserRepository creates a new user repository
func NewUserRepository(db database.Database) *UserRepository {
	return &UserRepository{db: db}
}

// Create stores a new user. A unique index violation surfaces as database.ErrDuplicate.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		CREATE user CONTENT {
			username: $username,
			email: $email,
			password: $password,
			token: $token,
			firstname: IF $firstname IS NOT NULL THEN $firstname ELSE NONE END,
			lastname: IF $lastname IS NOT NULL THEN $lastname ELSE NONE END,
			phone: IF $phone IS NOT NULL THEN $phone ELSE NONE END,
			city: IF $city IS NOT NULL THEN $city ELSE NONE END,
			picture: IF $picture IS NOT NULL THEN $picture ELSE NONE END,
			birthdate: IF $birthdate IS NOT NULL THEN <datetime>$birthdate ELSE NONE END,
			friends: $friends,
			likedFestivals: $liked,
			memoriesFestivals: $memories,
			styles: $styles,
			artists: $artists,
			createdAt: time::now(),
			updatedAt: time::now()
		}
	`

	var birthdate interface{}
	if user.Birthdate != nil {
		birthdate = user.Birthdate.UTC().Format(time.RFC3339Nano)
	}

	vars := map[string]interface{}{
		"username":  user.Username,
		"email":     user.Email,
		"password":  user.Password,
		"token":     user.Token,
		"firstname": stringOrNone(user.Firstname),
		"lastname":  stringOrNone(user.Lastname),
		"phone":     stringOrNone(user.Phone),
		"city":      stringOrNone(user.City),
		"picture":   stringOrNone(user.Picture),
		"birthdate": birthdate,
		"friends":   recordIDs(model.TableUser, user.Friends),
		"liked":     recordIDs(model.TableFestival, user.LikedFestivals),
		"memories":  recordIDs(model.TableFestival, user.MemoriesFestivals),
		"styles":    recordIDs(model.TableStyle, user.Styles),
		"artists":   recordIDs(model.TableArtist, user.Artists),
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return fmt.Errorf("%w: username or email already exists", database.ErrDuplicate)
		}
		return err
	}

	rows := statementRecords(result, 0)
	if len(rows) == 0 {
		return errors.New("no result returned")
	}
	created, err := parseUser(rows[0])
	if err != nil {
		return err
	}

	user.ID = created.ID
	user.CreatedAt = created.CreatedAt
	user.UpdatedAt = created.UpdatedAt
	return nil
}

// GetByToken retrieves a user by token; nil when absent
func (r *UserRepository) GetByToken(ctx context.Context, token string) (*model.User, error) {
	return r.getOne(ctx, `SELECT * FROM user WHERE token = $token LIMIT 1`,
		map[string]interface{}{"token": token})
}

// GetByUsername retrieves a user by exact username; nil when absent
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.getOne(ctx, `SELECT * FROM user WHERE username = $username LIMIT 1`,
		map[string]interface{}{"username": username})
}

// GetByUsernameAndEmail retrieves the user holding both username and email; nil when absent
func (r *UserRepository) GetByUsernameAndEmail(ctx context.Context, username, email string) (*model.User, error) {
	return r.getOne(ctx, `SELECT * FROM user WHERE username = $username AND email = $email LIMIT 1`,
		map[string]interface{}{"username": username, "email": email})
}

// UsernameTaken reports whether a username exists, ignoring case
func (r *UserRepository) UsernameTaken(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, `SELECT id FROM user WHERE string::lowercase(username) = $value LIMIT 1`,
		strings.ToLower(username))
}

// EmailTaken reports whether an email exists, ignoring case
func (r *UserRepository) EmailTaken(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, `SELECT id FROM user WHERE string::lowercase(email) = $value LIMIT 1`,
		strings.ToLower(email))
}

// ListPublicExcept lists every user but the one holding token
func (r *UserRepository) ListPublicExcept(ctx context.Context, token string) ([]model.PublicUser, error) {
	query := `SELECT token, username, city, picture, createdAt FROM user WHERE token != $token ORDER BY createdAt`
	result, err := r.db.Query(ctx, query, map[string]interface{}{"token": token})
	if err != nil {
		return nil, err
	}
	return decodeAll[model.PublicUser](statementRecords(result, 0))
}

// ListFriendProfiles resolves the given user ids into friend profiles
func (r *UserRepository) ListFriendProfiles(ctx context.Context, ids []string) ([]model.FriendProfile, error) {
	if len(ids) == 0 {
		return []model.FriendProfile{}, nil
	}

	query := `
		SELECT username, city, picture, token, lastname, firstname, birthdate, styles, artists
		FROM $ids
		FETCH styles, artists
	`
	result, err := r.db.Query(ctx, query, map[string]interface{}{
		"ids": recordIDs(model.TableUser, ids),
	})
	if err != nil {
		return nil, err
	}
	return decodeAll[model.FriendProfile](statementRecords(result, 0))
}

// GetProfileByToken returns the public projection of the token's owner; nil when absent
func (r *UserRepository) GetProfileByToken(ctx context.Context, token string) (*model.Profile, error) {
	return r.getProfile(ctx, profileSelect+` WHERE token = $token LIMIT 1 FETCH styles, artists`,
		map[string]interface{}{"token": token})
}

// GetProfileByID returns the public projection of a user by id; nil when absent
func (r *UserRepository) GetProfileByID(ctx context.Context, id string) (*model.Profile, error) {
	return r.getProfile(ctx, profileSelect+` WHERE id = type::record($id) FETCH styles, artists`,
		map[string]interface{}{"id": model.RecordID(model.TableUser, id)})
}

// UpdateProfile applies changes to the token's owner and returns the new projection.
// Returns nil, nil when no user holds the token.
func (r *UserRepository) UpdateProfile(ctx context.Context, token string, changes model.ProfileChanges) (*model.Profile, error) {
	sets := []string{"updatedAt = time::now()"}
	vars := map[string]interface{}{"token": token}

	if changes.Email != nil {
		sets = append(sets, "email = $email")
		vars["email"] = *changes.Email
	}
	for _, f := range []struct {
		name  string
		patch model.Patch[string]
	}{
		{"firstname", changes.Firstname},
		{"lastname", changes.Lastname},
		{"phone", changes.Phone},
		{"city", changes.City},
		{"picture", changes.Picture},
	} {
		if !f.patch.Set {
			continue
		}
		if f.patch.Null {
			sets = append(sets, f.name+" = NONE")
			continue
		}
		sets = append(sets, f.name+" = $"+f.name)
		vars[f.name] = f.patch.Value
	}
	if changes.Birthdate.Set {
		if changes.Birthdate.Null {
			sets = append(sets, "birthdate = NONE")
		} else {
			sets = append(sets, "birthdate = <datetime>$birthdate")
			vars["birthdate"] = changes.Birthdate.Value.UTC().Format(time.RFC3339Nano)
		}
	}
	if changes.Styles.Present() {
		sets = append(sets, "styles = $styles")
		vars["styles"] = recordIDs(model.TableStyle, changes.Styles.Value)
	}
	if changes.Artists.Present() {
		sets = append(sets, "artists = $artists")
		vars["artists"] = recordIDs(model.TableArtist, changes.Artists.Value)
	}

	query := `UPDATE user SET ` + strings.Join(sets, ", ") + ` WHERE token = $token RETURN NONE;
		` + profileSelect + ` WHERE token = $token LIMIT 1 FETCH styles, artists;`

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, fmt.Errorf("%w: email already exists", database.ErrDuplicate)
		}
		return nil, err
	}

	rows := statementRecords(result, 1)
	if len(rows) == 0 {
		return nil, nil
	}
	var profile model.Profile
	if err := decodeRecord(rows[0], &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// AddFriendship links both users to each other in one transaction
func (r *UserRepository) AddFriendship(ctx context.Context, userID, friendID string) error {
	const stmt = `UPDATE type::record($self) SET friends = array::add(friends, type::record($other)), updatedAt = time::now()`
	return database.NewAtomicBatch().
		Add(stmt, map[string]interface{}{"self": userID, "other": friendID}).
		Add(stmt, map[string]interface{}{"self": friendID, "other": userID}).
		Execute(ctx, r.db)
}

// RemoveFriendship unlinks both users in one transaction. Removing a
// missing link is a no-op.
func (r *UserRepository) RemoveFriendship(ctx context.Context, userID, friendID string) error {
	const stmt = `UPDATE type::record($self) SET friends -= type::record($other), updatedAt = time::now()`
	return database.NewAtomicBatch().
		Add(stmt, map[string]interface{}{"self": userID, "other": friendID}).
		Add(stmt, map[string]interface{}{"self": friendID, "other": userID}).
		Execute(ctx, r.db)
}

// SetLiked adds or removes a festival like on both the user and the
// festival (token in nbLikes) in one transaction.
func (r *UserRepository) SetLiked(ctx context.Context, userID, token, festivalID string, liked bool) error {
	userStmt := `UPDATE type::record($user) SET likedFestivals -= type::record($festival), updatedAt = time::now()`
	festivalStmt := `UPDATE type::record($festival) SET nbLikes -= $token`
	if liked {
		userStmt = `UPDATE type::record($user) SET likedFestivals = array::add(likedFestivals, type::record($festival)), updatedAt = time::now()`
		festivalStmt = `UPDATE type::record($festival) SET nbLikes = array::add(nbLikes, $token)`
	}

	return database.NewAtomicBatch().
		Add(userStmt, map[string]interface{}{"user": userID, "festival": festivalID}).
		Add(festivalStmt, map[string]interface{}{"festival": festivalID, "token": token}).
		Execute(ctx, r.db)
}

// SetMemory adds or removes a festival from the user's memories
func (r *UserRepository) SetMemory(ctx context.Context, userID, festivalID string, kept bool) error {
	query := `UPDATE type::record($user) SET memoriesFestivals -= type::record($festival), updatedAt = time::now()`
	if kept {
		query = `UPDATE type::record($user) SET memoriesFestivals = array::add(memoriesFestivals, type::record($festival)), updatedAt = time::now()`
	}
	return r.db.Execute(ctx, query, map[string]interface{}{"user": userID, "festival": festivalID})
}

func (r *UserRepository) getOne(ctx context.Context, query string, vars map[string]interface{}) (*model.User, error) {
	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	data, ok := result.(map[string]interface{})
	if !ok {
		return nil, errors.New("unexpected result format")
	}
	return parseUser(data)
}

func (r *UserRepository) getProfile(ctx context.Context, query string, vars map[string]interface{}) (*model.Profile, error) {
	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	rows := statementRecords(result, 0)
	if len(rows) == 0 {
		return nil, nil
	}
	var profile model.Profile
	if err := decodeRecord(rows[0], &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *UserRepository) exists(ctx context.Context, query, value string) (bool, error) {
	result, err := r.db.Query(ctx, query, map[string]interface{}{"value": value})
	if err != nil {
		return false, err
	}
	return len(statementRecords(result, 0)) > 0, nil
}

// parseUser decodes a raw user record, keeping the password hash the json tags skip
func parseUser(data map[string]interface{}) (*model.User, error) {
	var user model.User
	if err := decodeRecord(data, &user); err != nil {
		return nil, err
	}
	if h, ok := data["password"].(string); ok {
		user.Password = h
	}
	return &user, nil
}
