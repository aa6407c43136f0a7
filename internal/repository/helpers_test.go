package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/forgo/festival/api/internal/database"
	"github.com/forgo/festival/api/internal/model"
)

func TestConvertSurrealID(t *testing.T) {
	assert.Equal(t, "user:abc", convertSurrealID("user:abc"))
	assert.Equal(t, "user:abc", convertSurrealID(models.RecordID{Table: "user", ID: "abc"}))
	assert.Equal(t, "festival:f1", convertSurrealID(&models.RecordID{Table: "festival", ID: "f1"}))
	assert.Equal(t, "style:rock", convertSurrealID(map[string]interface{}{
		"tb": "style",
		"id": map[string]interface{}{"String": "rock"},
	}))
}

func TestNormalizeValue_NestedRecords(t *testing.T) {
	when := time.Date(1994, 3, 12, 0, 0, 0, 0, time.UTC)
	raw := map[string]interface{}{
		"id":        models.RecordID{Table: "user", ID: "ana"},
		"birthdate": models.CustomDateTime{Time: when},
		"friends":   []interface{}{models.RecordID{Table: "user", ID: "bob"}},
		"styles": []interface{}{
			map[string]interface{}{"id": models.RecordID{Table: "style", ID: "rock"}, "name": "Rock"},
		},
	}

	out, ok := normalizeValue(raw).(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "user:ana", out["id"])
	assert.Equal(t, "1994-03-12T00:00:00Z", out["birthdate"])
	assert.Equal(t, []interface{}{"user:bob"}, out["friends"])

	styles := out["styles"].([]interface{})
	assert.Equal(t, "style:rock", styles[0].(map[string]interface{})["id"])
}

func TestDecodeRecord_FriendProfile(t *testing.T) {
	raw := map[string]interface{}{
		"username":  "bob",
		"token":     "tok-bob",
		"city":      "Lyon",
		"birthdate": models.CustomDateTime{Time: time.Date(2000, 1, 2, 0, 0, 0, 0, time.UTC)},
		"styles": []interface{}{
			map[string]interface{}{"id": models.RecordID{Table: "style", ID: "jazz"}, "name": "Jazz"},
		},
		"artists": []interface{}{},
	}

	var fp model.FriendProfile
	require.NoError(t, decodeRecord(raw, &fp))
	assert.Equal(t, "bob", fp.Username)
	require.NotNil(t, fp.City)
	assert.Equal(t, "Lyon", *fp.City)
	require.NotNil(t, fp.Birthdate)
	assert.Equal(t, 2000, fp.Birthdate.Year())
	require.Len(t, fp.Styles, 1)
	assert.Equal(t, model.Style{ID: "style:jazz", Name: "Jazz"}, fp.Styles[0])
	assert.Nil(t, fp.Firstname)
}

func TestParseUser_KeepsPasswordHash(t *testing.T) {
	u, err := parseUser(map[string]interface{}{
		"id":       models.RecordID{Table: "user", ID: "ana"},
		"username": "ana",
		"password": "$2a$10$hash",
		"token":    "t1",
	})
	require.NoError(t, err)
	assert.Equal(t, "user:ana", u.ID)
	assert.Equal(t, "$2a$10$hash", u.Password)
}

func TestStatementRecords(t *testing.T) {
	results := []interface{}{
		map[string]interface{}{"status": "OK", "result": nil},
		map[string]interface{}{"status": "OK", "result": []interface{}{
			map[string]interface{}{"username": "ana"},
		}},
	}

	assert.Empty(t, statementRecords(results, 0))
	assert.Len(t, statementRecords(results, 1), 1)
	assert.Nil(t, statementRecords(results, 2))
}

func TestRecordIDs(t *testing.T) {
	ids := recordIDs(model.TableFestival, []string{"festival:a", "b", " "})
	require.Len(t, ids, 2)
	assert.Equal(t, models.RecordID{Table: "festival", ID: "a"}, ids[0])
	assert.Equal(t, models.RecordID{Table: "festival", ID: "b"}, ids[1])

	assert.NotNil(t, recordIDs(model.TableUser, nil))
}

// fakeDB records queries and replays canned results
type fakeDB struct {
	queries []string
	vars    []map[string]interface{}
	results []interface{}
	err     error
}

func (f *fakeDB) Connect(ctx context.Context) error { return nil }
func (f *fakeDB) Close() error                      { return nil }
func (f *fakeDB) Ping(ctx context.Context) error    { return nil }

func (f *fakeDB) Query(ctx context.Context, query string, vars map[string]interface{}) ([]interface{}, error) {
	f.queries = append(f.queries, query)
	f.vars = append(f.vars, vars)
	return f.results, f.err
}

func (f *fakeDB) QueryOne(ctx context.Context, query string, vars map[string]interface{}) (interface{}, error) {
	results, err := f.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}
	rows := statementRecords(results, 0)
	if len(rows) == 0 {
		return nil, database.ErrNotFound
	}
	return rows[0], nil
}

func (f *fakeDB) Execute(ctx context.Context, query string, vars map[string]interface{}) error {
	_, err := f.Query(ctx, query, vars)
	return err
}

func TestUpdateProfile_BuildsOnlyPresentFields(t *testing.T) {
	db := &fakeDB{results: []interface{}{
		map[string]interface{}{"status": "OK", "result": []interface{}{}},
		map[string]interface{}{"status": "OK", "result": []interface{}{
			map[string]interface{}{"username": "ana", "email": "a@x.com"},
		}},
	}}
	repo := NewUserRepository(db)

	profile, err := repo.UpdateProfile(context.Background(), "t1", model.ProfileChanges{
		City:      model.Some("Nantes"),
		Birthdate: model.Null[time.Time](),
	})
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, "ana", profile.Username)

	require.Len(t, db.queries, 1)
	q := db.queries[0]
	assert.Contains(t, q, "city = $city")
	assert.Contains(t, q, "birthdate = NONE")
	assert.NotContains(t, q, "firstname")
	assert.NotContains(t, q, "email =")
	assert.Equal(t, "Nantes", db.vars[0]["city"])
}

func TestUpdateProfile_UnknownToken(t *testing.T) {
	db := &fakeDB{results: []interface{}{
		map[string]interface{}{"status": "OK", "result": []interface{}{}},
		map[string]interface{}{"status": "OK", "result": []interface{}{}},
	}}

	profile, err := NewUserRepository(db).UpdateProfile(context.Background(), "nope", model.ProfileChanges{})
	require.NoError(t, err)
	assert.Nil(t, profile)
}

func TestSetLiked_SingleTransaction(t *testing.T) {
	db := &fakeDB{}
	repo := NewUserRepository(db)

	require.NoError(t, repo.SetLiked(context.Background(), "user:ana", "t1", "festival:f1", true))
	require.Len(t, db.queries, 1)
	assert.Contains(t, db.queries[0], "BEGIN TRANSACTION")
	assert.Contains(t, db.queries[0], "array::add(likedFestivals")
	assert.Contains(t, db.queries[0], "array::add(nbLikes")

	require.NoError(t, repo.SetLiked(context.Background(), "user:ana", "t1", "festival:f1", false))
	assert.Contains(t, db.queries[1], "likedFestivals -=")
	assert.Contains(t, db.queries[1], "nbLikes -=")
}

func TestGetByToken_NotFoundIsNil(t *testing.T) {
	db := &fakeDB{results: []interface{}{
		map[string]interface{}{"status": "OK", "result": []interface{}{}},
	}}

	u, err := NewUserRepository(db).GetByToken(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, u)
}
