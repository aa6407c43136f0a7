package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/forgo/festival/api/internal/database"
	"github.com/forgo/festival/api/internal/model"
)

func decodeUpdate(t *testing.T, body string) model.ProfileUpdate {
	t.Helper()
	var req model.ProfileUpdate
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("decode %s: %v", body, err)
	}
	return req
}

func TestUpdateProfile_BirthdateNullClearsOmittedKeeps(t *testing.T) {
	ctx := context.Background()
	repo := newMockUserRepo()
	ana := repo.seed("ana", "t1")
	born := time.Date(1994, 3, 12, 0, 0, 0, 0, time.UTC)
	repo.users[ana.ID].Birthdate = &born
	svc := NewProfileService(repo)

	p, err := svc.UpdateProfile(ctx, decodeUpdate(t, `{"token":"t1","city":"Lyon"}`))
	if err != nil {
		t.Fatalf("UpdateProfile(omitted) error = %v", err)
	}
	if p.Birthdate == nil || !p.Birthdate.Equal(born) {
		t.Errorf("omitted birthdate: got %v, want %v", p.Birthdate, born)
	}
	if p.City == nil || *p.City != "Lyon" {
		t.Errorf("City = %v, want Lyon", p.City)
	}

	p, err = svc.UpdateProfile(ctx, decodeUpdate(t, `{"token":"t1","birthdate":null}`))
	if err != nil {
		t.Fatalf("UpdateProfile(null) error = %v", err)
	}
	if p.Birthdate != nil {
		t.Errorf("null birthdate: got %v, want cleared", p.Birthdate)
	}
	if p.City == nil {
		t.Error("City should be unchanged")
	}
}

func TestUpdateProfile_FieldRules(t *testing.T) {
	repo := newMockUserRepo()
	repo.seed("ana", "t1")
	svc := NewProfileService(repo)

	_, err := svc.UpdateProfile(context.Background(), decodeUpdate(t,
		`{"token":"t1","email":"","firstname":"","styles":null,"artists":["artist:x"],"birthdate":"2001-11-30"}`))
	if err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}

	c := repo.lastChanges
	if c.Email != nil {
		t.Errorf("empty email must be ignored, got %q", *c.Email)
	}
	if !c.Firstname.Present() || c.Firstname.Value != "" {
		t.Errorf("Firstname = %+v, want present empty string", c.Firstname)
	}
	if c.Styles.Set {
		t.Error("null styles must be ignored")
	}
	if !c.Artists.Present() || len(c.Artists.Value) != 1 {
		t.Errorf("Artists = %+v, want one entry", c.Artists)
	}
	if !c.Birthdate.Present() || c.Birthdate.Value.Year() != 2001 {
		t.Errorf("Birthdate = %+v, want 2001-11-30", c.Birthdate)
	}
	if c.Phone.Set {
		t.Error("omitted phone must stay unset")
	}
}

func TestUpdateProfile_Errors(t *testing.T) {
	repo := newMockUserRepo()
	repo.seed("ana", "t1")
	svc := NewProfileService(repo)
	ctx := context.Background()

	if _, err := svc.UpdateProfile(ctx, decodeUpdate(t, `{"city":"Lyon"}`)); !errors.Is(err, ErrMissingFields) {
		t.Errorf("missing token error = %v, want ErrMissingFields", err)
	}
	if _, err := svc.UpdateProfile(ctx, decodeUpdate(t, `{"token":"zz"}`)); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("unknown token error = %v, want ErrUserNotFound", err)
	}
	if _, err := svc.UpdateProfile(ctx, decodeUpdate(t, `{"token":"t1","birthdate":"soon"}`)); !errors.Is(err, ErrInvalidBirthdate) {
		t.Errorf("bad birthdate error = %v, want ErrInvalidBirthdate", err)
	}

	repo.writeErr = database.ErrDuplicate
	if _, err := svc.UpdateProfile(ctx, decodeUpdate(t, `{"token":"t1","email":"bob@x.com"}`)); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("duplicate email error = %v, want ErrEmailTaken", err)
	}
}

func TestGetProfileAndUserByID(t *testing.T) {
	repo := newMockUserRepo()
	repo.seed("ana", "t1")
	svc := NewProfileService(repo)
	ctx := context.Background()

	p, err := svc.GetProfile(ctx, "t1")
	if err != nil || p.Username != "ana" {
		t.Fatalf("GetProfile() = %+v, %v", p, err)
	}
	if _, err := svc.GetProfile(ctx, "zz"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("GetProfile(unknown) error = %v, want ErrUserNotFound", err)
	}

	p, err = svc.GetUserByID(ctx, "ana")
	if err != nil || p.Username != "ana" {
		t.Fatalf("GetUserByID(ana) = %+v, %v", p, err)
	}
	if _, err := svc.GetUserByID(ctx, "user:nobody"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("GetUserByID(unknown) error = %v, want ErrUserNotFound", err)
	}
	if _, err := svc.GetUserByID(ctx, ""); !errors.Is(err, ErrMissingFields) {
		t.Errorf("GetUserByID(\"\") error = %v, want ErrMissingFields", err)
	}
}
