package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/forgo/festival/api/internal/model"
	"github.com/forgo/festival/api/internal/service"
)

// ============================================================================
// Mock services
// ============================================================================

type mockAccountService struct {
	signupFunc        func(ctx context.Context, req model.SignupRequest) (string, error)
	signinFunc        func(ctx context.Context, username, password string) (*service.SigninResult, error)
	usernameTakenFunc func(ctx context.Context, username string) (bool, error)
	emailTakenFunc    func(ctx context.Context, email string) (bool, error)
}

func (m *mockAccountService) Signup(ctx context.Context, req model.SignupRequest) (string, error) {
	if m.signupFunc != nil {
		return m.signupFunc(ctx, req)
	}
	return "", nil
}

func (m *mockAccountService) Signin(ctx context.Context, username, password string) (*service.SigninResult, error) {
	if m.signinFunc != nil {
		return m.signinFunc(ctx, username, password)
	}
	return nil, nil
}

func (m *mockAccountService) UsernameTaken(ctx context.Context, username string) (bool, error) {
	if m.usernameTakenFunc != nil {
		return m.usernameTakenFunc(ctx, username)
	}
	return false, nil
}

func (m *mockAccountService) EmailTaken(ctx context.Context, email string) (bool, error) {
	if m.emailTakenFunc != nil {
		return m.emailTakenFunc(ctx, email)
	}
	return false, nil
}

type mockFriendService struct {
	addFunc         func(ctx context.Context, token, friendToken string) error
	deleteFunc      func(ctx context.Context, token, friendToken string) error
	listUsersFunc   func(ctx context.Context, token string) ([]model.PublicUser, error)
	listFriendsFunc func(ctx context.Context, token string) ([]model.FriendProfile, error)
}

func (m *mockFriendService) AddFriend(ctx context.Context, token, friendToken string) error {
	if m.addFunc != nil {
		return m.addFunc(ctx, token, friendToken)
	}
	return nil
}

func (m *mockFriendService) DeleteFriend(ctx context.Context, token, friendToken string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, token, friendToken)
	}
	return nil
}

func (m *mockFriendService) ListUsers(ctx context.Context, token string) ([]model.PublicUser, error) {
	if m.listUsersFunc != nil {
		return m.listUsersFunc(ctx, token)
	}
	return nil, nil
}

func (m *mockFriendService) ListFriends(ctx context.Context, token string) ([]model.FriendProfile, error) {
	if m.listFriendsFunc != nil {
		return m.listFriendsFunc(ctx, token)
	}
	return nil, nil
}

type mockFestivalService struct {
	toggleLikedFunc  func(ctx context.Context, token, festivalID string) ([]string, error)
	toggleMemoryFunc func(ctx context.Context, token, festivalID string) ([]string, error)
	listLikedFunc    func(ctx context.Context, token string) ([]model.Festival, error)
	listMemoriesFunc func(ctx context.Context, token string) ([]model.Festival, error)
}

func (m *mockFestivalService) ToggleLiked(ctx context.Context, token, festivalID string) ([]string, error) {
	if m.toggleLikedFunc != nil {
		return m.toggleLikedFunc(ctx, token, festivalID)
	}
	return nil, nil
}

func (m *mockFestivalService) ToggleMemory(ctx context.Context, token, festivalID string) ([]string, error) {
	if m.toggleMemoryFunc != nil {
		return m.toggleMemoryFunc(ctx, token, festivalID)
	}
	return nil, nil
}

func (m *mockFestivalService) ListLiked(ctx context.Context, token string) ([]model.Festival, error) {
	if m.listLikedFunc != nil {
		return m.listLikedFunc(ctx, token)
	}
	return nil, nil
}

func (m *mockFestivalService) ListMemories(ctx context.Context, token string) ([]model.Festival, error) {
	if m.listMemoriesFunc != nil {
		return m.listMemoriesFunc(ctx, token)
	}
	return nil, nil
}

type mockProfileService struct {
	getProfileFunc func(ctx context.Context, token string) (*model.Profile, error)
	getByIDFunc    func(ctx context.Context, id string) (*model.Profile, error)
	updateFunc     func(ctx context.Context, req model.ProfileUpdate) (*model.Profile, error)
}

func (m *mockProfileService) GetProfile(ctx context.Context, token string) (*model.Profile, error) {
	if m.getProfileFunc != nil {
		return m.getProfileFunc(ctx, token)
	}
	return nil, nil
}

func (m *mockProfileService) GetUserByID(ctx context.Context, id string) (*model.Profile, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockProfileService) UpdateProfile(ctx context.Context, req model.ProfileUpdate) (*model.Profile, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, req)
	}
	return nil, nil
}

type mockPhotoService struct {
	uploadFunc func(ctx context.Context, src io.Reader) (string, error)
}

func (m *mockPhotoService) Upload(ctx context.Context, src io.Reader) (string, error) {
	if m.uploadFunc != nil {
		return m.uploadFunc(ctx, src)
	}
	return "", nil
}

// ============================================================================
// Test Helpers
// ============================================================================

type testServices struct {
	accounts  *mockAccountService
	friends   *mockFriendService
	festivals *mockFestivalService
	profiles  *mockProfileService
	photos    *mockPhotoService
}

func newTestServices() *testServices {
	return &testServices{
		accounts:  &mockAccountService{},
		friends:   &mockFriendService{},
		festivals: &mockFestivalService{},
		profiles:  &mockProfileService{},
		photos:    &mockPhotoService{},
	}
}

// mux mounts the user routes at the root and under /users
func (s *testServices) mux(maxUpload int64) *http.ServeMux {
	h := NewUserHandler(UserHandlerConfig{
		Accounts:       s.accounts,
		Friends:        s.friends,
		Festivals:      s.festivals,
		Profiles:       s.profiles,
		Photos:         s.photos,
		MaxUploadBytes: maxUpload,
	})
	mux := http.NewServeMux()
	h.RegisterRoutes(mux, "")
	h.RegisterRoutes(mux, "/users")
	return mux
}

func stringPtr(s string) *string {
	return &s
}

func makeJSONRequest(method, path string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func serve(mux http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	return rr
}

func parseBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse response %q: %v", rr.Body.String(), err)
	}
	return body
}

func parseErrorResponse(t *testing.T, rr *httptest.ResponseRecorder) *model.APIError {
	t.Helper()
	var apiErr model.APIError
	if err := json.Unmarshal(rr.Body.Bytes(), &apiErr); err != nil {
		t.Fatalf("failed to parse error response: %v", err)
	}
	return &apiErr
}
