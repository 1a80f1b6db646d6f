package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/geosick-health/geosick/internal/common"
	"github.com/geosick-health/geosick/internal/logging"
	"github.com/geosick-health/geosick/internal/server/accounts"
	"github.com/geosick-health/geosick/internal/server/activity"
	"github.com/geosick-health/geosick/internal/server/auth"
	"github.com/geosick-health/geosick/internal/server/config"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type fakeAccountRepo struct {
	byPhone     map[string]*accounts.Account
	LastCreated *accounts.Account
	createErr   error
}

func (f *fakeAccountRepo) Create(ctx context.Context, account *accounts.Account) (*accounts.Account, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	created := *account
	created.ID = fmt.Sprintf("id-%d", len(f.byPhone)+1)
	if f.byPhone == nil {
		f.byPhone = map[string]*accounts.Account{}
	}
	f.byPhone[created.Phone] = &created
	f.LastCreated = &created
	return &created, nil
}

func (f *fakeAccountRepo) GetByPhone(ctx context.Context, phone string) (*accounts.Account, error) {
	account, ok := f.byPhone[phone]
	if !ok {
		return nil, common.ErrorNotFound
	}
	copy := *account
	return &copy, nil
}

type fakeActivityRepo struct {
	entries      []activity.Entry
	LastInserted *activity.Entry
	insertErr    error
}

func (f *fakeActivityRepo) Insert(ctx context.Context, entry *activity.Entry) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.entries = append([]activity.Entry{*entry}, f.entries...)
	f.LastInserted = entry
	return nil
}

func (f *fakeActivityRepo) ListGlobal(ctx context.Context, limit int) ([]activity.Entry, error) {
	if limit > len(f.entries) {
		limit = len(f.entries)
	}
	return f.entries[:limit], nil
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newTestServer(t *testing.T, accountRepo *fakeAccountRepo, activityRepo *fakeActivityRepo) *httptest.Server {
	t.Helper()

	cfg := &config.Config{
		SecretKey:                   testSecret,
		AccessTokenValidityDuration: time.Minute,
	}

	h := NewHandler(
		accounts.NewService(accountRepo, cfg),
		activity.NewService(activityRepo),
		testSecret,
		testLogger(),
	)

	srv := httptest.NewServer(h.Routes())
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url, token string, body any) *http.Response {
	t.Helper()

	buf, err := json.Marshal(body)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(buf))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestRegisterAccount(t *testing.T) {
	repo := &fakeAccountRepo{}
	srv := newTestServer(t, repo, &fakeActivityRepo{})

	resp := postJSON(t, srv.URL+"/api/v1/accounts", "", registerRequest{
		Phone:       "1234567890",
		Name:        "Test User",
		DateOfBirth: "1990-01-01",
		Password:    "password",
	})
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var got registerResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Equal(t, "1234567890", got.Phone)
	require.Equal(t, accounts.RoleUser, got.Role)
	require.NotEmpty(t, got.ID)
	require.NotNil(t, repo.LastCreated)
}

func TestRegisterAccountDuplicatePhone(t *testing.T) {
	repo := &fakeAccountRepo{byPhone: map[string]*accounts.Account{
		"1234567890": {Phone: "1234567890", Name: "Existing", Password: "pw"},
	}}
	srv := newTestServer(t, repo, &fakeActivityRepo{})

	resp := postJSON(t, srv.URL+"/api/v1/accounts", "", registerRequest{
		Phone:    "1234567890",
		Name:     "Test User",
		Password: "password",
	})
	defer resp.Body.Close()

	require.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestRegisterAccountMissingFields(t *testing.T) {
	srv := newTestServer(t, &fakeAccountRepo{}, &fakeActivityRepo{})

	resp := postJSON(t, srv.URL+"/api/v1/accounts", "", registerRequest{Phone: "123"})
	defer resp.Body.Close()

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateSession(t *testing.T) {
	repo := &fakeAccountRepo{byPhone: map[string]*accounts.Account{
		"1234567890": {Phone: "1234567890", Password: "password", Role: accounts.RoleUser},
	}}
	srv := newTestServer(t, repo, &fakeActivityRepo{})

	resp := postJSON(t, srv.URL+"/api/v1/sessions", "", sessionRequest{
		Phone:    "1234567890",
		Password: "password",
	})
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got sessionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.NotEmpty(t, got.AccessToken)

	claims, err := auth.ParseToken(got.AccessToken, []byte(testSecret))
	require.NoError(t, err)
	require.Equal(t, "1234567890", claims.Phone)
}

func TestCreateSessionWrongPassword(t *testing.T) {
	repo := &fakeAccountRepo{byPhone: map[string]*accounts.Account{
		"1234567890": {Phone: "1234567890", Password: "password"},
	}}
	srv := newTestServer(t, repo, &fakeActivityRepo{})

	resp := postJSON(t, srv.URL+"/api/v1/sessions", "", sessionRequest{
		Phone:    "1234567890",
		Password: "wrong",
	})
	defer resp.Body.Close()

	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCreateSessionUnknownPhone(t *testing.T) {
	srv := newTestServer(t, &fakeAccountRepo{}, &fakeActivityRepo{})

	resp := postJSON(t, srv.URL+"/api/v1/sessions", "", sessionRequest{
		Phone:    "0000000",
		Password: "password",
	})
	defer resp.Body.Close()

	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func tokenFor(t *testing.T, phone, role string) string {
	t.Helper()
	token, err := auth.GenerateToken(phone, role, []byte(testSecret), time.Minute)
	require.NoError(t, err)
	return token
}

func TestAppendActivity(t *testing.T) {
	repo := &fakeActivityRepo{}
	srv := newTestServer(t, &fakeAccountRepo{}, repo)

	entry := activity.Entry{
		ID:        "2024-01-01T00:00:00Z-abc",
		Type:      "login",
		Timestamp: time.Now().UnixMilli(),
		Title:     "User Logged In",
		UserPhone: "1234567890",
		Data:      json.RawMessage(`{"message":"hi"}`),
	}

	resp := postJSON(t, srv.URL+"/api/v1/activity", tokenFor(t, "1234567890", accounts.RoleUser), entry)
	defer resp.Body.Close()

	require.Equal(t, http.StatusAccepted, resp.StatusCode)
	require.NotNil(t, repo.LastInserted)
	require.Equal(t, entry.ID, repo.LastInserted.ID)
	require.False(t, repo.LastInserted.ReceivedAt.IsZero())
}

func TestAppendActivityWithoutToken(t *testing.T) {
	srv := newTestServer(t, &fakeAccountRepo{}, &fakeActivityRepo{})

	resp := postJSON(t, srv.URL+"/api/v1/activity", "", activity.Entry{ID: "x", UserPhone: "1"})
	defer resp.Body.Close()

	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAppendActivityForAnotherAccount(t *testing.T) {
	srv := newTestServer(t, &fakeAccountRepo{}, &fakeActivityRepo{})

	entry := activity.Entry{ID: "x", UserPhone: "9999999999"}

	resp := postJSON(t, srv.URL+"/api/v1/activity", tokenFor(t, "1234567890", accounts.RoleUser), entry)
	defer resp.Body.Close()

	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestListGlobalActivityRequiresAdmin(t *testing.T) {
	repo := &fakeActivityRepo{entries: []activity.Entry{{ID: "a", UserPhone: "1"}}}
	srv := newTestServer(t, &fakeAccountRepo{}, repo)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/v1/activity", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, "1234567890", accounts.RoleUser))

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestListGlobalActivity(t *testing.T) {
	repo := &fakeActivityRepo{entries: []activity.Entry{
		{ID: "b", Type: "image-analysis", UserPhone: "1", Data: json.RawMessage(`{}`)},
		{ID: "a", Type: "login", UserPhone: "2", Data: json.RawMessage(`{}`)},
	}}
	srv := newTestServer(t, &fakeAccountRepo{}, repo)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/v1/activity", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, "admin-phone", accounts.RoleAdmin))

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got []activity.Entry
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Len(t, got, 2)
	require.Equal(t, "b", got[0].ID)
}

func TestListGlobalActivityInvalidLimit(t *testing.T) {
	srv := newTestServer(t, &fakeAccountRepo{}, &fakeActivityRepo{})

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/v1/activity?limit=nope", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, "admin-phone", accounts.RoleAdmin))

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
