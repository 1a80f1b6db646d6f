package accounts

import (
	"context"
	"testing"
	"time"

	"github.com/geosick-health/geosick/internal/common"
	"github.com/geosick-health/geosick/internal/server/auth"
	"github.com/geosick-health/geosick/internal/server/config"
	"github.com/stretchr/testify/require"
)

type fakeRepository struct {
	byPhone     map[string]*Account
	LastCreated *Account
	createErr   error
	getErr      error
}

func (f *fakeRepository) Create(ctx context.Context, account *Account) (*Account, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	created := *account
	created.ID = "generated-id"
	if f.byPhone == nil {
		f.byPhone = map[string]*Account{}
	}
	f.byPhone[created.Phone] = &created
	f.LastCreated = &created
	return &created, nil
}

func (f *fakeRepository) GetByPhone(ctx context.Context, phone string) (*Account, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	account, ok := f.byPhone[phone]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return account, nil
}

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:                   "test-secret",
		AccessTokenValidityDuration: time.Minute,
	}
}

func TestServiceRegister(t *testing.T) {
	repo := &fakeRepository{}
	s := NewService(repo, testConfig())

	created, err := s.Register(context.Background(), Account{
		Phone:    "  1234567890  ",
		Name:     "Test User",
		Password: "password",
	})

	require.NoError(t, err)
	require.Equal(t, "1234567890", created.Phone)
	require.Equal(t, RoleUser, created.Role)
	require.False(t, created.CreatedAt.IsZero())
	require.NotEmpty(t, created.ID)
}

func TestServiceRegisterDuplicatePhone(t *testing.T) {
	repo := &fakeRepository{byPhone: map[string]*Account{
		"1234567890": {Phone: "1234567890"},
	}}
	s := NewService(repo, testConfig())

	_, err := s.Register(context.Background(), Account{
		Phone:    "1234567890",
		Name:     "Test User",
		Password: "password",
	})

	require.ErrorIs(t, err, common.ErrorDuplicatePhone)
}

func TestServiceRegisterMissingFields(t *testing.T) {
	s := NewService(&fakeRepository{}, testConfig())

	tests := []struct {
		name    string
		account Account
	}{
		{"no phone", Account{Name: "Test", Password: "pw"}},
		{"blank phone", Account{Phone: "   ", Name: "Test", Password: "pw"}},
		{"no name", Account{Phone: "123", Password: "pw"}},
		{"no password", Account{Phone: "123", Name: "Test"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Register(context.Background(), tt.account)
			require.ErrorIs(t, err, common.ErrorMissingFields)
		})
	}
}

func TestServiceAuthenticate(t *testing.T) {
	repo := &fakeRepository{byPhone: map[string]*Account{
		"1234567890": {Phone: "1234567890", Password: "password", Role: RoleAdmin},
	}}
	s := NewService(repo, testConfig())

	token, err := s.Authenticate(context.Background(), "1234567890", "password")
	require.NoError(t, err)

	claims, err := auth.ParseToken(token, []byte("test-secret"))
	require.NoError(t, err)
	require.Equal(t, "1234567890", claims.Phone)
	require.Equal(t, RoleAdmin, claims.Role)
}

func TestServiceAuthenticateWrongPassword(t *testing.T) {
	repo := &fakeRepository{byPhone: map[string]*Account{
		"1234567890": {Phone: "1234567890", Password: "password"},
	}}
	s := NewService(repo, testConfig())

	_, err := s.Authenticate(context.Background(), "1234567890", "wrong")
	require.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestServiceAuthenticateUnknownPhone(t *testing.T) {
	s := NewService(&fakeRepository{}, testConfig())

	_, err := s.Authenticate(context.Background(), "0000000", "password")
	require.ErrorIs(t, err, common.ErrorUnauthorized)
}
