package user

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/georgemunganga/vendora-backend/internal/platform/apperr"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type memRepo struct{ users map[string]*User }

func (m *memRepo) CreateUser(_ context.Context, u *User) error {
	for _, o := range m.users {
		if o.Email == u.Email {
			return apperr.Conflict("user already exists")
		}
	}
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memRepo) GetUserByEmail(_ context.Context, email string) (*User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperr.NotFound("user not found")
}

func (m *memRepo) GetUserByID(_ context.Context, id string) (*User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, apperr.NotFound("user not found")
	}
	return u, nil
}

func newTestService() (*service, *memRepo) {
	repo := &memRepo{users: map[string]*User{}}
	return &service{repo: repo, cost: bcrypt.MinCost, now: time.Now}, repo
}

func TestRegisterUserHashesPassword(t *testing.T) {
	svc, repo := newTestService()

	u, err := svc.RegisterUser(context.Background(), RegisterRequest{Email: " Jo@Example.COM", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.Equal(t, "jo@example.com", u.Email)
	assert.Equal(t, RoleUser, u.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.users[u.ID].PasswordHash), []byte("s3cret-pass")))

	_, err = svc.RegisterUser(context.Background(), RegisterRequest{Email: "jo@example.com", Password: "another-pass"})
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestRegisterUserValidation(t *testing.T) {
	svc, _ := newTestService()
	for name, req := range map[string]RegisterRequest{
		"bad email":      {Email: "nope", Password: "long-enough"},
		"short password": {Email: "a@example.com", Password: "short"},
		"unknown role":   {Email: "a@example.com", Password: "long-enough", Role: "root"},
		"long password":  {Email: "a@example.com", Password: strings.Repeat("a", 73)},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.RegisterUser(context.Background(), req)
			assert.ErrorIs(t, err, apperr.ErrValidation)
		})
	}
}

func TestHandlerNeverSerialisesHash(t *testing.T) {
	svc, _ := newTestService()
	r := chi.NewRouter()
	NewHandler(svc).RegisterRoutes(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/users/register",
		strings.NewReader(`{"email":"kb@example.com","password":"correct-horse"}`)))
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")
	assert.NotContains(t, rec.Body.String(), "$2a$")

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/users/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
