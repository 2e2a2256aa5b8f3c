package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appidentity "github.com/seorganiza/backend/internal/application/identity"
	"github.com/seorganiza/backend/internal/domain/identity"
	"github.com/seorganiza/backend/internal/domain/shared"
	"github.com/seorganiza/backend/internal/infrastructure/auth"
	"github.com/seorganiza/backend/internal/infrastructure/config"
	"github.com/seorganiza/backend/internal/infrastructure/logger"
	"github.com/seorganiza/backend/internal/interfaces/http/middleware"
)

// memUserRepo is an in-memory identity.UserRepository for tests
type memUserRepo struct {
	users map[uuid.UUID]*identity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[uuid.UUID]*identity.User)}
}

func (r *memUserRepo) FindByID(_ context.Context, id uuid.UUID) (*identity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *memUserRepo) FindByUsername(_ context.Context, username string) (*identity.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memUserRepo) FindAll(_ context.Context, _ shared.Filter) ([]identity.User, error) {
	var out []identity.User
	for _, u := range r.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (r *memUserRepo) Save(_ context.Context, user *identity.User) error {
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *memUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.users[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *memUserRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.users)), nil
}

// plainHasher keeps test passwords readable
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "plain:" + password, nil }

func (plainHasher) Compare(hash, password string) error {
	if hash != "plain:"+password {
		return shared.ErrUnauthorized
	}
	return nil
}

type identityFixture struct {
	engine  *gin.Engine
	users   *memUserRepo
	admin   *identity.User
	regular *identity.User
}

func setupIdentityAPI(t *testing.T) *identityFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := newMemUserRepo()
	tokens := auth.NewJWTService(config.JWTConfig{
		Secret:          "handler-test-secret",
		AccessTokenTTL:  time.Minute,
		RefreshTokenTTL: time.Hour,
		Issuer:          "seorganiza-test",
	})
	blacklist := auth.NewInMemoryTokenBlacklist()
	hasher := plainHasher{}

	authService := appidentity.NewAuthService(users, tokens, blacklist, hasher)
	userService := appidentity.NewUserService(users, hasher)

	admin, err := identity.NewUser("admin", "", "plain:admin-pass", true)
	require.NoError(t, err)
	require.NoError(t, users.Save(t.Context(), admin))
	regular, err := identity.NewUser("maria", "", "plain:maria-pass", false)
	require.NoError(t, err)
	require.NoError(t, users.Save(t.Context(), regular))

	log := logger.NewNop()
	engine := gin.New()
	api := engine.Group("/api/v1")

	authHandler := NewAuthHandler(authService, log)
	authHandler.RegisterPublicRoutes(api)

	protected := api.Group("")
	protected.Use(middleware.JWTAuth(tokens, blacklist))
	authHandler.RegisterProtectedRoutes(protected)
	NewUserHandler(userService, log).RegisterRoutes(protected)

	return &identityFixture{engine: engine, users: users, admin: admin, regular: regular}
}

func (f *identityFixture) login(t *testing.T, username, password string) (string, string) {
	t.Helper()
	w := doJSON(f.engine, http.MethodPost, "/api/v1/auth/login", gin.H{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			AccessToken  string `json:"access_token"`
			RefreshToken string `json:"refresh_token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Data.AccessToken, resp.Data.RefreshToken
}

func (f *identityFixture) doAuthed(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		data, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(data))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	f.engine.ServeHTTP(rec, req)
	return rec
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("valid credentials return a token pair", func(t *testing.T) {
		f := setupIdentityAPI(t)
		access, refresh := f.login(t, "admin", "admin-pass")
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, refresh)
	})

	t.Run("wrong password yields 401", func(t *testing.T) {
		f := setupIdentityAPI(t)
		w := doJSON(f.engine, http.MethodPost, "/api/v1/auth/login", gin.H{
			"username": "admin",
			"password": "wrong",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("missing fields yield 400", func(t *testing.T) {
		f := setupIdentityAPI(t)
		w := doJSON(f.engine, http.MethodPost, "/api/v1/auth/login", gin.H{"username": "admin"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthHandler_Logout(t *testing.T) {
	f := setupIdentityAPI(t)
	access, refresh := f.login(t, "admin", "admin-pass")

	w := f.doAuthed(http.MethodGet, "/api/v1/users", access, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = f.doAuthed(http.MethodPost, "/api/v1/auth/logout", access, gin.H{"refresh_token": refresh})
	require.Equal(t, http.StatusNoContent, w.Code)

	// revoked access token no longer passes the middleware
	w = f.doAuthed(http.MethodGet, "/api/v1/users", access, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// revoked refresh token cannot be exchanged
	resp := doJSON(f.engine, http.MethodPost, "/api/v1/auth/refresh", gin.H{"refresh_token": refresh})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestAuthHandler_Refresh(t *testing.T) {
	f := setupIdentityAPI(t)
	_, refresh := f.login(t, "admin", "admin-pass")

	w := doJSON(f.engine, http.MethodPost, "/api/v1/auth/refresh", gin.H{"refresh_token": refresh})
	require.Equal(t, http.StatusOK, w.Code)

	// rotation: the old refresh token is spent
	w = doJSON(f.engine, http.MethodPost, "/api/v1/auth/refresh", gin.H{"refresh_token": refresh})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_Middleware(t *testing.T) {
	t.Run("missing token yields 401", func(t *testing.T) {
		f := setupIdentityAPI(t)
		w := doJSON(f.engine, http.MethodGet, "/api/v1/users", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token yields 401", func(t *testing.T) {
		f := setupIdentityAPI(t)
		w := f.doAuthed(http.MethodGet, "/api/v1/users", "garbage", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestUserHandler_Authorization(t *testing.T) {
	t.Run("regular user cannot manage accounts", func(t *testing.T) {
		f := setupIdentityAPI(t)
		access, _ := f.login(t, "maria", "maria-pass")

		w := f.doAuthed(http.MethodGet, "/api/v1/users", access, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = f.doAuthed(http.MethodPost, "/api/v1/users", access, gin.H{
			"username": "eve",
			"password": "long-enough-pass",
		})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("superuser creates and deletes accounts", func(t *testing.T) {
		f := setupIdentityAPI(t)
		access, _ := f.login(t, "admin", "admin-pass")

		w := f.doAuthed(http.MethodPost, "/api/v1/users", access, gin.H{
			"username": "joao",
			"password": "long-enough-pass",
		})
		require.Equal(t, http.StatusCreated, w.Code)

		var created struct {
			Data struct {
				ID string `json:"id"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

		w = f.doAuthed(http.MethodDelete, "/api/v1/users/"+created.Data.ID, access, nil)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("superuser cannot delete own account", func(t *testing.T) {
		f := setupIdentityAPI(t)
		access, _ := f.login(t, "admin", "admin-pass")

		w := f.doAuthed(http.MethodDelete, "/api/v1/users/"+f.admin.ID.String(), access, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("duplicate username yields 409", func(t *testing.T) {
		f := setupIdentityAPI(t)
		access, _ := f.login(t, "admin", "admin-pass")

		w := f.doAuthed(http.MethodPost, "/api/v1/users", access, gin.H{
			"username": "maria",
			"password": "long-enough-pass",
		})
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}
