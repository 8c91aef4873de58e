package router

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"alumni-reunion/internal/access"
	"alumni-reunion/internal/core/auth"
	"alumni-reunion/internal/core/config"
	"alumni-reunion/internal/core/database"
	"alumni-reunion/internal/domain"
	"alumni-reunion/internal/feature/geo"
	"alumni-reunion/internal/feature/media"
	"alumni-reunion/internal/repo"
	"alumni-reunion/pkg/utils"
)

func init() { gin.SetMode(gin.TestMode) }

const testCookie = "reunion_session"

// recordingPages loads straight from the source and remembers every invalidation.
type recordingPages struct {
	mu          sync.Mutex
	invalidated []string
}

func (p *recordingPages) GetOrLoad(ctx context.Context, _ string, _ time.Duration, load func(context.Context) ([]byte, error)) ([]byte, error) {
	return load(ctx)
}

func (p *recordingPages) Invalidate(_ context.Context, keys ...string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.invalidated = append(p.invalidated, keys...)
	return nil
}

func (p *recordingPages) calls() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.invalidated...)
}

type memStore struct {
	mu   sync.Mutex
	objs map[string][]byte
	err  error
}

func (s *memStore) Put(_ context.Context, key string, r io.Reader, _ int64, _ string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.objs == nil {
		s.objs = map[string][]byte{}
	}
	s.objs[key] = b
	return "https://cdn.test/" + key, nil
}

type testEnv struct {
	t     *testing.T
	db    *gorm.DB
	jwt   *auth.JWTer
	pages *recordingPages
	store *memStore
	api   *gin.Engine
	admin *gin.Engine
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()
	return newEnvWith(t, nil)
}

// newEnvWith lets a test adjust Deps before the engines are built.
func newEnvWith(t *testing.T, tweak func(*Deps)) *testEnv {
	t.Helper()
	db, err := database.NewGorm(database.Opts{Driver: "sqlite", DSN: "file::memory:", MaxOpenConns: 1, LogLevel: "silent"})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := repo.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	dataset, err := geo.Load()
	if err != nil {
		t.Fatalf("load geo: %v", err)
	}

	j := &auth.JWTer{Secret: []byte("test-secret"), Issuer: "reunion-test", TTL: time.Hour}
	e := &testEnv{t: t, db: db, jwt: j, pages: &recordingPages{}, store: &memStore{}}
	d := &Deps{
		Log:      zap.NewNop(),
		DB:       db,
		JWT:      j,
		Resolver: &auth.Resolver{JWT: j, CookieName: testCookie, Users: repo.UsersOn(db)},
		Pages:    e.pages,
		PageTTL:  time.Minute,
		Uploader: &media.Uploader{
			Store:  e.store,
			Prefix: "reunion",
			Limits: media.Limits{MaxImageBytes: 1 << 20, MaxVideoBytes: 2 << 20},
		},
		Geo:     dataset,
		Session: config.Session{CookieName: testCookie},
	}
	if tweak != nil {
		tweak(d)
	}
	e.api = NewAPIEngine(d)
	e.admin = NewAdminEngine(d)
	return e
}

// user inserts an account and returns it with a bearer token.
func (e *testEnv) user(email string, role access.Role) (*domain.User, string) {
	e.t.Helper()
	u := &domain.User{ID: utils.NewID(), Email: email, Name: email, PasswordHash: "x", Role: role}
	if err := repo.NewUserRepo(e.db).Create(u); err != nil {
		e.t.Fatalf("create user: %v", err)
	}
	tok, err := e.jwt.Issue(u.Identity())
	if err != nil {
		e.t.Fatalf("issue token: %v", err)
	}
	return u, tok
}

func (e *testEnv) profile(u *domain.User) *domain.AlumniProfile {
	e.t.Helper()
	p := &domain.AlumniProfile{ID: utils.NewID(), UserID: u.ID, Email: u.Email, FullName: u.Name}
	if err := repo.NewProfileRepo(e.db).Upsert(p); err != nil {
		e.t.Fatalf("create profile: %v", err)
	}
	return p
}

func (e *testEnv) hotel(id, name string) {
	e.t.Helper()
	h := &domain.Hotel{ID: id, HotelName: name, WebsiteURL: "https://" + id + ".example"}
	if err := repo.NewHotelRepo(e.db).Create(h); err != nil {
		e.t.Fatalf("create hotel: %v", err)
	}
}

func (e *testEnv) do(h http.Handler, method, path string, body any, token string) *httptest.ResponseRecorder {
	e.t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			e.t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func (e *testEnv) call(method, path string, body any, token string) *httptest.ResponseRecorder {
	e.t.Helper()
	return e.do(e.api, method, "/api/v1"+path, body, token)
}

func (e *testEnv) adminCall(method, path string, body any, token string) *httptest.ResponseRecorder {
	e.t.Helper()
	return e.do(e.admin, method, "/admin/v1"+path, body, token)
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return v
}

func wantError(t *testing.T, w *httptest.ResponseRecorder, code int, msg string) {
	t.Helper()
	if w.Code != code {
		t.Fatalf("status = %d, want %d (body %s)", w.Code, code, w.Body.String())
	}
	got := decode[struct {
		Error string `json:"error"`
	}](t, w)
	if msg != "" && got.Error != msg {
		t.Fatalf("error = %q, want %q", got.Error, msg)
	}
}

// wantBindError asserts a 400 raised by a binding tag on field.
func wantBindError(t *testing.T, w *httptest.ResponseRecorder, field, tag string) {
	t.Helper()
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 (body %s)", w.Code, w.Body.String())
	}
	got := decode[struct {
		Error string `json:"error"`
	}](t, w)
	if !strings.HasPrefix(got.Error, "invalid request: ") ||
		!strings.Contains(got.Error, "'"+field+"'") || !strings.Contains(got.Error, "'"+tag+"' tag") {
		t.Fatalf("error = %q, want %s failing %s", got.Error, field, tag)
	}
}

func serve(e *testEnv, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.api.ServeHTTP(w, req)
	return w
}
