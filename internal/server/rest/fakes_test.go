package rest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/recordapi/internal/common"
	"github.com/dmitrijs2005/recordapi/internal/logging"
	"github.com/dmitrijs2005/recordapi/internal/server/auth"
	"github.com/dmitrijs2005/recordapi/internal/server/metrics"
	"github.com/dmitrijs2005/recordapi/internal/server/models"
	"github.com/dmitrijs2005/recordapi/internal/server/query"
	"github.com/dmitrijs2005/recordapi/internal/server/ratelimit"
	usersrepo "github.com/dmitrijs2005/recordapi/internal/server/repositories/users"
	"github.com/dmitrijs2005/recordapi/internal/server/services"
)

var (
	admin     = models.User{ID: 1, UserName: "root", Role: models.RoleAdmin}
	basic     = models.User{ID: 2, UserName: "ann", Role: models.RoleBasic}
	moderator = models.User{ID: 3, UserName: "mod", Role: models.RoleModerator}
)

// --- principal/credential store ---

type fakeStore struct {
	mu     sync.Mutex
	users  map[int64]models.Credentials
	getErr error
}

func (s *fakeStore) GetByID(_ context.Context, id int64) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return nil, s.getErr
	}
	c, ok := s.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	u := c.User
	return &u, nil
}

func (s *fakeStore) GetCredentials(_ context.Context, username string) (*models.Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.users {
		if c.UserName == username {
			cp := c
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

// --- services ---

type fakeUserService struct {
	signUpErr error
	signedUp  []string

	listFilters usersrepo.Filters
	listPage    query.Pagination
	listOut     *services.Page[models.User]
	listErr     error

	deleted   []string
	deleteErr error

	promoted   []models.Role
	promoteErr error
}

func (f *fakeUserService) SignUp(_ context.Context, username, _ string) (*models.User, error) {
	if f.signUpErr != nil {
		return nil, f.signUpErr
	}
	f.signedUp = append(f.signedUp, username)
	return &models.User{ID: 10, UserName: username, Role: models.RoleBasic}, nil
}

func (f *fakeUserService) Me(_ context.Context, id int64) (*models.User, error) {
	for _, u := range []models.User{admin, basic, moderator} {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUserService) List(_ context.Context, filters usersrepo.Filters, page query.Pagination) (*services.Page[models.User], error) {
	f.listFilters, f.listPage = filters, page
	if f.listErr != nil {
		return nil, f.listErr
	}
	if f.listOut != nil {
		return f.listOut, nil
	}
	return &services.Page[models.User]{Items: []models.User{}}, nil
}

func (f *fakeUserService) Delete(_ context.Context, username string) (*models.User, error) {
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	f.deleted = append(f.deleted, username)
	return &models.User{ID: 5, UserName: username}, nil
}

func (f *fakeUserService) Promote(_ context.Context, id int64, role models.Role) (*models.User, error) {
	if f.promoteErr != nil {
		return nil, f.promoteErr
	}
	f.promoted = append(f.promoted, role)
	return &models.User{ID: id, UserName: "x", Role: role}, nil
}

type fakeNoteService struct {
	owners []int64
	search *string
	page   query.Pagination
	notes  []models.Note
	err    error
}

func (f *fakeNoteService) Create(_ context.Context, ownerID int64, text string) (*models.Note, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.owners = append(f.owners, ownerID)
	return &models.Note{ID: 1, OwnerID: ownerID, Text: text}, nil
}

func (f *fakeNoteService) List(_ context.Context, ownerID int64, search *string, page query.Pagination) (*services.Page[models.Note], error) {
	f.owners = append(f.owners, ownerID)
	f.search, f.page = search, page
	return &services.Page[models.Note]{Items: f.notes, Total: int64(len(f.notes))}, nil
}

func (f *fakeNoteService) Delete(_ context.Context, ownerID, id int64) (*models.Note, error) {
	f.owners = append(f.owners, ownerID)
	if f.err != nil {
		return nil, f.err
	}
	return &models.Note{ID: id, OwnerID: ownerID}, nil
}

// --- infra ---

type fakeLimiter struct {
	decision ratelimit.Decision
	err      error
	keys     []string
}

func (l *fakeLimiter) Allow(_ context.Context, key string) (ratelimit.Decision, error) {
	l.keys = append(l.keys, key)
	return l.decision, l.err
}

type fakePinger struct{ err error }

func (p *fakePinger) PingContext(context.Context) error { return p.err }

// --- fixture ---

type fixture struct {
	router  http.Handler
	codec   *auth.SessionCodec
	hasher  *auth.PasswordHasher
	store   *fakeStore
	users   *fakeUserService
	notes   *fakeNoteService
	limiter *fakeLimiter
	db      *fakePinger
	metrics *metrics.Metrics
	now     time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		codec:   auth.NewSessionCodec([]byte("secret"), time.Hour),
		hasher:  auth.NewPasswordHasher("salt"),
		users:   &fakeUserService{},
		notes:   &fakeNoteService{},
		limiter: &fakeLimiter{decision: ratelimit.Decision{Allowed: true}},
		db:      &fakePinger{},
		metrics: metrics.New(),
		now:     time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
	}

	f.store = &fakeStore{users: map[int64]models.Credentials{}}
	for _, u := range []models.User{admin, basic, moderator} {
		f.store.users[u.ID] = models.Credentials{User: u, PasswordDigest: f.hasher.Digest(u.UserName + "-pw")}
	}

	f.router = NewRouter(Deps{
		Users:         f.users,
		Notes:         f.notes,
		Issuer:        auth.NewIssuer(f.codec, f.hasher, f.store, auth.CookieSettings{SameSite: http.SameSiteLaxMode}),
		Authenticator: auth.NewAuthenticator(f.codec, f.store),
		Limiter:       f.limiter,
		Metrics:       f.metrics,
		DB:            f.db,
		Logger:        logging.Nop{},
		Now:           func() time.Time { return f.now },
	})
	return f
}

func (f *fixture) token(t *testing.T, u models.User) string {
	t.Helper()
	tok, _, err := f.codec.Issue(u.ID, u.Role, f.now)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	return tok
}

// do sends a request carrying token as the session cookie when non-empty.
func (f *fixture) do(method, target, body, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: common.SessionCookieName, Value: token})
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

var errBoom = errors.New("connection refused by 10.0.0.5")
