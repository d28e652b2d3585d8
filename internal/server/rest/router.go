// Package rest is the HTTP transport: routing, the authentication and
// authorization middleware, and JSON handlers over the services.
package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/recordapi/internal/logging"
	"github.com/dmitrijs2005/recordapi/internal/server/auth"
	"github.com/dmitrijs2005/recordapi/internal/server/metrics"
	"github.com/dmitrijs2005/recordapi/internal/server/models"
	"github.com/dmitrijs2005/recordapi/internal/server/query"
	"github.com/dmitrijs2005/recordapi/internal/server/ratelimit"
	usersrepo "github.com/dmitrijs2005/recordapi/internal/server/repositories/users"
	"github.com/dmitrijs2005/recordapi/internal/server/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type UserService interface {
	SignUp(ctx context.Context, username, password string) (*models.User, error)
	Me(ctx context.Context, id int64) (*models.User, error)
	List(ctx context.Context, f usersrepo.Filters, page query.Pagination) (*services.Page[models.User], error)
	Delete(ctx context.Context, username string) (*models.User, error)
	Promote(ctx context.Context, id int64, role models.Role) (*models.User, error)
}

type NoteService interface {
	Create(ctx context.Context, ownerID int64, text string) (*models.Note, error)
	List(ctx context.Context, ownerID int64, search *string, page query.Pagination) (*services.Page[models.Note], error)
	Delete(ctx context.Context, ownerID, id int64) (*models.Note, error)
}

type SessionIssuer interface {
	SignIn(ctx context.Context, username, password string, now time.Time) (*auth.Session, error)
	SignOutCookie() *http.Cookie
}

type Authenticator interface {
	Authenticate(ctx context.Context, token string, now time.Time) (*models.Principal, error)
}

type Pinger interface {
	PingContext(ctx context.Context) error
}

// Deps are the collaborators of the router. Limiter and Now are optional.
type Deps struct {
	Users         UserService
	Notes         NoteService
	Issuer        SessionIssuer
	Authenticator Authenticator
	Limiter       ratelimit.Limiter
	Metrics       *metrics.Metrics
	DB            Pinger
	Logger        logging.Logger
	Now           func() time.Time
}

type handler struct {
	users         UserService
	notes         NoteService
	issuer        SessionIssuer
	authenticator Authenticator
	limiter       ratelimit.Limiter
	metrics       *metrics.Metrics
	db            Pinger
	logger        logging.Logger
	now           func() time.Time
}

func NewRouter(d Deps) http.Handler {
	h := &handler{
		users:         d.Users,
		notes:         d.Notes,
		issuer:        d.Issuer,
		authenticator: d.Authenticator,
		limiter:       d.Limiter,
		metrics:       d.Metrics,
		db:            d.DB,
		logger:        d.Logger.With("module", "rest"),
		now:           d.Now,
	}
	if h.limiter == nil {
		h.limiter = ratelimit.Unlimited{}
	}
	if h.now == nil {
		h.now = time.Now
	}

	r := chi.NewRouter()
	r.Use(h.requestID)
	r.Use(h.observe)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.healthz)
	r.Method(http.MethodGet, "/metrics", h.metrics.Handler())

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", h.signUp)
		r.Post("/signin", h.signIn)
		r.Get("/signout", h.signOut)
		r.With(h.authenticate).Get("/me", h.me)
	})

	r.Group(func(r chi.Router) {
		r.Use(h.authenticate)

		r.Route("/users", func(r chi.Router) {
			r.Use(h.requireRole(models.RoleAdmin))
			r.Get("/", h.listUsers)
			r.Delete("/", h.deleteUser)
			r.Post("/promote", h.promoteUser)
		})

		r.Route("/notes", func(r chi.Router) {
			r.Use(h.requireRole(models.RoleBasic))
			r.Get("/", h.listNotes)
			r.Post("/", h.createNote)
			r.Delete("/", h.deleteNote)
		})
	})

	return r
}

func (h *handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	writeError(r.Context(), w, h.logger.With("request_id", requestIDFrom(r.Context())), err)
}

func (h *handler) healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		h.logger.Warn(r.Context(), "health check failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
