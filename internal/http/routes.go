package httpx

import (
	"log/slog"
	"net/http"
	"strings"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth          AuthServiceInterface
	Authenticator SessionAuthenticator
	Cookies       CookieConfig
	// RootPath prefixes every route, e.g. "/api". Empty mounts at "/".
	RootPath string
	// DB backs the /healthz check (optional).
	DB     Pinger
	Logger *slog.Logger
}

// NewRouter creates and configures the HTTP router with its middleware chain.
func NewRouter(services RouterServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}
	root := strings.TrimRight(services.RootPath, "/")
	mux := http.NewServeMux()

	registerHealthRoutes(mux, root, services.DB, logger)

	authHandlers := &AuthHandlers{Svc: services.Auth, Cookies: services.Cookies, Logger: logger}
	registerAuthRoutes(mux, root, authHandlers)

	requireAuth := RequireAuth(services.Authenticator, AccessTokenCookie)
	mux.Handle("GET "+root+"/user/me", requireAuth(http.HandlerFunc(meHandler)))

	return withMiddleware(mux, logger)
}

// withMiddleware installs the per-request Sentry hub first so panics recovered
// below it are reported with the request attached.
func withMiddleware(h http.Handler, logger *slog.Logger) http.Handler {
	return SentryScope(Recover(logger)(Logging(logger)(h)))
}

func registerHealthRoutes(mux *http.ServeMux, root string, db Pinger, logger *slog.Logger) {
	ok := textHandler("OK")
	mux.Handle("GET "+root+"/{$}", ok)
	mux.Handle("GET "+root+"/health", ok)
	mux.Handle("GET "+root+"/ping", textHandler("pong"))

	hh := healthHandler(db, logger)
	mux.Handle("GET "+root+"/healthz", hh)
	mux.Handle("HEAD "+root+"/healthz", hh)
}

func registerAuthRoutes(mux *http.ServeMux, root string, h *AuthHandlers) {
	mux.HandleFunc("POST "+root+"/auth/signup", h.SignUp)
	mux.HandleFunc("POST "+root+"/auth/signin", h.SignIn)
	mux.HandleFunc("POST "+root+"/auth/signout", h.SignOut)
}
