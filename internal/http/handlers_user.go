package httpx

import (
	"net/http"

	apperrors "github.com/target/mmk-auth-api/internal/errors"
)

// meHandler handles GET /user/me behind RequireAuth.
func meHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{R: r, Err: apperrors.NotAuthenticated()})
		return
	}
	WriteJSON(w, http.StatusOK, user.Response())
}
