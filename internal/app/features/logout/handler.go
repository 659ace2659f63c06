package logout

import (
	"context"
	"net/http"

	"github.com/reelhub/reelhub/internal/app/system/apierr"
	"github.com/reelhub/reelhub/internal/app/system/auth"
	"github.com/reelhub/reelhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Handler serves POST /api/{token}/logout.
type Handler struct {
	Auth   *auth.Authenticator
	ErrLog *apierr.Logger
	Log    *zap.Logger
}

func NewHandler(a *auth.Authenticator, errlog *apierr.Logger, logger *zap.Logger) *Handler {
	return &Handler{Auth: a, ErrLog: errlog, Log: logger}
}

// HandleLogout rotates the caller's token, killing every URL minted with
// the old one. The response body is empty.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	u := auth.CurrentUser(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Auth.Logout(ctx, u); err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}

	h.Log.Info("logout", zap.String("user_id", u.ID.Hex()))
	w.WriteHeader(http.StatusOK)
}
