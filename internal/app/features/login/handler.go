package login

import (
	"context"
	"net/http"

	"github.com/reelhub/reelhub/internal/app/system/apierr"
	"github.com/reelhub/reelhub/internal/app/system/auth"
	"github.com/reelhub/reelhub/internal/app/system/httpjson"
	"github.com/reelhub/reelhub/internal/app/system/timeouts"
	"github.com/reelhub/reelhub/internal/domain/models"
	"go.uber.org/zap"
)

// Handler serves POST /api/login.
type Handler struct {
	Auth   *auth.Authenticator
	ErrLog *apierr.Logger
	Log    *zap.Logger
}

func NewHandler(a *auth.Authenticator, errlog *apierr.Logger, logger *zap.Logger) *Handler {
	return &Handler{Auth: a, ErrLog: errlog, Log: logger}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	// Renew forces a fresh token even when the account already holds one.
	// When present it must be the literal string "true"; any other value
	// is rejected.
	Renew string `json:"renew"`
}

// HandleLogin checks credentials and returns the session token.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpjson.Decode(r, &req); err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	if req.Username == "" || req.Password == "" {
		h.ErrLog.Write(w, r, apierr.New(apierr.Validation, "missing username or password"))
		return
	}
	if req.Renew != "" && req.Renew != "true" {
		h.ErrLog.Write(w, r, apierr.New(apierr.Validation, "renew, if specified, must be \"true\""))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	u, err := h.Auth.Login(ctx, req.Username, req.Password, req.Renew == "true")
	if err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}

	h.Log.Info("login", zap.String("user_id", u.ID.Hex()))
	httpjson.Respond(w, http.StatusOK, models.TokenView{Token: u.Token})
}
