// internal/app/features/requests/requests.go
package requests

import (
	"context"
	"net/http"

	"github.com/reelhub/reelhub/internal/app/features/shared"
	"github.com/reelhub/reelhub/internal/app/system/apierr"
	"github.com/reelhub/reelhub/internal/app/system/auth"
	"github.com/reelhub/reelhub/internal/app/system/httpjson"
	"github.com/reelhub/reelhub/internal/app/system/timeouts"
	"github.com/reelhub/reelhub/internal/app/system/txn"
	"github.com/reelhub/reelhub/internal/domain/models"
	"go.uber.org/zap"
)

type addRequestRequest struct {
	User   string `json:"user"`
	Group  string `json:"group"`
	Status string `json:"status"`
}

// HandleAdd submits a membership request for a (user, group) pair.
// AWAITING_GROUP is an application by the user, AWAITING_USER an
// invitation by the group owner. An admin may submit ACCEPTED to grant
// membership directly.
func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	acting := auth.CurrentUser(r)

	var req addRequestRequest
	if err := httpjson.Decode(r, &req); err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	userID, err := httpjson.ParseID("user id", req.User)
	if err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	groupID, err := httpjson.ParseID("group id", req.Group)
	if err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	status, err := models.ParseRequestStatus(req.Status)
	if err != nil {
		h.ErrLog.Write(w, r, apierr.Wrap(apierr.Validation, err, "bad status"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err = txn.WithTransaction(ctx, h.Client, h.Log, func(ctx context.Context) error {
		return h.Flow.Submit(ctx, acting, userID, groupID, status)
	})
	if err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	h.Log.Info("request submitted",
		zap.String("user_id", userID.Hex()),
		zap.String("group_id", groupID.Hex()),
		zap.String("status", string(status)))

	shared.RespondRealmView(w, r, h.View, h.ErrLog, acting.RealmID)
}

type setRequestRequest struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// HandleSet resolves a pending request with ACCEPTED or REJECTED.
// Either way the request record is consumed.
func (h *Handler) HandleSet(w http.ResponseWriter, r *http.Request) {
	acting := auth.CurrentUser(r)

	var req setRequestRequest
	if err := httpjson.Decode(r, &req); err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	requestID, err := httpjson.ParseID("request id", req.ID)
	if err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	status, err := models.ParseRequestStatus(req.Status)
	if err != nil {
		h.ErrLog.Write(w, r, apierr.Wrap(apierr.Validation, err, "bad status"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err = txn.WithTransaction(ctx, h.Client, h.Log, func(ctx context.Context) error {
		return h.Flow.Resolve(ctx, acting, requestID, status)
	})
	if err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	h.Log.Info("request resolved",
		zap.String("request_id", requestID.Hex()),
		zap.String("status", string(status)))

	shared.RespondRealmView(w, r, h.View, h.ErrLog, acting.RealmID)
}
