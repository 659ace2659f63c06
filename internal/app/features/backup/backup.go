// internal/app/features/backup/backup.go
package backup

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/reelhub/reelhub/internal/app/system/apierr"
	"github.com/reelhub/reelhub/internal/app/system/auth"
	"github.com/reelhub/reelhub/internal/app/system/authz"
	"github.com/reelhub/reelhub/internal/app/system/httpjson"
	"github.com/reelhub/reelhub/internal/app/system/timeouts"
	"github.com/reelhub/reelhub/internal/domain/models"
)

// collections lists every collection included in an archive, in the
// order restore reloads them.
var collections = []string{
	"realms", "users", "groups", "group_members", "movies", "ratings", "requests",
}

// archive is the on-disk backup format. Documents are stored as
// canonical extended JSON so ObjectIDs and timestamps survive the
// round trip.
type archive struct {
	ID          string                       `json:"id"`
	CreatedAt   time.Time                    `json:"created_at"`
	Collections map[string][]json.RawMessage `json:"collections"`
}

type pathRequest struct {
	Path string `json:"path"`
}

// HandleBackup dumps every collection to the given file path. ROOT only.
func (h *Handler) HandleBackup(w http.ResponseWriter, r *http.Request) {
	acting := auth.CurrentUser(r)
	if err := authz.RequireRole(acting, authz.RoleRoot); err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}

	var req pathRequest
	if err := httpjson.Decode(r, &req); err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	if req.Path == "" {
		h.ErrLog.Write(w, r, apierr.New(apierr.Validation, "missing path"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Backup())
	defer cancel()

	path, err := filepath.Abs(req.Path)
	if err != nil {
		h.ErrLog.Write(w, r, apierr.Wrap(apierr.Validation, err, "bad path %q", req.Path))
		return
	}

	arch := archive{
		ID:          uuid.NewString(),
		CreatedAt:   time.Now().UTC(),
		Collections: make(map[string][]json.RawMessage, len(collections)),
	}
	for _, name := range collections {
		docs, err := h.dumpCollection(ctx, name)
		if err != nil {
			h.ErrLog.Write(w, r, err)
			return
		}
		arch.Collections[name] = docs
	}

	buf, err := json.MarshalIndent(arch, "", "  ")
	if err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	if err := os.WriteFile(path, buf, 0o600); err != nil {
		h.ErrLog.Write(w, r, apierr.Wrap(apierr.Validation, err, "backup write failed"))
		return
	}
	h.Log.Info("backup written",
		zap.String("archive_id", arch.ID),
		zap.String("path", path))

	httpjson.Respond(w, http.StatusOK, models.TokenView{Token: acting.Token})
}

func (h *Handler) dumpCollection(ctx context.Context, name string) ([]json.RawMessage, error) {
	cur, err := h.DB.Collection(name).Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	docs := []json.RawMessage{}
	for cur.Next(ctx) {
		ext, err := bson.MarshalExtJSON(cur.Current, true, false)
		if err != nil {
			return nil, err
		}
		docs = append(docs, json.RawMessage(ext))
	}
	return docs, cur.Err()
}

// HandleRestore wipes the database and reloads it from an archive file.
// The path token must be the master key, not a user token, so restore is
// reachable even when no user can log in.
func (h *Handler) HandleRestore(w http.ResponseWriter, r *http.Request) {
	if !h.Auth.IsMasterToken(chi.URLParam(r, "token")) {
		h.ErrLog.Write(w, r, apierr.New(apierr.Authorization, "bad credentials"))
		return
	}

	var req pathRequest
	if err := httpjson.Decode(r, &req); err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	if req.Path == "" {
		h.ErrLog.Write(w, r, apierr.New(apierr.Validation, "missing path"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Backup())
	defer cancel()

	path, err := filepath.Abs(req.Path)
	if err != nil {
		h.ErrLog.Write(w, r, apierr.Wrap(apierr.Validation, err, "bad path %q", req.Path))
		return
	}
	buf, err := os.ReadFile(path)
	if err != nil {
		h.ErrLog.Write(w, r, apierr.Wrap(apierr.Validation, err, "restore read failed"))
		return
	}
	var arch archive
	if err := json.Unmarshal(buf, &arch); err != nil {
		h.ErrLog.Write(w, r, apierr.Wrap(apierr.Validation, err, "bad archive"))
		return
	}

	for _, name := range collections {
		if err := h.loadCollection(ctx, name, arch.Collections[name]); err != nil {
			h.ErrLog.Write(w, r, err)
			return
		}
	}
	h.Log.Info("restore complete",
		zap.String("archive_id", arch.ID),
		zap.String("path", path))

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) loadCollection(ctx context.Context, name string, docs []json.RawMessage) error {
	coll := h.DB.Collection(name)
	if _, err := coll.DeleteMany(ctx, bson.M{}); err != nil {
		return err
	}
	if len(docs) == 0 {
		return nil
	}
	rows := make([]any, 0, len(docs))
	for _, raw := range docs {
		var d bson.D
		if err := bson.UnmarshalExtJSON(raw, true, &d); err != nil {
			return apierr.Wrap(apierr.Validation, err, "bad archive document in %s", name)
		}
		rows = append(rows, d)
	}
	_, err := coll.InsertMany(ctx, rows)
	return err
}
