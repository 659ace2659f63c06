// Package shared holds the response helper common to all API features:
// every successful realm-scoped call answers with the caller's realm view.
package shared

import (
	"net/http"

	"github.com/reelhub/reelhub/internal/app/system/apierr"
	"github.com/reelhub/reelhub/internal/app/system/httpjson"
	"github.com/reelhub/reelhub/internal/app/system/realmview"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RespondRealmView builds and writes the view of realmID. The view is
// built outside any transaction; it reflects the committed state.
func RespondRealmView(w http.ResponseWriter, r *http.Request, b *realmview.Builder, errlog *apierr.Logger, realmID primitive.ObjectID) {
	view, err := b.Build(r.Context(), realmID)
	if err != nil {
		errlog.Write(w, r, err)
		return
	}
	httpjson.Respond(w, http.StatusOK, view)
}
