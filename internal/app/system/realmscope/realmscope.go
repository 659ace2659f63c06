// internal/app/system/realmscope/realmscope.go
//
// Cross-realm references are the highest-risk defect class in this system:
// a handler that forgets the check becomes a confused deputy across
// tenants. The guard is therefore a single structural gate that every
// entity loaded from a request-supplied id passes through, not a
// per-handler reminder. Only ROOT realm-lifecycle and backup/restore
// operations, which act above realm scope, skip it.
package realmscope

import (
	"github.com/reelhub/reelhub/internal/app/system/apierr"
	"github.com/reelhub/reelhub/internal/app/system/authz"
	"github.com/reelhub/reelhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Scoped is any entity that belongs to exactly one realm.
type Scoped interface {
	RealmRef() primitive.ObjectID
}

// SameRealm reports whether two entities share a realm.
func SameRealm(a, b Scoped) bool {
	return a.RealmRef() == b.RealmRef()
}

// Ensure fails with a scope error when the referenced entity does not
// belong to the acting user's realm.
func Ensure(acting *models.User, referenced Scoped) error {
	if acting.RealmID != referenced.RealmRef() {
		return apierr.New(apierr.Scope, "entity belongs to another realm")
	}
	return nil
}

// EnsureOrRoot is Ensure with the ROOT bypass: a ROOT user may reference
// entities in any realm for cross-realm administrative calls.
func EnsureOrRoot(acting *models.User, referenced Scoped) error {
	if authz.IsRoot(acting) {
		return nil
	}
	return Ensure(acting, referenced)
}
