// internal/domain/models/request.go
package models

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RequestStatus is the state of a group-membership negotiation.
type RequestStatus string

const (
	// AwaitingGroup: the user applied; the group side must approve.
	AwaitingGroup RequestStatus = "AWAITING_GROUP"
	// AwaitingUser: the group owner invited; the user must approve.
	AwaitingUser RequestStatus = "AWAITING_USER"
	// Accepted and Rejected are terminal and never stored: resolving a
	// request deletes the record (Accepted additionally creates the
	// membership edge).
	Accepted RequestStatus = "ACCEPTED"
	Rejected RequestStatus = "REJECTED"
)

// ParseRequestStatus parses a status name case-insensitively.
func ParseRequestStatus(s string) (RequestStatus, error) {
	switch RequestStatus(strings.ToUpper(strings.TrimSpace(s))) {
	case AwaitingGroup:
		return AwaitingGroup, nil
	case AwaitingUser:
		return AwaitingUser, nil
	case Accepted:
		return Accepted, nil
	case Rejected:
		return Rejected, nil
	}
	return "", fmt.Errorf("unknown request status %q", s)
}

// Request is an in-flight negotiation to add a user to a group.
// At most one open request exists per (user, group) pair; re-submission
// overwrites the prior one under the same id.
type Request struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RealmID primitive.ObjectID `bson:"realm_id" json:"realm_id"`
	UserID  primitive.ObjectID `bson:"user_id" json:"user"`
	GroupID primitive.ObjectID `bson:"group_id" json:"group"`
	Status  RequestStatus      `bson:"status" json:"status"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// RealmRef implements realmscope.Scoped.
func (r Request) RealmRef() primitive.ObjectID { return r.RealmID }
