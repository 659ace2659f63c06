// Package realmview assembles the snapshot of a realm that every
// successful API call returns. Entities reference each other by id
// lists; nothing is embedded.
package realmview

import (
	"context"
	"errors"

	"github.com/reelhub/reelhub/internal/app/store/groups"
	"github.com/reelhub/reelhub/internal/app/store/members"
	"github.com/reelhub/reelhub/internal/app/store/movies"
	"github.com/reelhub/reelhub/internal/app/store/ratings"
	"github.com/reelhub/reelhub/internal/app/store/realms"
	"github.com/reelhub/reelhub/internal/app/store/requests"
	"github.com/reelhub/reelhub/internal/app/store/users"
	"github.com/reelhub/reelhub/internal/app/system/apierr"
	"github.com/reelhub/reelhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Builder loads a realm's entities and cross-links them into a view.
type Builder struct {
	realms   *realmstore.Store
	users    *userstore.Store
	groups   *groupstore.Store
	members  *memberstore.Store
	movies   *moviestore.Store
	ratings  *ratingstore.Store
	requests *requeststore.Store
}

func New(db *mongo.Database) *Builder {
	return &Builder{
		realms:   realmstore.New(db),
		users:    userstore.New(db),
		groups:   groupstore.New(db),
		members:  memberstore.New(db),
		movies:   moviestore.New(db),
		ratings:  ratingstore.New(db),
		requests: requeststore.New(db),
	}
}

// Build returns the full view of one realm.
func (b *Builder) Build(ctx context.Context, realmID primitive.ObjectID) (*models.RealmView, error) {
	realm, err := b.realms.GetByID(ctx, realmID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apierr.New(apierr.NotFound, "realm %s not found", realmID.Hex())
		}
		return nil, err
	}

	users, err := b.users.ListByRealm(ctx, realmID)
	if err != nil {
		return nil, err
	}
	groups, err := b.groups.ListByRealm(ctx, realmID)
	if err != nil {
		return nil, err
	}
	members, err := b.members.ListByRealm(ctx, realmID)
	if err != nil {
		return nil, err
	}
	movies, err := b.movies.ListByRealm(ctx, realmID)
	if err != nil {
		return nil, err
	}
	ratings, err := b.ratings.ListByRealm(ctx, realmID)
	if err != nil {
		return nil, err
	}
	requests, err := b.requests.ListByRealm(ctx, realmID)
	if err != nil {
		return nil, err
	}

	view := &models.RealmView{
		ID:       realm.ID.Hex(),
		Name:     realm.Name,
		Users:    make([]models.UserView, 0, len(users)),
		Groups:   make([]models.GroupView, 0, len(groups)),
		Movies:   make([]models.MovieView, 0, len(movies)),
		Ratings:  make([]models.RatingView, 0, len(ratings)),
		Requests: make([]models.RequestView, 0, len(requests)),
	}

	// Cross-reference tables, keyed by entity id.
	userGroups := map[primitive.ObjectID][]string{}
	groupMembers := map[primitive.ObjectID][]string{}
	for _, m := range members {
		userGroups[m.UserID] = append(userGroups[m.UserID], m.GroupID.Hex())
		groupMembers[m.GroupID] = append(groupMembers[m.GroupID], m.UserID.Hex())
	}

	userRequests := map[primitive.ObjectID][]string{}
	groupRequests := map[primitive.ObjectID][]string{}
	for _, r := range requests {
		userRequests[r.UserID] = append(userRequests[r.UserID], r.ID.Hex())
		groupRequests[r.GroupID] = append(groupRequests[r.GroupID], r.ID.Hex())
	}

	userRatings := map[primitive.ObjectID][]string{}
	movieRatings := map[primitive.ObjectID][]string{}
	for _, r := range ratings {
		userRatings[r.UserID] = append(userRatings[r.UserID], r.ID.Hex())
		movieRatings[r.MovieID] = append(movieRatings[r.MovieID], r.ID.Hex())
	}

	for _, u := range users {
		view.Users = append(view.Users, models.UserView{
			ID:       u.ID.Hex(),
			Username: u.Username,
			Role:     u.Roles,
			Token:    u.Token,
			Groups:   emptyIfNil(userGroups[u.ID]),
			Requests: emptyIfNil(userRequests[u.ID]),
			Ratings:  emptyIfNil(userRatings[u.ID]),
		})
	}
	for _, g := range groups {
		view.Groups = append(view.Groups, models.GroupView{
			ID:       g.ID.Hex(),
			Name:     g.Name,
			Owner:    g.OwnerID.Hex(),
			Members:  emptyIfNil(groupMembers[g.ID]),
			Requests: emptyIfNil(groupRequests[g.ID]),
		})
	}
	for _, m := range movies {
		view.Movies = append(view.Movies, models.MovieView{
			ID:       m.ID.Hex(),
			IMDB:     m.IMDB,
			Name:     m.Name,
			Director: m.Director,
			Actors:   m.Actors,
			Year:     m.Year,
			Minutes:  m.Minutes,
			Ratings:  emptyIfNil(movieRatings[m.ID]),
		})
	}
	for _, r := range ratings {
		view.Ratings = append(view.Ratings, models.RatingView{
			ID:     r.ID.Hex(),
			User:   r.UserID.Hex(),
			Movie:  r.MovieID.Hex(),
			Rating: r.Rating,
			Labels: r.Labels,
		})
	}
	for _, r := range requests {
		view.Requests = append(view.Requests, models.RequestView{
			ID:     r.ID.Hex(),
			User:   r.UserID.Hex(),
			Group:  r.GroupID.Hex(),
			Status: string(r.Status),
		})
	}

	return view, nil
}

// emptyIfNil keeps id lists as [] rather than null in the JSON view.
func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
