// internal/domain/models/view.go
package models

// API view shapes. Every successful API call (other than login/logout)
// returns the acting user's RealmView; related entities are referenced by
// id lists, never embedded.

type RealmView struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Users    []UserView    `json:"users"`
	Groups   []GroupView   `json:"groups"`
	Movies   []MovieView   `json:"movies"`
	Ratings  []RatingView  `json:"ratings"`
	Requests []RequestView `json:"requests"`
}

type UserView struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Role     string   `json:"role"` // comma-joined tag set
	Token    string   `json:"token,omitempty"`
	Groups   []string `json:"groups"`
	Requests []string `json:"requests"`
	Ratings  []string `json:"ratings"`
}

type GroupView struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Owner    string   `json:"owner"`
	Members  []string `json:"members"`
	Requests []string `json:"requests"`
}

type MovieView struct {
	ID       string   `json:"id"`
	IMDB     string   `json:"imdb"`
	Name     string   `json:"name"`
	Director string   `json:"director"`
	Actors   string   `json:"actors"`
	Year     int      `json:"year"`
	Minutes  int      `json:"minutes"`
	Ratings  []string `json:"ratings"`
}

type RatingView struct {
	ID     string `json:"id"`
	User   string `json:"user"`
	Movie  string `json:"movie"`
	Rating int    `json:"rating"`
	Labels string `json:"labels"`
}

type RequestView struct {
	ID     string `json:"id"`
	User   string `json:"user"`
	Group  string `json:"group"`
	Status string `json:"status"`
}

// TokenView is the login response body.
type TokenView struct {
	Token string `json:"token"`
}
