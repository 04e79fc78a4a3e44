package models

// User roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

/*

User is a roster member of the review community.

ID: primary identifier, assigned at seed time
Reviews: reviews written by this user, most recent first
Watchlist: movie snapshots captured when the user saved them; a snapshot
is not reconciled against later catalog state
Following/Followers: directed follow edges by user id; for every A
following B, B's Followers contains A (kept symmetric by the social
graph store, never edited independently)

*/

type User struct {
	ID                string   `json:"id"`
	Username          string   `json:"username"`
	Email             string   `json:"email"`
	ProfilePictureURL string   `json:"profilePictureUrl"`
	JoinDate          string   `json:"joinDate"`
	Role              string   `json:"role"`
	Reviews           []Review `json:"reviews"`
	Watchlist         []Movie  `json:"watchlist"`
	Following         []string `json:"following"`
	Followers         []string `json:"followers"`
}

// IsAdmin reports whether the user holds the admin role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Clone returns a deep copy so callers cannot mutate store-owned state
// through shared slices.
func (u User) Clone() User {
	c := u
	c.Reviews = append([]Review(nil), u.Reviews...)
	c.Watchlist = make([]Movie, len(u.Watchlist))
	for i, m := range u.Watchlist {
		c.Watchlist[i] = m.Clone()
	}
	c.Following = append([]string(nil), u.Following...)
	c.Followers = append([]string(nil), u.Followers...)
	return c
}

// Clone returns a deep copy of the movie, including embedded reviews.
func (m Movie) Clone() Movie {
	c := m
	c.Cast = append([]string(nil), m.Cast...)
	c.Reviews = append([]Review(nil), m.Reviews...)
	return c
}
