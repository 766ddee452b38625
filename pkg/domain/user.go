package domain

// User represents a registered Voltcart customer.
//
// The backend is the source of truth for every field; this struct mirrors the
// flat shape returned by the auth and admin endpoints.
type User struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}

// ProfilePatch carries the fields a user may change on their own profile.
// Zero-valued fields are left untouched by a merge.
type ProfilePatch struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// Apply shallow-merges the patch into u, returning the merged copy.
func (p ProfilePatch) Apply(u User) User {
	if p.Name != "" {
		u.Name = p.Name
	}
	if p.Email != "" {
		u.Email = p.Email
	}
	return u
}
