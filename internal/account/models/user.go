package models

// User is a row in the shared users table. The password column holds a bcrypt
// hash and is never serialized.
type User struct {
	ID             string     `json:"id"`
	Password       string     `json:"-"`
	Name           string     `json:"name"`
	SubscribedOtt  StringList `json:"subscribedOtt"`
	FavoriteGenres StringList `json:"favoriteGenres"`
}

// Profile is the public view of a user returned by login and lookup.
type Profile struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	SubscribedOtt  StringList `json:"subscribedOtt"`
	FavoriteGenres StringList `json:"favoriteGenres"`
}

// Profile strips the credential fields from a user.
func (u *User) Profile() *Profile {
	p := &Profile{
		ID:             u.ID,
		Name:           u.Name,
		SubscribedOtt:  u.SubscribedOtt,
		FavoriteGenres: u.FavoriteGenres,
	}
	if p.SubscribedOtt == nil {
		p.SubscribedOtt = StringList{}
	}
	if p.FavoriteGenres == nil {
		p.FavoriteGenres = StringList{}
	}
	return p
}

// RegisterRequest is the request body for registration. The list fields are
// accepted under both their camelCase and snake_case spellings.
type RegisterRequest struct {
	ID                  string     `json:"id"`
	Password            string     `json:"password"`
	Name                string     `json:"name"`
	SubscribedOtt       StringList `json:"subscribedOtt"`
	SubscribedOttSnake  StringList `json:"subscribed_ott"`
	FavoriteGenres      StringList `json:"favoriteGenres"`
	FavoriteGenresSnake StringList `json:"favorite_genres"`
}

// Normalize folds the snake_case aliases into the canonical fields. The
// camelCase spelling wins when both are present; absent lists become empty.
func (r *RegisterRequest) Normalize() {
	if r.SubscribedOtt == nil {
		r.SubscribedOtt = r.SubscribedOttSnake
	}
	if r.FavoriteGenres == nil {
		r.FavoriteGenres = r.FavoriteGenresSnake
	}
	if r.SubscribedOtt == nil {
		r.SubscribedOtt = StringList{}
	}
	if r.FavoriteGenres == nil {
		r.FavoriteGenres = StringList{}
	}
}

// LoginRequest is the request body for login.
type LoginRequest struct {
	ID       string `json:"id"`
	Password string `json:"password"`
}
