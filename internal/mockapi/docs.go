package mockapi

import "time"

// movieRecord is the stored form of a movie: references are ids only.
type movieRecord struct {
	ID          string
	Title       string
	Description string
	Image       string
	ReleaseDate string
	Rating      float64
	IsPremium   bool
	Director    string
	Language    string
	Actors      []string
	CreatedAt   time.Time
}

func (m movieRecord) EntityID() string    { return m.ID }
func (m movieRecord) DisplayName() string { return m.Title }

type reviewRecord struct {
	ID        string
	MovieID   string
	UserID    string
	UserName  string
	Rating    int
	Comment   string
	CreatedAt time.Time
}

func (r reviewRecord) EntityID() string    { return r.ID }
func (r reviewRecord) DisplayName() string { return r.UserName }

// Documents below are what the API serializes. Movie references are
// populated; a reference whose target is gone is null, and missing actors are
// dropped from the array.

type refDoc struct {
	ID       string `json:"_id"`
	Name     string `json:"name,omitempty"`
	Language string `json:"language,omitempty"`
}

type authorDoc struct {
	ID   string `json:"_id"`
	Name string `json:"name,omitempty"`
}

type reviewDoc struct {
	ID        string    `json:"_id"`
	MovieID   string    `json:"movie_id"`
	User      authorDoc `json:"user"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

type movieDoc struct {
	ID          string      `json:"_id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Image       string      `json:"image"`
	ReleaseDate string      `json:"release_date"`
	Rating      float64     `json:"rating"`
	IsPremium   bool        `json:"isPremium"`
	Director    *refDoc     `json:"director"`
	Language    *refDoc     `json:"language"`
	Actors      []refDoc    `json:"actors"`
	Reviews     []reviewDoc `json:"reviews"`
	CreatedAt   time.Time   `json:"createdAt"`
}

type usersDoc struct {
	Users any `json:"users"`
}

type messageDoc struct {
	Message string `json:"message"`
}

func toReviewDoc(r reviewRecord) reviewDoc {
	return reviewDoc{
		ID:        r.ID,
		MovieID:   r.MovieID,
		User:      authorDoc{ID: r.UserID, Name: r.UserName},
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}
