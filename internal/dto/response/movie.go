package response

import "movie-catalog/internal/data/entity"

// NamedRef is a reference resolved to something printable.
type NamedRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// MovieView is a movie with its references denormalized for display.
type MovieView struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	ReleaseDate string          `json:"release_date"`
	Rating      float64         `json:"rating"`
	IsPremium   bool            `json:"isPremium"`
	Director    NamedRef        `json:"director"`
	Language    NamedRef        `json:"language"`
	Actors      []NamedRef      `json:"actors"`
	Reviews     []entity.Review `json:"reviews"`
}

// ActorNames returns the resolved actor names in order.
func (v MovieView) ActorNames() []string {
	names := make([]string, len(v.Actors))
	for i, a := range v.Actors {
		names[i] = a.Name
	}
	return names
}
