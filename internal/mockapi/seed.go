package mockapi

import (
	"movie-catalog/internal/data/entity"
)

// SeedDemo fills the backend with a small catalog: an admin account, one
// regular user and a reviewed movie.
func (b *Backend) SeedDemo(adminToken, userToken string) {
	b.AddAccount(entity.User{Name: "Admin", Email: "admin@example.com", Role: entity.RoleAdmin}, adminToken)
	alice := b.AddAccount(entity.User{Name: "Alice", Email: "alice@example.com"}, userToken)

	nolan := entity.Director{ID: newID(), Name: "Christopher Nolan"}
	english := entity.Language{ID: newID(), Language: "English"}
	leo := entity.Actor{ID: newID(), Name: "Leonardo DiCaprio"}
	page := entity.Actor{ID: newID(), Name: "Elliot Page"}

	b.directors.insert(nolan)
	b.languages.insert(english)
	b.actors.insert(leo)
	b.actors.insert(page)

	movie := movieRecord{
		ID:          newID(),
		Title:       "Inception",
		Description: "A thief who steals corporate secrets through dream-sharing technology.",
		ReleaseDate: "2010-07-16T00:00:00.000Z",
		Rating:      4.8,
		Director:    nolan.ID,
		Language:    english.ID,
		Actors:      []string{leo.ID, page.ID},
		CreatedAt:   b.now().UTC(),
	}
	b.movies.insert(movie)

	b.reviews.insert(reviewRecord{
		ID:        newID(),
		MovieID:   movie.ID,
		UserID:    alice.ID,
		UserName:  alice.Name,
		Rating:    5,
		Comment:   "Mind-bending.",
		CreatedAt: b.now().UTC(),
	})
}
