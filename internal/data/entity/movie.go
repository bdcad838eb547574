package entity

type Movie struct {
	ID          string   `json:"_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	ReleaseDate string   `json:"release_date"`
	Rating      float64  `json:"rating"`
	IsPremium   bool     `json:"isPremium"`
	Director    Ref      `json:"director"`
	Language    Ref      `json:"language"`
	Actors      []Ref    `json:"actors"`
	Reviews     []Review `json:"reviews"`
}

func (m Movie) EntityID() string       { return m.ID }
func (m Movie) DisplayName() string    { return m.Title }
func (m Movie) SearchFields() []string { return []string{m.Title} }

// ActorIDs returns the movie's actor identifiers.
func (m Movie) ActorIDs() []string {
	return RefIDs(m.Actors)
}
