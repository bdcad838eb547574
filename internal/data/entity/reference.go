package entity

type Director struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

func (d Director) EntityID() string       { return d.ID }
func (d Director) DisplayName() string    { return d.Name }
func (d Director) SearchFields() []string { return []string{d.Name} }

type Actor struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

func (a Actor) EntityID() string       { return a.ID }
func (a Actor) DisplayName() string    { return a.Name }
func (a Actor) SearchFields() []string { return []string{a.Name} }

// Language may carry its label in either field; older records use "language".
type Language struct {
	ID       string `json:"_id"`
	Name     string `json:"name,omitempty"`
	Language string `json:"language,omitempty"`
}

func (l Language) EntityID() string { return l.ID }

func (l Language) DisplayName() string {
	if l.Language != "" {
		return l.Language
	}
	return l.Name
}

func (l Language) SearchFields() []string { return []string{l.Name, l.Language} }
