package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

type Review struct {
	ID        string    `json:"_id"`
	MovieID   string    `json:"movie_id,omitempty"`
	User      Author    `json:"user"`
	Rating    int       `json:"rating"` // 1-5
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

func (r Review) EntityID() string       { return r.ID }
func (r Review) DisplayName() string    { return r.User.Name }
func (r Review) SearchFields() []string { return []string{r.User.Name, r.Comment} }

// Author is the reviewing user. Reviews written by older clients carry only
// the display name as a plain string; newer records are populated objects.
type Author struct {
	ID   string `json:"_id,omitempty"`
	Name string `json:"name,omitempty"`
}

func (a *Author) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*a = Author{}
		return nil
	}

	switch data[0] {
	case '"':
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		*a = Author{Name: name}
		return nil
	case '{':
		type plain Author
		var p plain
		if err := json.Unmarshal(data, &p); err != nil {
			return err
		}
		*a = Author(p)
		return nil
	}
	return fmt.Errorf("entity: review user must be a string or object, got %s", string(data))
}
