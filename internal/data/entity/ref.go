package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Ref is a reference to another entity by identifier. The catalog API sends
// references either as a bare id or populated as {"_id": ..., "name": ...};
// Ref accepts both and always marshals back to the bare id.
type Ref struct {
	ID   string
	Name string
}

func (r Ref) IsZero() bool {
	return r.ID == ""
}

func (r Ref) MarshalJSON() ([]byte, error) {
	if r.ID == "" {
		return []byte("null"), nil
	}
	return json.Marshal(r.ID)
}

func (r *Ref) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*r = Ref{}
		return nil
	}

	switch data[0] {
	case '"':
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		*r = Ref{ID: id}
		return nil
	case '{':
		var populated struct {
			MongoID  string `json:"_id"`
			ID       string `json:"id"`
			Name     string `json:"name"`
			Language string `json:"language"`
		}
		if err := json.Unmarshal(data, &populated); err != nil {
			return err
		}
		id := populated.MongoID
		if id == "" {
			id = populated.ID
		}
		name := populated.Name
		if name == "" {
			name = populated.Language
		}
		*r = Ref{ID: id, Name: name}
		return nil
	}
	return fmt.Errorf("entity: reference must be a string or object, got %s", string(data))
}

// RefIDs returns the identifiers of refs in order, skipping empty ones.
func RefIDs(refs []Ref) []string {
	ids := make([]string, 0, len(refs))
	for _, ref := range refs {
		if ref.ID != "" {
			ids = append(ids, ref.ID)
		}
	}
	return ids
}
