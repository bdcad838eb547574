package entity

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

type User struct {
	ID     string   `json:"_id"`
	Name   string   `json:"name"`
	Email  string   `json:"email"`
	Role   UserRole `json:"role"`
	Status string   `json:"status,omitempty"`
}

func (u User) EntityID() string       { return u.ID }
func (u User) DisplayName() string    { return u.Name }
func (u User) SearchFields() []string { return []string{u.Name, u.Email} }
