package entity

// Entity is anything mirrored by a reference collection: it has a
// server-assigned identifier and a label for dependent selects.
type Entity interface {
	EntityID() string
	DisplayName() string
}

// Searchable exposes the textual fields a search box matches against.
type Searchable interface {
	SearchFields() []string
}

// Record is the constraint the generic stores are instantiated with.
type Record interface {
	Entity
	Searchable
}
