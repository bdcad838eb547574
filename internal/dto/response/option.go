package response

// Option is one entry of a dependent select.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}
