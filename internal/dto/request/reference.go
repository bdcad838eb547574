package request

import "movie-catalog/pkg/utils"

// ReferenceDraft is the create/update body shared by directors, actors and
// languages.
type ReferenceDraft struct {
	Name string `json:"name" validate:"required,max=200"`
}

// Clean returns the draft with markup stripped from the name.
func (d ReferenceDraft) Clean() ReferenceDraft {
	return ReferenceDraft{Name: utils.CleanText(d.Name)}
}

func (d ReferenceDraft) Validate() map[string]string {
	return utils.ValidateStruct(d)
}
