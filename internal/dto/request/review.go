package request

import "movie-catalog/pkg/utils"

type ReviewDraft struct {
	MovieID string `json:"movie_id" validate:"required"`
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=2000"`
}

func (d ReviewDraft) Clean() ReviewDraft {
	d.Comment = utils.CleanText(d.Comment)
	return d
}

func (d ReviewDraft) Validate() map[string]string {
	return utils.ValidateStruct(d)
}

// ReviewPatch is the body of a review edit. It carries the same fields as a
// create; the comment may be empty.
type ReviewPatch struct {
	MovieID string `json:"movie_id" validate:"required"`
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=2000"`
}

func (p ReviewPatch) Clean() ReviewPatch {
	p.Comment = utils.CleanText(p.Comment)
	return p
}

func (p ReviewPatch) Validate() map[string]string {
	return utils.ValidateStruct(p)
}
