package request

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strconv"

	"movie-catalog/pkg/utils"
)

// ImageFile is a poster picked locally and not yet uploaded.
type ImageFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// MovieFields is the text part of a movie form.
type MovieFields struct {
	Title       string
	Description string
	ReleaseDate string
	Rating      float64
	IsPremium   bool
	Director    string
	Language    string
	Actors      []string
}

// MovieDraft is either a MovieCreate or a MovieUpdate.
type MovieDraft interface {
	Fields() MovieFields
	Clean() MovieDraft
	Upload() *ImageFile
	Validate() map[string]string
	isMovieDraft()
}

// MovieCreate requires every field a new movie needs, including the poster.
type MovieCreate struct {
	Title       string     `json:"title" validate:"required,max=200"`
	Description string     `json:"description" validate:"required"`
	ReleaseDate string     `json:"release_date" validate:"omitempty,datetime=2006-01-02"`
	Rating      float64    `json:"rating" validate:"gte=0,lte=5"`
	IsPremium   bool       `json:"isPremium"`
	Director    string     `json:"director" validate:"required"`
	Language    string     `json:"language" validate:"required"`
	Actors      []string   `json:"actors"`
	Image       *ImageFile `json:"image" validate:"required"`
}

// MovieUpdate sends the whole form again. A nil Image keeps the current poster.
type MovieUpdate struct {
	Title       string     `json:"title" validate:"max=200"`
	Description string     `json:"description"`
	ReleaseDate string     `json:"release_date" validate:"omitempty,datetime=2006-01-02"`
	Rating      float64    `json:"rating" validate:"gte=0,lte=5"`
	IsPremium   bool       `json:"isPremium"`
	Director    string     `json:"director"`
	Language    string     `json:"language"`
	Actors      []string   `json:"actors"`
	Image       *ImageFile `json:"image,omitempty"`
}

func (m MovieCreate) Fields() MovieFields {
	return MovieFields{
		Title:       m.Title,
		Description: m.Description,
		ReleaseDate: m.ReleaseDate,
		Rating:      m.Rating,
		IsPremium:   m.IsPremium,
		Director:    m.Director,
		Language:    m.Language,
		Actors:      m.Actors,
	}
}

func (m MovieCreate) Upload() *ImageFile { return m.Image }

func (m MovieCreate) Clean() MovieDraft {
	m.Title = utils.CleanText(m.Title)
	m.Description = utils.CleanText(m.Description)
	return m
}

func (m MovieCreate) Validate() map[string]string {
	errs := utils.ValidateStruct(m)
	if m.Image != nil && len(m.Image.Data) == 0 {
		if errs == nil {
			errs = make(map[string]string)
		}
		errs["image"] = "This field is required"
	}
	return errs
}

func (MovieCreate) isMovieDraft() {}

func (m MovieUpdate) Fields() MovieFields {
	return MovieFields{
		Title:       m.Title,
		Description: m.Description,
		ReleaseDate: m.ReleaseDate,
		Rating:      m.Rating,
		IsPremium:   m.IsPremium,
		Director:    m.Director,
		Language:    m.Language,
		Actors:      m.Actors,
	}
}

func (m MovieUpdate) Upload() *ImageFile { return m.Image }

func (m MovieUpdate) Clean() MovieDraft {
	m.Title = utils.CleanText(m.Title)
	m.Description = utils.CleanText(m.Description)
	return m
}

func (m MovieUpdate) Validate() map[string]string {
	return utils.ValidateStruct(m)
}

func (MovieUpdate) isMovieDraft() {}

// EncodeMovie writes draft as a multipart form and returns the body and its
// content type. Actors travel as a JSON array in a single text field.
func EncodeMovie(draft MovieDraft) (*bytes.Buffer, string, error) {
	fields := draft.Fields()

	actors := fields.Actors
	if actors == nil {
		actors = []string{}
	}
	actorsJSON, err := json.Marshal(actors)
	if err != nil {
		return nil, "", fmt.Errorf("encode actors: %w", err)
	}

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	values := []struct{ key, value string }{
		{"title", fields.Title},
		{"description", fields.Description},
		{"release_date", fields.ReleaseDate},
		{"rating", strconv.FormatFloat(fields.Rating, 'f', -1, 64)},
		{"isPremium", strconv.FormatBool(fields.IsPremium)},
		{"director", fields.Director},
		{"language", fields.Language},
		{"actors", string(actorsJSON)},
	}
	for _, v := range values {
		if err := w.WriteField(v.key, v.value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", v.key, err)
		}
	}

	if image := draft.Upload(); image != nil {
		if err := writeImage(w, image); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart: %w", err)
	}
	return body, w.FormDataContentType(), nil
}

func writeImage(w *multipart.Writer, image *ImageFile) error {
	filename := image.Filename
	if filename == "" {
		filename = "poster"
	}
	contentType := image.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, filename))
	header.Set("Content-Type", contentType)

	part, err := w.CreatePart(header)
	if err != nil {
		return fmt.Errorf("create image part: %w", err)
	}
	if _, err := io.Copy(part, bytes.NewReader(image.Data)); err != nil {
		return fmt.Errorf("write image: %w", err)
	}
	return nil
}
