package request

import (
	"encoding/json"
	"io"
	"mime"
	"mime/multipart"
	"testing"
)

func TestMovieCreateRequiredFields(t *testing.T) {
	errs := MovieCreate{Rating: 3}.Validate()
	for _, field := range []string{"title", "description", "director", "language", "image"} {
		if _, ok := errs[field]; !ok {
			t.Errorf("expected %s to be required, got %v", field, errs)
		}
	}
}

func TestMovieUpdateRetainsImage(t *testing.T) {
	errs := MovieUpdate{Title: "Inception", Rating: 4.5}.Validate()
	if len(errs) != 0 {
		t.Fatalf("update without image should be valid, got %v", errs)
	}
}

func TestMovieDraftRatingBounds(t *testing.T) {
	tests := []struct {
		name    string
		rating  float64
		wantErr bool
	}{
		{"zero", 0, false},
		{"upper bound", 5, false},
		{"above", 5.1, true},
		{"negative", -1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := MovieUpdate{Rating: tt.rating}.Validate()
			_, got := errs["rating"]
			if got != tt.wantErr {
				t.Errorf("rating %v: error=%v, want %v (%v)", tt.rating, got, tt.wantErr, errs)
			}
		})
	}
}

func TestEncodeMovieMultipart(t *testing.T) {
	draft := MovieCreate{
		Title:       "Inception",
		Description: "Dreams",
		ReleaseDate: "2010-07-16",
		Rating:      4.5,
		IsPremium:   true,
		Director:    "D1",
		Language:    "L1",
		Actors:      []string{"A1", "A2"},
		Image:       &ImageFile{Filename: "inception.jpg", ContentType: "image/jpeg", Data: []byte("jpeg")},
	}

	body, contentType, err := EncodeMovie(draft)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		t.Fatalf("content type: %v", err)
	}
	form, err := multipart.NewReader(body, params["boundary"]).ReadForm(1 << 20)
	if err != nil {
		t.Fatalf("read form: %v", err)
	}

	want := map[string]string{
		"title":        "Inception",
		"description":  "Dreams",
		"release_date": "2010-07-16",
		"rating":       "4.5",
		"isPremium":    "true",
		"director":     "D1",
		"language":     "L1",
	}
	for key, value := range want {
		if got := form.Value[key]; len(got) != 1 || got[0] != value {
			t.Errorf("%s = %v, want %q", key, got, value)
		}
	}

	var actors []string
	if err := json.Unmarshal([]byte(form.Value["actors"][0]), &actors); err != nil {
		t.Fatalf("actors field: %v", err)
	}
	if len(actors) != 2 || actors[0] != "A1" || actors[1] != "A2" {
		t.Errorf("actors = %v", actors)
	}

	files := form.File["image"]
	if len(files) != 1 || files[0].Filename != "inception.jpg" {
		t.Fatalf("image part = %v", files)
	}
	f, err := files[0].Open()
	if err != nil {
		t.Fatalf("open image: %v", err)
	}
	defer f.Close()
	data, _ := io.ReadAll(f)
	if string(data) != "jpeg" {
		t.Errorf("image data = %q", data)
	}
}

func TestEncodeMovieWithoutImage(t *testing.T) {
	body, contentType, err := EncodeMovie(MovieUpdate{Title: "Tenet"})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	_, params, _ := mime.ParseMediaType(contentType)
	form, err := multipart.NewReader(body, params["boundary"]).ReadForm(1 << 20)
	if err != nil {
		t.Fatalf("read form: %v", err)
	}
	if len(form.File["image"]) != 0 {
		t.Error("update without image must not send an image part")
	}
	if got := form.Value["actors"]; len(got) != 1 || got[0] != "[]" {
		t.Errorf("actors = %v, want []", got)
	}
}

func TestReferenceDraftClean(t *testing.T) {
	draft := ReferenceDraft{Name: "  <b>Christopher Nolan</b> "}.Clean()
	if draft.Name != "Christopher Nolan" {
		t.Errorf("got %q", draft.Name)
	}
	if errs := (ReferenceDraft{Name: ""}).Validate(); errs["name"] == "" {
		t.Errorf("empty name must fail validation, got %v", errs)
	}
}
