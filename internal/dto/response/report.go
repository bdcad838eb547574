package response

import "time"

type SectionResult struct {
	Section string `json:"section"`
	Loaded  bool   `json:"loaded"`
	Count   int    `json:"count"`
	Error   string `json:"error,omitempty"`
}

// LoadReport summarizes the initial bulk fetch of the admin view.
type LoadReport struct {
	Sections []SectionResult `json:"sections"`
	Duration time.Duration   `json:"duration"`
}

// Failed returns the sections whose fetch did not succeed.
func (r LoadReport) Failed() []SectionResult {
	var failed []SectionResult
	for _, s := range r.Sections {
		if !s.Loaded {
			failed = append(failed, s)
		}
	}
	return failed
}

// Result looks up a section by name.
func (r LoadReport) Result(section string) (SectionResult, bool) {
	for _, s := range r.Sections {
		if s.Section == section {
			return s, true
		}
	}
	return SectionResult{}, false
}
