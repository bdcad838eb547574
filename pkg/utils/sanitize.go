package utils

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

const maxCleanPasses = 8

var (
	strictPolicy = bluemonday.StrictPolicy()
	angleStrip   = strings.NewReplacer("<", "", ">", "")
)

// CleanText strips markup from user-entered text and trims surrounding space.
// Entities are decoded before each sanitize pass so encoded tags are stripped
// too, and the text is cleaned until it stops changing. The result holds the
// literal characters the user typed and CleanText(CleanText(s)) == CleanText(s).
func CleanText(s string) string {
	for range maxCleanPasses {
		next := cleanPass(s)
		if next == s {
			return s
		}
		s = next
	}
	return strings.TrimSpace(angleStrip.Replace(s))
}

func cleanPass(s string) string {
	return strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(html.UnescapeString(s))))
}
