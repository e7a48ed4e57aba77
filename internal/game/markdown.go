package game

import (
	"bytes"
	"regexp"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

// templateToken matches {{KEY}} placeholders in inject markdown bodies.
var templateToken = regexp.MustCompile(`\{\{([A-Za-z0-9_]+)\}\}`)

// templateMarkdown substitutes {{KEY}} tokens in md with values from the
// team's env. Keys with no matching env entry are left as-is.
func templateMarkdown(md string, team *Team) string {
	return templateToken.ReplaceAllStringFunc(md, func(token string) string {
		key := templateToken.FindStringSubmatch(token)[1]
		if v, ok := team.envValue(key); ok {
			return v
		}
		return token
	})
}

var htmlSanitizer = bluemonday.UGCPolicy()

// RenderMarkdown templates an inject's markdown body against a team's env
// and renders it to sanitized HTML. The sanitization pass matters because
// the templated input can include team-controlled env values.
func RenderMarkdown(md string, team *Team) (string, error) {
	templated := templateMarkdown(md, team)

	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(templated), &buf); err != nil {
		return "", err
	}
	return htmlSanitizer.Sanitize(buf.String()), nil
}
