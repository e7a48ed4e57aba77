package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateMarkdownSubstitutesKnownKeys(t *testing.T) {
	team := NewTeam("alpha", nil)
	team.Env = []EnvPair{{Key: "TARGET_HOST", Value: "10.0.0.5"}}

	out := templateMarkdown("Attack {{TARGET_HOST}} on port 80", team)
	assert.Equal(t, "Attack 10.0.0.5 on port 80", out)
}

func TestTemplateMarkdownLeavesUnknownKeysAsIs(t *testing.T) {
	team := NewTeam("alpha", nil)
	out := templateMarkdown("Find the {{MYSTERY}} service", team)
	assert.Equal(t, "Find the {{MYSTERY}} service", out)
}

func TestRenderMarkdownConvertsAndSanitizes(t *testing.T) {
	team := NewTeam("alpha", nil)
	team.Env = []EnvPair{{Key: "NOTE", Value: "<script>alert(1)</script>"}}

	html, err := RenderMarkdown("# Briefing\n\nSee note: {{NOTE}}", team)
	require.NoError(t, err)
	assert.Contains(t, html, "<h1>Briefing</h1>")
	assert.NotContains(t, html, "<script>")
}
