package game

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	"github.com/bmin023/scoreboard/internal/cache"
)

// MarkdownCache renders an inject's markdown body against a team's env and
// caches the sanitized HTML, since the HTTP layer re-renders the same
// inject on every poll of a team's inject list.
type MarkdownCache struct {
	backend cache.Cache
}

// NewMarkdownCache wraps backend as an inject-markdown render cache.
func NewMarkdownCache(backend cache.Cache) *MarkdownCache {
	return &MarkdownCache{backend: backend}
}

// envDigest hashes a team's ordered env so a cache key changes whenever a
// template substitution would produce different output.
func envDigest(team *Team) string {
	h := sha256.New()
	for _, p := range team.Env {
		h.Write([]byte(p.Key))
		h.Write([]byte{0})
		h.Write([]byte(p.Value))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

func markdownCacheKey(inject *Inject, team *Team) string {
	return "inject:" + inject.UUID.String() + ":team:" + team.Name + ":env:" + envDigest(team)
}

// Render returns the sanitized HTML for inject's markdown body templated
// against team's env, serving a cached copy when the team's env has not
// changed since the last render.
func (c *MarkdownCache) Render(ctx context.Context, inject *Inject, team *Team) (string, error) {
	key := markdownCacheKey(inject, team)
	if cached, err := c.backend.Get(ctx, key); err == nil {
		return string(cached), nil
	}

	html, err := RenderMarkdown(inject.Markdown, team)
	if err != nil {
		return "", err
	}

	_ = c.backend.Set(ctx, key, []byte(html))
	return html, nil
}

// Invalidate drops the cached render for inject and team, used when an
// admin edits the inject body or a team's env changes out of band.
func (c *MarkdownCache) Invalidate(ctx context.Context, inject *Inject, team *Team) error {
	return c.backend.Delete(ctx, markdownCacheKey(inject, team))
}
