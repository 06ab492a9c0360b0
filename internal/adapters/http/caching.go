package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CachingMiddleware sets Cache-Control on GET responses that did not set
// their own. Session state is never cached by intermediaries.
func CachingMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		if c.Method() != fiber.MethodGet || c.Get(fiber.HeaderCacheControl) != "" {
			return err
		}
		if cc := cacheControlFor(c.Path()); cc != "" {
			c.Set(fiber.HeaderCacheControl, cc)
		}
		return err
	}
}

func cacheControlFor(path string) string {
	switch {
	case path == "/v1/health" || path == "/v1/ready":
		return "public, max-age=10"
	case path == "/metrics":
		return "no-cache"
	case strings.HasPrefix(path, "/v1/sessions"):
		return "no-store"
	case path == "/v1/projects" || strings.HasPrefix(path, "/v1/projects/in-bounds"):
		return "public, max-age=60"
	case strings.HasPrefix(path, "/v1/projects/"):
		return "public, max-age=300"
	case strings.HasPrefix(path, "/docs"):
		return "public, max-age=3600"
	}
	return ""
}
