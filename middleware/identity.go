package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ClientIdentity resolves the caller's IP (honoring X-Forwarded-For from the
// frontend proxy) and stashes it in ctx locals. Handlers combine it with an
// optional fanId from the body to build the identity key used for vote
// uniqueness and question quotas.
func ClientIdentity() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ip := c.Get("X-Forwarded-For")
		if ip != "" {
			// First hop is the client; the rest are proxies.
			if idx := strings.Index(ip, ","); idx >= 0 {
				ip = ip[:idx]
			}
			ip = strings.TrimSpace(ip)
		}
		if ip == "" {
			ip = c.IP()
		}

		c.Locals("client_ip", ip)
		return c.Next()
	}
}

// IdentityKey builds the uniqueness key for an optionally identified caller:
// the fan's id when present, otherwise an ip-derived key.
func IdentityKey(c *fiber.Ctx, fanID *string) string {
	if fanID != nil && *fanID != "" {
		return *fanID
	}
	ip, _ := c.Locals("client_ip").(string)
	if ip == "" {
		ip = c.IP()
	}
	return "ip:" + ip
}
