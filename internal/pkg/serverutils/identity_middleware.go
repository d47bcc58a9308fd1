package serverutils

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	ClientIdHeader = "X-Client-Id"
	ClientIdCookie = "hm_user_id"
)

// IdentityMiddleware resolves the opaque per-client identity: header first,
// then cookie, otherwise a fresh UUID handed back as a cookie. Identity is
// anonymous and independent of any sign-in state.
func IdentityMiddleware(ctx *fiber.Ctx) error {
	id := ctx.Get(ClientIdHeader)
	if id == "" {
		id = ctx.Cookies(ClientIdCookie)
	}
	if id == "" {
		id = uuid.NewString()
		ctx.Cookie(&fiber.Cookie{
			Name:     ClientIdCookie,
			Value:    id,
			Expires:  time.Now().AddDate(1, 0, 0),
			HTTPOnly: true,
			SameSite: "Lax",
		})
	}
	ctx.Locals("user_id", id)
	return ctx.Next()
}
