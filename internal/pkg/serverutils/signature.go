package serverutils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	"github.com/gofiber/fiber/v2"
)

const SignatureHeader = "X-Signature"

func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature rejects requests whose X-Signature is not the hex HMAC-SHA256 of the raw body
func VerifySignature(secret string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if secret == "" {
			return ctx.Status(fiber.StatusServiceUnavailable).JSON(ErrorResponse(503, "Webhook secret not configured"))
		}
		got, err := hex.DecodeString(ctx.Get(SignatureHeader))
		if err != nil || len(got) == 0 {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(401, "Invalid signature"))
		}
		mac := hmac.New(sha256.New, []byte(secret))
		mac.Write(ctx.Body())
		if !hmac.Equal(got, mac.Sum(nil)) {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(401, "Invalid signature"))
		}
		return ctx.Next()
	}
}
