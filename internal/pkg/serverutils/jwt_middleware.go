package serverutils

import (
	"fmt"

	"cutclub-be/internal/entity"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	LocalUserId = "user_id"
	LocalRole   = "role"
)

// JwtMiddleware trusts HS256 tokens issued by the auth provider and exposes user_id and role
func JwtMiddleware(secret string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get("Authorization")
		if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(401, "Missing token"))
		}
		tokenStr := authHeader[7:]

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(401, "Invalid token"))
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(401, "Invalid claims"))
		}

		userId, _ := claims["user_id"].(string)
		role, _ := claims["role"].(string)
		if _, err := uuid.Parse(userId); err != nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(401, "Invalid claims"))
		}

		ctx.Locals(LocalUserId, userId)
		ctx.Locals(LocalRole, role)
		return ctx.Next()
	}
}

// RequireRole must run after JwtMiddleware
func RequireRole(roles ...entity.UserRole) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		role, _ := ctx.Locals(LocalRole).(string)
		for _, allowed := range roles {
			if entity.UserRole(role) == allowed {
				return ctx.Next()
			}
		}
		return ctx.Status(fiber.StatusForbidden).JSON(ErrorResponse(403, "Insufficient role"))
	}
}

func Identity(ctx *fiber.Ctx) (entity.Identity, error) {
	userIdStr, _ := ctx.Locals(LocalUserId).(string)
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return entity.Identity{}, fiber.NewError(fiber.StatusUnauthorized, "Invalid identity")
	}
	role, _ := ctx.Locals(LocalRole).(string)
	return entity.Identity{UserId: userId, Role: entity.UserRole(role)}, nil
}

// IssueToken signs a token with the claims JwtMiddleware reads. Used by seeding and tests.
func IssueToken(secret string, userId uuid.UUID, role entity.UserRole) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userId.String(),
		"role":    string(role),
	})
	return token.SignedString([]byte(secret))
}
