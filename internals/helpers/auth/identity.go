// file: internals/helpers/auth/identity.go
package helperAuth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Keys di fiber locals, diisi oleh middleware auth_school.
const (
	LocSchoolID = "school_id"
	LocUserID   = "user_id"
	LocUserName = "user_name"
	LocRole     = "role"
)

// Identity adalah konteks pemanggil yang sudah terotentikasi.
// Core keuangan tidak pernah memverifikasi kredensial sendiri; semua
// operasi hanya di-scope dengan SchoolID dari sini.
type Identity struct {
	SchoolID uuid.UUID
	UserID   uuid.UUID
	UserName string
	Role     string
}

func uuidFromLocals(c *fiber.Ctx, key string) (uuid.UUID, error) {
	v := c.Locals(key)
	if v == nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, key+" tidak ditemukan di token")
	}
	switch t := v.(type) {
	case uuid.UUID:
		return t, nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, key+" kosong di token")
		}
		id, err := uuid.Parse(s)
		if err != nil {
			return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Format "+key+" tidak valid di token")
		}
		return id, nil
	}
	return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Format "+key+" tidak valid di token")
}

func stringFromLocals(c *fiber.Ctx, key string) string {
	if v, ok := c.Locals(key).(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

func GetSchoolIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	return uuidFromLocals(c, LocSchoolID)
}

func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	return uuidFromLocals(c, LocUserID)
}

func GetUserNameFromToken(c *fiber.Ctx) string {
	return stringFromLocals(c, LocUserName)
}

func GetRoleFromToken(c *fiber.Ctx) string {
	return stringFromLocals(c, LocRole)
}

// GetIdentityFromToken merangkum seluruh konteks pemanggil sekali jalan.
func GetIdentityFromToken(c *fiber.Ctx) (Identity, error) {
	schoolID, err := GetSchoolIDFromToken(c)
	if err != nil {
		return Identity{}, err
	}
	userID, err := GetUserIDFromToken(c)
	if err != nil {
		return Identity{}, err
	}
	return Identity{
		SchoolID: schoolID,
		UserID:   userID,
		UserName: GetUserNameFromToken(c),
		Role:     GetRoleFromToken(c),
	}, nil
}
