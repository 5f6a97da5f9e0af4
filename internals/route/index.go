// file: internals/route/index.go
package routes

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/middlewares"
	schoolkuMiddleware "schoolku_backend/internals/middlewares/auth_school"
	routeDetails "schoolku_backend/internals/route/details"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// ===================== ADMIN (per school) =====================
	log.Println("[INFO] Setting up ADMIN group (Auth + school scope)...")
	admin := app.Group("/api/a",
		schoolkuMiddleware.AuthJWT(schoolkuMiddleware.AuthJWTOpts{
			Secret:              os.Getenv("JWT_SECRET"),
			AllowCookieFallback: true,
		}),
		middlewares.FinanceWriteRateLimiter(),
	)

	// ===================== MOUNT ROUTES =====================
	log.Println("[INFO] Mounting Finance routes...")
	routeDetails.FinanceAdminRoutes(admin, db)
}
