package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"artcc_backend/internals/cache/rolecache"
	"artcc_backend/internals/features/audit/controller"
	authmw "artcc_backend/internals/middlewares/auth"
)

func WebsiteLogAdminRoutes(api fiber.Router, db *gorm.DB, roles *rolecache.Cache) {
	ctrl := controller.NewWebsiteLogController(db, roles)

	logs := api.Group("/websitelogs", authmw.AuthRequired())
	logs.Get("/", ctrl.GetWebsiteLogs)
}
