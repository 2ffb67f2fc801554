package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"artcc_backend/internals/cache/rolecache"
	airportroute "artcc_backend/internals/features/airports/route"
	auditroute "artcc_backend/internals/features/audit/route"
	certroute "artcc_backend/internals/features/certifications/route"
	commentroute "artcc_backend/internals/features/comments/route"
	eventroute "artcc_backend/internals/features/events/route"
	faqroute "artcc_backend/internals/features/faqs/route"
	trainingroute "artcc_backend/internals/features/training/route"
	userroute "artcc_backend/internals/features/users/route"
	"artcc_backend/internals/helpers/banner"
)

// SetupRoutes mounts every feature under /v1.
func SetupRoutes(app *fiber.App, db *gorm.DB, roles *rolecache.Cache) {
	BaseRoutes(app)

	uploader, err := banner.NewOSSUploaderFromEnv()
	if err != nil {
		// Events still work without banners.
		log.Printf("[WARN] banner uploads disabled: %v", err)
	}

	api := app.Group("/v1")
	userroute.UserRoutes(api, db, roles)
	if uploader != nil {
		eventroute.EventRoutes(api, db, roles, uploader)
	} else {
		eventroute.EventRoutes(api, db, roles, nil)
	}
	certroute.CertificationRoutes(api, db, roles)
	trainingroute.TrainingRoutes(api, db, roles)
	commentroute.CommentRoutes(api, db, roles)
	faqroute.FaqRoutes(api, db, roles)
	airportroute.AirportRoutes(api, db, roles)
	auditroute.WebsiteLogAdminRoutes(api, db, roles)
}
