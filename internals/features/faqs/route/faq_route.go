package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"artcc_backend/internals/cache/rolecache"
	auditsvc "artcc_backend/internals/features/audit/service"
	faqcontroller "artcc_backend/internals/features/faqs/controller"
	authmw "artcc_backend/internals/middlewares/auth"
)

// =======================
// FAQ Routes
// =======================
func FaqRoutes(api fiber.Router, db *gorm.DB, roles *rolecache.Cache) {
	ctrl := faqcontroller.NewFaqController(db, roles, auditsvc.NewRecorder(db))

	faqs := api.Group("/faqs")
	faqs.Get("/", ctrl.GetFaqs)
	faqs.Post("/", authmw.AuthRequired(), ctrl.CreateFaq)
	faqs.Put("/", authmw.AuthRequired(), ctrl.UpdateFaq)
	faqs.Delete("/:faqId<int>", authmw.AuthRequired(), ctrl.DeleteFaq)
}
