package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"artcc_backend/internals/cache/rolecache"
	auditsvc "artcc_backend/internals/features/audit/service"
	certcontroller "artcc_backend/internals/features/certifications/controller"
	authmw "artcc_backend/internals/middlewares/auth"
)

// =======================
// Certification Routes
// =======================
func CertificationRoutes(api fiber.Router, db *gorm.DB, roles *rolecache.Cache) {
	ctrl := certcontroller.NewCertificationController(db, roles, auditsvc.NewRecorder(db))

	certs := api.Group("/certifications")
	certs.Get("/", ctrl.GetCertifications)
	certs.Get("/user/:cid<int>", ctrl.GetUserCertifications)

	certs.Post("/", authmw.AuthRequired(), ctrl.CreateCertification)
	certs.Put("/", authmw.AuthRequired(), ctrl.UpdateCertification)
	certs.Delete("/:certificationId<int>", authmw.AuthRequired(), ctrl.DeleteCertification)

	certs.Post("/user", authmw.AuthRequired(), ctrl.GrantCertification)
	certs.Delete("/user/:userCertificationId<int>", authmw.AuthRequired(), ctrl.RevokeCertification)
}
