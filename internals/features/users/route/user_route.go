package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"artcc_backend/internals/cache/rolecache"
	auditsvc "artcc_backend/internals/features/audit/service"
	usercontroller "artcc_backend/internals/features/users/controller"
	authmw "artcc_backend/internals/middlewares/auth"
)

// =======================
// User Routes
// =======================
func UserRoutes(api fiber.Router, db *gorm.DB, roles *rolecache.Cache) {
	ctrl := usercontroller.NewUserController(db, roles, auditsvc.NewRecorder(db))

	users := api.Group("/users", authmw.AuthRequired())
	users.Get("/", ctrl.GetUsers)
	users.Get("/roles", ctrl.GetRoles)
	users.Get("/:cid<int>", ctrl.GetUser)
	users.Put("/", ctrl.UpdateUser)
	users.Post("/:cid<int>/roles", ctrl.AddRole)
	users.Delete("/:cid<int>/roles/:roleId<int>", ctrl.RemoveRole)
}
