package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"artcc_backend/internals/cache/rolecache"
	auditsvc "artcc_backend/internals/features/audit/service"
	commentcontroller "artcc_backend/internals/features/comments/controller"
	authmw "artcc_backend/internals/middlewares/auth"
)

// =======================
// Comment Routes
// =======================
func CommentRoutes(api fiber.Router, db *gorm.DB, roles *rolecache.Cache) {
	ctrl := commentcontroller.NewCommentController(db, roles, auditsvc.NewRecorder(db))

	comments := api.Group("/comments", authmw.AuthRequired())
	comments.Post("/", ctrl.CreateComment)
	comments.Get("/user/:cid<int>", ctrl.GetUserComments)
	comments.Delete("/:commentId<int>", ctrl.DeleteComment)
}
