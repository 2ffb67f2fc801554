package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"artcc_backend/internals/cache/rolecache"
	auditsvc "artcc_backend/internals/features/audit/service"
	notifsvc "artcc_backend/internals/features/notifications/service"
	trainingcontroller "artcc_backend/internals/features/training/controller"
	authmw "artcc_backend/internals/middlewares/auth"
)

// =======================
// Training Routes
// =======================
func TrainingRoutes(api fiber.Router, db *gorm.DB, roles *rolecache.Cache) {
	ctrl := trainingcontroller.NewTrainingController(db, roles, auditsvc.NewRecorder(db), notifsvc.NewEmailLogNotifier(db))

	training := api.Group("/training", authmw.AuthRequired())

	training.Post("/requests", ctrl.CreateRequest)
	training.Get("/requests/own", ctrl.GetOwnRequests)
	training.Get("/requests/pending", ctrl.GetPendingRequests)
	training.Put("/requests/accept", ctrl.AcceptRequest)
	training.Delete("/requests/:trainingRequestId<int>", ctrl.CancelRequest)

	training.Post("/tickets", ctrl.CreateTicket)
	training.Get("/tickets/user/:cid<int>", ctrl.GetUserTickets)
}
