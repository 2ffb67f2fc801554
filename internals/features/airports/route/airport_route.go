package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"artcc_backend/internals/cache/rolecache"
	airportcontroller "artcc_backend/internals/features/airports/controller"
	auditsvc "artcc_backend/internals/features/audit/service"
	authmw "artcc_backend/internals/middlewares/auth"
)

// =======================
// Airport Routes
// =======================
func AirportRoutes(api fiber.Router, db *gorm.DB, roles *rolecache.Cache) {
	ctrl := airportcontroller.NewAirportController(db, roles, auditsvc.NewRecorder(db))

	airports := api.Group("/airports")
	airports.Get("/", ctrl.GetAirports)
	airports.Get("/:icao<alpha>", ctrl.GetAirport)

	airports.Post("/", authmw.AuthRequired(), ctrl.CreateAirport)
	airports.Put("/", authmw.AuthRequired(), ctrl.UpdateAirport)
	airports.Delete("/:airportId<int>", authmw.AuthRequired(), ctrl.DeleteAirport)
}
