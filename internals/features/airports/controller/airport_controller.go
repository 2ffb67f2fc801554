package controller

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"artcc_backend/internals/cache/rolecache"
	"artcc_backend/internals/constants"
	auditsvc "artcc_backend/internals/features/audit/service"
	"artcc_backend/internals/features/airports/dto"
	"artcc_backend/internals/features/airports/model"
	"artcc_backend/internals/helpers"
	authmw "artcc_backend/internals/middlewares/auth"
)

type AirportController struct {
	DB    *gorm.DB
	Roles *rolecache.Cache
	Audit auditsvc.Logger
}

func NewAirportController(db *gorm.DB, roles *rolecache.Cache, audit auditsvc.Logger) *AirportController {
	return &AirportController{DB: db, Roles: roles, Audit: audit}
}

func (ctrl *AirportController) canManage(c *fiber.Ctx) bool {
	ok, err := ctrl.Roles.Validate(c.Context(), authmw.Cid(c), constants.CanAirports)
	if err != nil {
		log.Printf("[WARN] role check failed for cid=%d: %v", authmw.Cid(c), err)
		return false
	}
	return ok
}

// GET /v1/airports
func (ctrl *AirportController) GetAirports(c *fiber.Ctx) error {
	var airports []model.AirportModel
	err := ctrl.DB.WithContext(c.Context()).
		Order("airport_icao ASC").
		Find(&airports).Error
	if err != nil {
		return helper.JsonServerError(c, err)
	}
	return helper.JsonList(c, "Airports retrieved", len(airports), len(airports), airports)
}

// GET /v1/airports/:icao
func (ctrl *AirportController) GetAirport(c *fiber.Ctx) error {
	icao := strings.ToUpper(c.Params("icao"))

	var airport model.AirportModel
	err := ctrl.DB.WithContext(c.Context()).First(&airport, "airport_icao = ?", icao).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonNotFound(c, fmt.Sprintf("Airport '%s' not found", icao))
	}
	if err != nil {
		return helper.JsonServerError(c, err)
	}
	return helper.JsonOK(c, "Airport retrieved", airport)
}

// POST /v1/airports
func (ctrl *AirportController) CreateAirport(c *fiber.Ctx) error {
	if !ctrl.canManage(c) {
		return helper.JsonForbidden(c, "Forbidden")
	}

	var req dto.CreateAirportRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonValidationFailure(c, helper.BodyParseFailure(err))
	}
	if failures := helper.ValidateStruct(req); failures != nil {
		return helper.JsonValidationFailure(c, failures)
	}

	airport := req.ToModel()
	if err := ctrl.DB.WithContext(c.Context()).Create(&airport).Error; err != nil {
		return helper.JsonServerError(c, err)
	}
	ctrl.Audit.Record(c.Context(), auditsvc.ActorFromCtx(c),
		fmt.Sprintf("Created airport '%s'", airport.AirportIcao), nil, airport)
	return helper.JsonCreated(c, "Airport created", airport)
}

// PUT /v1/airports
func (ctrl *AirportController) UpdateAirport(c *fiber.Ctx) error {
	if !ctrl.canManage(c) {
		return helper.JsonForbidden(c, "Forbidden")
	}

	var req dto.UpdateAirportRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonValidationFailure(c, helper.BodyParseFailure(err))
	}
	if failures := helper.ValidateStruct(req); failures != nil {
		return helper.JsonValidationFailure(c, failures)
	}

	var airport model.AirportModel
	err := ctrl.DB.WithContext(c.Context()).First(&airport, "airport_id = ?", req.AirportID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonNotFound(c, fmt.Sprintf("Airport '%d' not found", req.AirportID))
	}
	if err != nil {
		return helper.JsonServerError(c, err)
	}

	before := airport
	req.Apply(&airport)
	if err := ctrl.DB.WithContext(c.Context()).Save(&airport).Error; err != nil {
		return helper.JsonServerError(c, err)
	}
	ctrl.Audit.Record(c.Context(), auditsvc.ActorFromCtx(c),
		fmt.Sprintf("Updated airport '%s'", airport.AirportIcao), before, airport)
	return helper.JsonOK(c, "Airport updated", airport)
}

// DELETE /v1/airports/:airportId
func (ctrl *AirportController) DeleteAirport(c *fiber.Ctx) error {
	if !ctrl.canManage(c) {
		return helper.JsonForbidden(c, "Forbidden")
	}
	airportID, err := c.ParamsInt("airportId")
	if err != nil {
		return helper.JsonNotFound(c, "Airport not found")
	}

	var airport model.AirportModel
	err = ctrl.DB.WithContext(c.Context()).First(&airport, "airport_id = ?", airportID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonNotFound(c, fmt.Sprintf("Airport '%d' not found", airportID))
	}
	if err != nil {
		return helper.JsonServerError(c, err)
	}

	if err := ctrl.DB.WithContext(c.Context()).Delete(&airport).Error; err != nil {
		return helper.JsonServerError(c, err)
	}
	ctrl.Audit.Record(c.Context(), auditsvc.ActorFromCtx(c),
		fmt.Sprintf("Deleted airport '%s'", airport.AirportIcao), airport, nil)
	return helper.JsonOK(c, "Airport deleted", nil)
}
