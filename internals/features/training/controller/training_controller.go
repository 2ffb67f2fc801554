package controller

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"artcc_backend/internals/apperr"
	"artcc_backend/internals/cache/rolecache"
	"artcc_backend/internals/constants"
	auditsvc "artcc_backend/internals/features/audit/service"
	notifsvc "artcc_backend/internals/features/notifications/service"
	"artcc_backend/internals/features/training/dto"
	"artcc_backend/internals/features/training/model"
	usermodel "artcc_backend/internals/features/users/model"
	"artcc_backend/internals/helpers"
	authmw "artcc_backend/internals/middlewares/auth"
)

type TrainingController struct {
	DB     *gorm.DB
	Roles  *rolecache.Cache
	Audit  auditsvc.Logger
	Notify notifsvc.Notifier
}

func NewTrainingController(db *gorm.DB, roles *rolecache.Cache, audit auditsvc.Logger, notify notifsvc.Notifier) *TrainingController {
	return &TrainingController{DB: db, Roles: roles, Audit: audit, Notify: notify}
}

func (ctrl *TrainingController) allowed(c *fiber.Ctx, policy []string) bool {
	ok, err := ctrl.Roles.Validate(c.Context(), authmw.Cid(c), policy)
	if err != nil {
		log.Printf("[WARN] role check failed for cid=%d: %v", authmw.Cid(c), err)
		return false
	}
	return ok
}

/* =========================================
   Training Requests
========================================= */

// POST /v1/training/requests
func (ctrl *TrainingController) CreateRequest(c *fiber.Ctx) error {
	cid := authmw.Cid(c)
	ok, err := ctrl.Roles.Validate(c.Context(), cid, []string{constants.CanRequestTraining})
	if err != nil {
		return helper.JsonServerError(c, err)
	}
	if !ok {
		return helper.JsonForbidden(c, "Training requests are disabled for this account")
	}

	var req dto.CreateTrainingRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonValidationFailure(c, helper.BodyParseFailure(err))
	}
	if failures := helper.ValidateStruct(req); failures != nil {
		return helper.JsonValidationFailure(c, failures)
	}

	now := time.Now().UTC()
	var failures []apperr.FieldFailure
	if !req.TrainingRequestStart.After(now) {
		failures = append(failures, apperr.FieldFailure{
			PropertyName:   "TrainingRequestStart",
			AttemptedValue: req.TrainingRequestStart,
			ErrorMessage:   "Start time must be in the future",
		})
	}
	if !req.TrainingRequestEnd.After(req.TrainingRequestStart) {
		failures = append(failures, apperr.FieldFailure{
			PropertyName:   "TrainingRequestEnd",
			AttemptedValue: req.TrainingRequestEnd,
			ErrorMessage:   "End time must be after start time",
		})
	}
	if len(failures) > 0 {
		return helper.JsonValidationFailure(c, failures)
	}

	// One open request per member and position.
	var open int64
	err = ctrl.DB.WithContext(c.Context()).
		Model(&model.TrainingRequestModel{}).
		Where("training_request_user_cid = ? AND training_request_position = ? AND training_request_status IN ?",
			cid, req.TrainingRequestPosition, []model.TrainingRequestStatus{model.TrainingPending, model.TrainingAccepted}).
		Count(&open).Error
	if err != nil {
		return helper.JsonServerError(c, err)
	}
	if open > 0 {
		return helper.JsonValidationFailure(c, []apperr.FieldFailure{{
			PropertyName:   "TrainingRequestPosition",
			AttemptedValue: req.TrainingRequestPosition,
			ErrorMessage:   fmt.Sprintf("User already has an open training request for position '%s'", req.TrainingRequestPosition),
		}})
	}

	request := req.ToModel()
	request.TrainingRequestUserCid = cid
	if err := ctrl.DB.WithContext(c.Context()).Create(&request).Error; err != nil {
		return helper.JsonServerError(c, err)
	}
	ctrl.Audit.Record(c.Context(), auditsvc.ActorFromCtx(c),
		fmt.Sprintf("Created training request '%d'", request.TrainingRequestID), nil, request)
	return helper.JsonCreated(c, "Training request created", request)
}

// GET /v1/training/requests/own
func (ctrl *TrainingController) GetOwnRequests(c *fiber.Ctx) error {
	var requests []model.TrainingRequestModel
	err := ctrl.DB.WithContext(c.Context()).
		Where("training_request_user_cid = ?", authmw.Cid(c)).
		Order("training_request_start ASC").
		Find(&requests).Error
	if err != nil {
		return helper.JsonServerError(c, err)
	}
	return helper.JsonList(c, "Training requests retrieved", len(requests), len(requests), requests)
}

// GET /v1/training/requests/pending
func (ctrl *TrainingController) GetPendingRequests(c *fiber.Ctx) error {
	if !ctrl.allowed(c, constants.TrainingStaff) {
		return helper.JsonForbidden(c, "Forbidden")
	}

	paging := helper.ResolvePaging(c, 25, 100)

	var total int64
	err := ctrl.DB.WithContext(c.Context()).
		Model(&model.TrainingRequestModel{}).
		Where("training_request_status = ?", model.TrainingPending).
		Count(&total).Error
	if err != nil {
		return helper.JsonServerError(c, err)
	}

	var requests []model.TrainingRequestModel
	err = ctrl.DB.WithContext(c.Context()).
		Where("training_request_status = ?", model.TrainingPending).
		Order("training_request_start ASC").
		Offset(paging.Offset).Limit(paging.Size).
		Find(&requests).Error
	if err != nil {
		return helper.JsonServerError(c, err)
	}
	return helper.JsonList(c, "Pending training requests retrieved", len(requests), int(total), requests)
}

// PUT /v1/training/requests/accept?trainingRequestId=
func (ctrl *TrainingController) AcceptRequest(c *fiber.Ctx) error {
	if !ctrl.allowed(c, constants.TrainingStaff) {
		return helper.JsonForbidden(c, "Forbidden")
	}
	requestID := helper.QueryInt(c, "trainingRequestId")
	if requestID == 0 {
		return helper.JsonNotFound(c, "Training request not found")
	}

	var request model.TrainingRequestModel
	err := ctrl.DB.WithContext(c.Context()).First(&request, "training_request_id = ?", requestID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonNotFound(c, fmt.Sprintf("Training request '%d' not found", requestID))
	}
	if err != nil {
		return helper.JsonServerError(c, err)
	}
	if request.TrainingRequestStatus != model.TrainingPending {
		return helper.JsonValidationFailure(c, []apperr.FieldFailure{{
			PropertyName:   "TrainingRequestStatus",
			AttemptedValue: request.TrainingRequestStatus,
			ErrorMessage:   "Only pending training requests can be accepted",
		}})
	}

	trainer := authmw.Cid(c)
	before := request
	request.TrainingRequestStatus = model.TrainingAccepted
	request.TrainingRequestTrainer = &trainer
	if err := ctrl.DB.WithContext(c.Context()).Save(&request).Error; err != nil {
		return helper.JsonServerError(c, err)
	}

	ctrl.Audit.Record(c.Context(), auditsvc.ActorFromCtx(c),
		fmt.Sprintf("Accepted training request '%d'", requestID), before, request)
	ctrl.notifyMember(c, request.TrainingRequestUserCid,
		"Training request accepted",
		fmt.Sprintf("Your %s training request was accepted by a trainer.", request.TrainingRequestPosition))
	return helper.JsonOK(c, "Training request accepted", request)
}

// DELETE /v1/training/requests/:trainingRequestId
// Members cancel their own; training staff can cancel any.
func (ctrl *TrainingController) CancelRequest(c *fiber.Ctx) error {
	requestID, err := c.ParamsInt("trainingRequestId")
	if err != nil {
		return helper.JsonNotFound(c, "Training request not found")
	}

	var request model.TrainingRequestModel
	err = ctrl.DB.WithContext(c.Context()).First(&request, "training_request_id = ?", requestID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonNotFound(c, fmt.Sprintf("Training request '%d' not found", requestID))
	}
	if err != nil {
		return helper.JsonServerError(c, err)
	}

	if request.TrainingRequestUserCid != authmw.Cid(c) && !ctrl.allowed(c, constants.TrainingStaff) {
		return helper.JsonForbidden(c, "Forbidden")
	}
	if request.TrainingRequestStatus == model.TrainingCompleted ||
		request.TrainingRequestStatus == model.TrainingCancelled {
		return helper.JsonValidationFailure(c, []apperr.FieldFailure{{
			PropertyName:   "TrainingRequestStatus",
			AttemptedValue: request.TrainingRequestStatus,
			ErrorMessage:   "Training request is already resolved",
		}})
	}

	before := request
	request.TrainingRequestStatus = model.TrainingCancelled
	if err := ctrl.DB.WithContext(c.Context()).Save(&request).Error; err != nil {
		return helper.JsonServerError(c, err)
	}
	ctrl.Audit.Record(c.Context(), auditsvc.ActorFromCtx(c),
		fmt.Sprintf("Cancelled training request '%d'", requestID), before, request)
	return helper.JsonOK(c, "Training request cancelled", request)
}

/* =========================================
   Training Tickets
========================================= */

// POST /v1/training/tickets
// Closes the underlying request as COMPLETED in the same transaction.
func (ctrl *TrainingController) CreateTicket(c *fiber.Ctx) error {
	if !ctrl.allowed(c, constants.TrainingStaff) {
		return helper.JsonForbidden(c, "Forbidden")
	}

	var req dto.CreateTrainingTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonValidationFailure(c, helper.BodyParseFailure(err))
	}
	if failures := helper.ValidateStruct(req); failures != nil {
		return helper.JsonValidationFailure(c, failures)
	}

	var request model.TrainingRequestModel
	err := ctrl.DB.WithContext(c.Context()).First(&request, "training_request_id = ?", req.TrainingTicketRequestID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonNotFound(c, fmt.Sprintf("Training request '%d' not found", req.TrainingTicketRequestID))
	}
	if err != nil {
		return helper.JsonServerError(c, err)
	}
	if request.TrainingRequestStatus != model.TrainingAccepted {
		return helper.JsonValidationFailure(c, []apperr.FieldFailure{{
			PropertyName:   "TrainingTicketRequestID",
			AttemptedValue: req.TrainingTicketRequestID,
			ErrorMessage:   "Only accepted training requests can be completed",
		}})
	}

	ticket := model.TrainingTicketModel{
		TrainingTicketUserCid:       request.TrainingRequestUserCid,
		TrainingTicketTrainerCid:    authmw.Cid(c),
		TrainingTicketRequestID:     request.TrainingRequestID,
		TrainingTicketPosition:      request.TrainingRequestPosition,
		TrainingTicketFacility:      req.TrainingTicketFacility,
		TrainingTicketPerformance:   req.TrainingTicketPerformance,
		TrainingTicketUserNotes:     req.TrainingTicketUserNotes,
		TrainingTicketTrainingNotes: req.TrainingTicketTrainingNotes,
		TrainingTicketStart:         req.TrainingTicketStart,
		TrainingTicketEnd:           req.TrainingTicketEnd,
	}

	err = ctrl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&ticket).Error; err != nil {
			return err
		}
		request.TrainingRequestStatus = model.TrainingCompleted
		return tx.Save(&request).Error
	})
	if err != nil {
		return helper.JsonServerError(c, err)
	}

	ctrl.Audit.Record(c.Context(), auditsvc.ActorFromCtx(c),
		fmt.Sprintf("Created training ticket '%d'", ticket.TrainingTicketID), nil, ticket)
	ctrl.notifyMember(c, ticket.TrainingTicketUserCid,
		"Training session recorded",
		fmt.Sprintf("A training ticket was filed for your %s session.", ticket.TrainingTicketPosition))
	return helper.JsonCreated(c, "Training ticket created", ticket)
}

// GET /v1/training/tickets/user/:cid
// Members see their own tickets without staff notes; training staff see
// everything for anyone.
func (ctrl *TrainingController) GetUserTickets(c *fiber.Ctx) error {
	cid, err := c.ParamsInt("cid")
	if err != nil {
		return helper.JsonNotFound(c, "User not found")
	}

	staff := ctrl.allowed(c, constants.TrainingStaff)
	if cid != authmw.Cid(c) && !staff {
		return helper.JsonForbidden(c, "Forbidden")
	}

	var tickets []model.TrainingTicketModel
	err = ctrl.DB.WithContext(c.Context()).
		Where("training_ticket_user_cid = ?", cid).
		Order("training_ticket_start DESC").
		Find(&tickets).Error
	if err != nil {
		return helper.JsonServerError(c, err)
	}
	if !staff {
		for i := range tickets {
			tickets[i].TrainingTicketTrainingNotes = ""
		}
	}
	return helper.JsonList(c, "Training tickets retrieved", len(tickets), len(tickets), tickets)
}

func (ctrl *TrainingController) notifyMember(c *fiber.Ctx, cid int, subject, body string) {
	var user usermodel.UserModel
	err := ctrl.DB.WithContext(c.Context()).First(&user, "user_cid = ?", cid).Error
	if err != nil {
		return
	}
	ctrl.Notify.Send(c.Context(), []string{user.UserEmail}, subject, body)
}
