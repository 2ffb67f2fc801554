package controller

import (
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"artcc_backend/internals/cache/rolecache"
	"artcc_backend/internals/constants"
	auditsvc "artcc_backend/internals/features/audit/service"
	"artcc_backend/internals/features/faqs/dto"
	"artcc_backend/internals/features/faqs/model"
	"artcc_backend/internals/helpers"
	authmw "artcc_backend/internals/middlewares/auth"
)

type FaqController struct {
	DB    *gorm.DB
	Roles *rolecache.Cache
	Audit auditsvc.Logger
}

func NewFaqController(db *gorm.DB, roles *rolecache.Cache, audit auditsvc.Logger) *FaqController {
	return &FaqController{DB: db, Roles: roles, Audit: audit}
}

func (ctrl *FaqController) canManage(c *fiber.Ctx) bool {
	ok, err := ctrl.Roles.Validate(c.Context(), authmw.Cid(c), constants.CanFaq)
	if err != nil {
		log.Printf("[WARN] role check failed for cid=%d: %v", authmw.Cid(c), err)
		return false
	}
	return ok
}

// GET /v1/faqs
func (ctrl *FaqController) GetFaqs(c *fiber.Ctx) error {
	var faqs []model.FaqModel
	err := ctrl.DB.WithContext(c.Context()).
		Order("faq_order ASC, faq_id ASC").
		Find(&faqs).Error
	if err != nil {
		return helper.JsonServerError(c, err)
	}
	return helper.JsonList(c, "FAQs retrieved", len(faqs), len(faqs), faqs)
}

// POST /v1/faqs
func (ctrl *FaqController) CreateFaq(c *fiber.Ctx) error {
	if !ctrl.canManage(c) {
		return helper.JsonForbidden(c, "Forbidden")
	}

	var req dto.CreateFaqRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonValidationFailure(c, helper.BodyParseFailure(err))
	}
	if failures := helper.ValidateStruct(req); failures != nil {
		return helper.JsonValidationFailure(c, failures)
	}

	faq := req.ToModel()
	if err := ctrl.DB.WithContext(c.Context()).Create(&faq).Error; err != nil {
		return helper.JsonServerError(c, err)
	}
	ctrl.Audit.Record(c.Context(), auditsvc.ActorFromCtx(c),
		fmt.Sprintf("Created FAQ '%d'", faq.FaqID), nil, faq)
	return helper.JsonCreated(c, "FAQ created", faq)
}

// PUT /v1/faqs
func (ctrl *FaqController) UpdateFaq(c *fiber.Ctx) error {
	if !ctrl.canManage(c) {
		return helper.JsonForbidden(c, "Forbidden")
	}

	var req dto.UpdateFaqRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonValidationFailure(c, helper.BodyParseFailure(err))
	}
	if failures := helper.ValidateStruct(req); failures != nil {
		return helper.JsonValidationFailure(c, failures)
	}

	var faq model.FaqModel
	err := ctrl.DB.WithContext(c.Context()).First(&faq, "faq_id = ?", req.FaqID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonNotFound(c, fmt.Sprintf("FAQ '%d' not found", req.FaqID))
	}
	if err != nil {
		return helper.JsonServerError(c, err)
	}

	before := faq
	faq.FaqQuestion = req.FaqQuestion
	faq.FaqAnswer = req.FaqAnswer
	faq.FaqOrder = req.FaqOrder
	if err := ctrl.DB.WithContext(c.Context()).Save(&faq).Error; err != nil {
		return helper.JsonServerError(c, err)
	}
	ctrl.Audit.Record(c.Context(), auditsvc.ActorFromCtx(c),
		fmt.Sprintf("Updated FAQ '%d'", faq.FaqID), before, faq)
	return helper.JsonOK(c, "FAQ updated", faq)
}

// DELETE /v1/faqs/:faqId
func (ctrl *FaqController) DeleteFaq(c *fiber.Ctx) error {
	if !ctrl.canManage(c) {
		return helper.JsonForbidden(c, "Forbidden")
	}
	faqID, err := c.ParamsInt("faqId")
	if err != nil {
		return helper.JsonNotFound(c, "FAQ not found")
	}

	var faq model.FaqModel
	err = ctrl.DB.WithContext(c.Context()).First(&faq, "faq_id = ?", faqID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonNotFound(c, fmt.Sprintf("FAQ '%d' not found", faqID))
	}
	if err != nil {
		return helper.JsonServerError(c, err)
	}

	if err := ctrl.DB.WithContext(c.Context()).Delete(&faq).Error; err != nil {
		return helper.JsonServerError(c, err)
	}
	ctrl.Audit.Record(c.Context(), auditsvc.ActorFromCtx(c),
		fmt.Sprintf("Deleted FAQ '%d'", faqID), faq, nil)
	return helper.JsonOK(c, "FAQ deleted", nil)
}
