package controller

import (
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"artcc_backend/internals/apperr"
	"artcc_backend/internals/cache/rolecache"
	"artcc_backend/internals/constants"
	auditsvc "artcc_backend/internals/features/audit/service"
	"artcc_backend/internals/features/certifications/dto"
	"artcc_backend/internals/features/certifications/model"
	usermodel "artcc_backend/internals/features/users/model"
	"artcc_backend/internals/helpers"
	authmw "artcc_backend/internals/middlewares/auth"
)

type CertificationController struct {
	DB    *gorm.DB
	Roles *rolecache.Cache
	Audit auditsvc.Logger
}

func NewCertificationController(db *gorm.DB, roles *rolecache.Cache, audit auditsvc.Logger) *CertificationController {
	return &CertificationController{DB: db, Roles: roles, Audit: audit}
}

func (ctrl *CertificationController) allowed(c *fiber.Ctx, policy []string) bool {
	ok, err := ctrl.Roles.Validate(c.Context(), authmw.Cid(c), policy)
	if err != nil {
		log.Printf("[WARN] role check failed for cid=%d: %v", authmw.Cid(c), err)
		return false
	}
	return ok
}

func (ctrl *CertificationController) canManage(c *fiber.Ctx) bool {
	return ctrl.allowed(c, constants.CanManageCertifications)
}

// GET /v1/certifications
func (ctrl *CertificationController) GetCertifications(c *fiber.Ctx) error {
	var certifications []model.CertificationModel
	err := ctrl.DB.WithContext(c.Context()).
		Order("certification_order ASC, certification_id ASC").
		Find(&certifications).Error
	if err != nil {
		return helper.JsonServerError(c, err)
	}
	return helper.JsonList(c, "Certifications retrieved", len(certifications), len(certifications), certifications)
}

// POST /v1/certifications
func (ctrl *CertificationController) CreateCertification(c *fiber.Ctx) error {
	if !ctrl.canManage(c) {
		return helper.JsonForbidden(c, "Forbidden")
	}

	var req dto.CreateCertificationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonValidationFailure(c, helper.BodyParseFailure(err))
	}
	if failures := helper.ValidateStruct(req); failures != nil {
		return helper.JsonValidationFailure(c, failures)
	}

	certification := req.ToModel()
	if err := ctrl.DB.WithContext(c.Context()).Create(&certification).Error; err != nil {
		return helper.JsonServerError(c, err)
	}
	ctrl.Audit.Record(c.Context(), auditsvc.ActorFromCtx(c),
		fmt.Sprintf("Created certification '%d'", certification.CertificationID), nil, certification)
	return helper.JsonCreated(c, "Certification created", certification)
}

// PUT /v1/certifications
func (ctrl *CertificationController) UpdateCertification(c *fiber.Ctx) error {
	if !ctrl.canManage(c) {
		return helper.JsonForbidden(c, "Forbidden")
	}

	var req dto.UpdateCertificationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonValidationFailure(c, helper.BodyParseFailure(err))
	}
	if failures := helper.ValidateStruct(req); failures != nil {
		return helper.JsonValidationFailure(c, failures)
	}

	var certification model.CertificationModel
	err := ctrl.DB.WithContext(c.Context()).First(&certification, "certification_id = ?", req.CertificationID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonNotFound(c, fmt.Sprintf("Certification '%d' not found", req.CertificationID))
	}
	if err != nil {
		return helper.JsonServerError(c, err)
	}

	before := certification
	certification.CertificationName = req.CertificationName
	certification.CertificationOrder = req.CertificationOrder
	certification.CertificationRequiredRating = req.CertificationRequiredRating
	if err := ctrl.DB.WithContext(c.Context()).Save(&certification).Error; err != nil {
		return helper.JsonServerError(c, err)
	}
	ctrl.Audit.Record(c.Context(), auditsvc.ActorFromCtx(c),
		fmt.Sprintf("Updated certification '%d'", certification.CertificationID), before, certification)
	return helper.JsonOK(c, "Certification updated", certification)
}

// DELETE /v1/certifications/:certificationId
func (ctrl *CertificationController) DeleteCertification(c *fiber.Ctx) error {
	if !ctrl.canManage(c) {
		return helper.JsonForbidden(c, "Forbidden")
	}
	certificationID, err := c.ParamsInt("certificationId")
	if err != nil {
		return helper.JsonNotFound(c, "Certification not found")
	}

	var certification model.CertificationModel
	err = ctrl.DB.WithContext(c.Context()).First(&certification, "certification_id = ?", certificationID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonNotFound(c, fmt.Sprintf("Certification '%d' not found", certificationID))
	}
	if err != nil {
		return helper.JsonServerError(c, err)
	}

	// Grants hang off the certification; remove them first.
	err = ctrl.DB.WithContext(c.Context()).
		Where("user_certification_certification_id = ?", certificationID).
		Delete(&model.UserCertificationModel{}).Error
	if err != nil {
		return helper.JsonServerError(c, err)
	}
	if err := ctrl.DB.WithContext(c.Context()).Delete(&certification).Error; err != nil {
		return helper.JsonServerError(c, err)
	}
	ctrl.Audit.Record(c.Context(), auditsvc.ActorFromCtx(c),
		fmt.Sprintf("Deleted certification '%d'", certificationID), certification, nil)
	return helper.JsonOK(c, "Certification deleted", nil)
}

// GET /v1/certifications/user/:cid
func (ctrl *CertificationController) GetUserCertifications(c *fiber.Ctx) error {
	cid, err := c.ParamsInt("cid")
	if err != nil {
		return helper.JsonNotFound(c, "User not found")
	}

	var grants []model.UserCertificationModel
	err = ctrl.DB.WithContext(c.Context()).
		Preload("Certification").
		Where("user_certification_user_cid = ?", cid).
		Find(&grants).Error
	if err != nil {
		return helper.JsonServerError(c, err)
	}
	return helper.JsonList(c, "User certifications retrieved", len(grants), len(grants), grants)
}

// POST /v1/certifications/user
func (ctrl *CertificationController) GrantCertification(c *fiber.Ctx) error {
	if !ctrl.allowed(c, constants.TrainingStaff) {
		return helper.JsonForbidden(c, "Forbidden")
	}

	var req dto.GrantCertificationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonValidationFailure(c, helper.BodyParseFailure(err))
	}
	if failures := helper.ValidateStruct(req); failures != nil {
		return helper.JsonValidationFailure(c, failures)
	}

	var user usermodel.UserModel
	err := ctrl.DB.WithContext(c.Context()).First(&user, "user_cid = ?", req.UserCid).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonNotFound(c, fmt.Sprintf("User '%d' not found", req.UserCid))
	}
	if err != nil {
		return helper.JsonServerError(c, err)
	}

	var certification model.CertificationModel
	err = ctrl.DB.WithContext(c.Context()).First(&certification, "certification_id = ?", req.CertificationID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonNotFound(c, fmt.Sprintf("Certification '%d' not found", req.CertificationID))
	}
	if err != nil {
		return helper.JsonServerError(c, err)
	}

	if user.UserRating < certification.CertificationRequiredRating {
		return helper.JsonValidationFailure(c, []apperr.FieldFailure{{
			PropertyName:   "UserRating",
			AttemptedValue: user.UserRating,
			ErrorMessage:   fmt.Sprintf("User rating is less than %d", certification.CertificationRequiredRating),
		}})
	}

	var existing int64
	err = ctrl.DB.WithContext(c.Context()).
		Model(&model.UserCertificationModel{}).
		Where("user_certification_user_cid = ? AND user_certification_certification_id = ?", req.UserCid, req.CertificationID).
		Count(&existing).Error
	if err != nil {
		return helper.JsonServerError(c, err)
	}
	if existing > 0 {
		return helper.JsonValidationFailure(c, []apperr.FieldFailure{{
			PropertyName:   "CertificationID",
			AttemptedValue: req.CertificationID,
			ErrorMessage:   fmt.Sprintf("User already holds certification '%s'", certification.CertificationName),
		}})
	}

	grant := model.UserCertificationModel{
		UserCertificationUserCid:         req.UserCid,
		UserCertificationCertificationID: req.CertificationID,
		UserCertificationLevel:           req.Level,
		UserCertificationGrantedBy:       authmw.Cid(c),
	}
	if err := ctrl.DB.WithContext(c.Context()).Create(&grant).Error; err != nil {
		return helper.JsonServerError(c, err)
	}
	ctrl.Audit.Record(c.Context(), auditsvc.ActorFromCtx(c),
		fmt.Sprintf("Granted certification '%d' to user '%d'", req.CertificationID, req.UserCid), nil, grant)
	return helper.JsonCreated(c, "Certification granted", grant)
}

// DELETE /v1/certifications/user/:userCertificationId
func (ctrl *CertificationController) RevokeCertification(c *fiber.Ctx) error {
	if !ctrl.allowed(c, constants.TrainingStaff) {
		return helper.JsonForbidden(c, "Forbidden")
	}
	grantID, err := c.ParamsInt("userCertificationId")
	if err != nil {
		return helper.JsonNotFound(c, "User certification not found")
	}

	var grant model.UserCertificationModel
	err = ctrl.DB.WithContext(c.Context()).First(&grant, "user_certification_id = ?", grantID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonNotFound(c, fmt.Sprintf("User certification '%d' not found", grantID))
	}
	if err != nil {
		return helper.JsonServerError(c, err)
	}

	if err := ctrl.DB.WithContext(c.Context()).Delete(&grant).Error; err != nil {
		return helper.JsonServerError(c, err)
	}
	ctrl.Audit.Record(c.Context(), auditsvc.ActorFromCtx(c),
		fmt.Sprintf("Revoked user certification '%d'", grantID), grant, nil)
	return helper.JsonOK(c, "Certification revoked", nil)
}
