package controller

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"artcc_backend/internals/cache/rolecache"
	"artcc_backend/internals/constants"
	"artcc_backend/internals/features/audit/model"
	helper "artcc_backend/internals/helpers"
	authmw "artcc_backend/internals/middlewares/auth"
)

type WebsiteLogController struct {
	DB    *gorm.DB
	Roles *rolecache.Cache
}

func NewWebsiteLogController(db *gorm.DB, roles *rolecache.Cache) *WebsiteLogController {
	return &WebsiteLogController{DB: db, Roles: roles}
}

// GetWebsiteLogs lists audit entries, newest first. Senior staff only.
func (ctrl *WebsiteLogController) GetWebsiteLogs(c *fiber.Ctx) error {
	ok, err := ctrl.Roles.Validate(c.UserContext(), authmw.Cid(c), constants.SeniorStaff)
	if err != nil {
		return helper.JsonServerError(c, err)
	}
	if !ok {
		return helper.JsonUnauthorized(c)
	}

	paging := helper.ResolvePaging(c, 10, 100)

	var total int64
	if err := ctrl.DB.WithContext(c.UserContext()).
		Model(&model.WebsiteLogModel{}).
		Count(&total).Error; err != nil {
		return helper.JsonServerError(c, err)
	}

	var logs []model.WebsiteLogModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Order("website_log_created_at DESC").
		Limit(paging.Size).
		Offset(paging.Offset).
		Find(&logs).Error; err != nil {
		return helper.JsonServerError(c, err)
	}

	return helper.JsonList(c, fmt.Sprintf("Got %d website logs", len(logs)), len(logs), int(total), logs)
}
