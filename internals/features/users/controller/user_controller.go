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
	"artcc_backend/internals/features/users/dto"
	"artcc_backend/internals/features/users/model"
	"artcc_backend/internals/helpers"
	authmw "artcc_backend/internals/middlewares/auth"
)

type UserController struct {
	DB    *gorm.DB
	Roles *rolecache.Cache
	Audit auditsvc.Logger
}

func NewUserController(db *gorm.DB, roles *rolecache.Cache, audit auditsvc.Logger) *UserController {
	return &UserController{DB: db, Roles: roles, Audit: audit}
}

func (ctrl *UserController) allowed(c *fiber.Ctx, policy []string) bool {
	ok, err := ctrl.Roles.Validate(c.Context(), authmw.Cid(c), policy)
	if err != nil {
		log.Printf("[WARN] role check failed for cid=%d: %v", authmw.Cid(c), err)
		return false
	}
	return ok
}

// GET /v1/users
func (ctrl *UserController) GetUsers(c *fiber.Ctx) error {
	if !ctrl.allowed(c, constants.AllStaff) {
		return helper.JsonForbidden(c, "Forbidden")
	}

	paging := helper.ResolvePaging(c, 25, 100)

	var total int64
	if err := ctrl.DB.WithContext(c.Context()).Model(&model.UserModel{}).Count(&total).Error; err != nil {
		return helper.JsonServerError(c, err)
	}

	var users []model.UserModel
	err := ctrl.DB.WithContext(c.Context()).
		Preload("Roles").
		Order("user_last_name ASC, user_first_name ASC").
		Offset(paging.Offset).Limit(paging.Size).
		Find(&users).Error
	if err != nil {
		return helper.JsonServerError(c, err)
	}
	return helper.JsonList(c, "Users retrieved", len(users), int(total), users)
}

// GET /v1/users/:cid
func (ctrl *UserController) GetUser(c *fiber.Ctx) error {
	cid, err := c.ParamsInt("cid")
	if err != nil {
		return helper.JsonNotFound(c, "User not found")
	}
	// Members may fetch themselves; anything else needs staff.
	if cid != authmw.Cid(c) && !ctrl.allowed(c, constants.AllStaff) {
		return helper.JsonForbidden(c, "Forbidden")
	}

	var user model.UserModel
	err = ctrl.DB.WithContext(c.Context()).
		Preload("Roles").
		First(&user, "user_cid = ?", cid).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonNotFound(c, fmt.Sprintf("User '%d' not found", cid))
	}
	if err != nil {
		return helper.JsonServerError(c, err)
	}
	return helper.JsonOK(c, "User retrieved", user)
}

// PUT /v1/users
func (ctrl *UserController) UpdateUser(c *fiber.Ctx) error {
	if !ctrl.allowed(c, constants.SeniorStaff) {
		return helper.JsonForbidden(c, "Forbidden")
	}

	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonValidationFailure(c, helper.BodyParseFailure(err))
	}
	if failures := helper.ValidateStruct(req); failures != nil {
		return helper.JsonValidationFailure(c, failures)
	}

	var user model.UserModel
	err := ctrl.DB.WithContext(c.Context()).First(&user, "user_cid = ?", req.UserCid).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonNotFound(c, fmt.Sprintf("User '%d' not found", req.UserCid))
	}
	if err != nil {
		return helper.JsonServerError(c, err)
	}

	before := user
	req.Apply(&user)
	if err := ctrl.DB.WithContext(c.Context()).Save(&user).Error; err != nil {
		return helper.JsonServerError(c, err)
	}

	ctrl.Audit.Record(c.Context(), auditsvc.ActorFromCtx(c),
		fmt.Sprintf("Updated user '%d'", user.UserCid), before, user)

	// Capability flags live in the cached role set.
	if err := ctrl.Roles.Refresh(c.Context(), user.UserCid); err != nil {
		log.Printf("[WARN] role cache refresh for cid=%d: %v", user.UserCid, err)
	}
	return helper.JsonOK(c, "User updated", user)
}

// POST /v1/users/:cid/roles
func (ctrl *UserController) AddRole(c *fiber.Ctx) error {
	if !ctrl.allowed(c, constants.SeniorStaff) {
		return helper.JsonForbidden(c, "Forbidden")
	}
	cid, err := c.ParamsInt("cid")
	if err != nil {
		return helper.JsonNotFound(c, "User not found")
	}

	var req dto.AddRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonValidationFailure(c, helper.BodyParseFailure(err))
	}
	if failures := helper.ValidateStruct(req); failures != nil {
		return helper.JsonValidationFailure(c, failures)
	}

	var user model.UserModel
	err = ctrl.DB.WithContext(c.Context()).Preload("Roles").First(&user, "user_cid = ?", cid).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonNotFound(c, fmt.Sprintf("User '%d' not found", cid))
	}
	if err != nil {
		return helper.JsonServerError(c, err)
	}

	var role model.RoleModel
	err = ctrl.DB.WithContext(c.Context()).First(&role, "role_id = ?", req.RoleID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonNotFound(c, fmt.Sprintf("Role '%d' not found", req.RoleID))
	}
	if err != nil {
		return helper.JsonServerError(c, err)
	}

	for _, held := range user.Roles {
		if held.RoleID == role.RoleID {
			return helper.JsonValidationFailure(c, []apperr.FieldFailure{{
				PropertyName:   "RoleID",
				AttemptedValue: role.RoleID,
				ErrorMessage:   fmt.Sprintf("User already holds role '%s'", role.RoleNameShort),
			}})
		}
	}

	if err := ctrl.DB.WithContext(c.Context()).Model(&user).Association("Roles").Append(&role); err != nil {
		return helper.JsonServerError(c, err)
	}

	ctrl.Audit.Record(c.Context(), auditsvc.ActorFromCtx(c),
		fmt.Sprintf("Added role '%s' to user '%d'", role.RoleNameShort, cid), nil, role)
	if err := ctrl.Roles.Refresh(c.Context(), cid); err != nil {
		log.Printf("[WARN] role cache refresh for cid=%d: %v", cid, err)
	}
	return helper.JsonOK(c, "Role added", role)
}

// DELETE /v1/users/:cid/roles/:roleId
func (ctrl *UserController) RemoveRole(c *fiber.Ctx) error {
	if !ctrl.allowed(c, constants.SeniorStaff) {
		return helper.JsonForbidden(c, "Forbidden")
	}
	cid, err := c.ParamsInt("cid")
	if err != nil {
		return helper.JsonNotFound(c, "User not found")
	}
	roleID, err := c.ParamsInt("roleId")
	if err != nil {
		return helper.JsonNotFound(c, "Role not found")
	}

	var user model.UserModel
	err = ctrl.DB.WithContext(c.Context()).Preload("Roles").First(&user, "user_cid = ?", cid).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonNotFound(c, fmt.Sprintf("User '%d' not found", cid))
	}
	if err != nil {
		return helper.JsonServerError(c, err)
	}

	var held *model.RoleModel
	for i := range user.Roles {
		if user.Roles[i].RoleID == roleID {
			held = &user.Roles[i]
			break
		}
	}
	if held == nil {
		return helper.JsonNotFound(c, fmt.Sprintf("User '%d' does not hold role '%d'", cid, roleID))
	}

	if err := ctrl.DB.WithContext(c.Context()).Model(&user).Association("Roles").Delete(held); err != nil {
		return helper.JsonServerError(c, err)
	}

	ctrl.Audit.Record(c.Context(), auditsvc.ActorFromCtx(c),
		fmt.Sprintf("Removed role '%s' from user '%d'", held.RoleNameShort, cid), held, nil)
	if err := ctrl.Roles.Refresh(c.Context(), cid); err != nil {
		log.Printf("[WARN] role cache refresh for cid=%d: %v", cid, err)
	}
	return helper.JsonOK(c, "Role removed", nil)
}

// GET /v1/users/roles
func (ctrl *UserController) GetRoles(c *fiber.Ctx) error {
	if !ctrl.allowed(c, constants.AllStaff) {
		return helper.JsonForbidden(c, "Forbidden")
	}
	var roles []model.RoleModel
	if err := ctrl.DB.WithContext(c.Context()).Order("role_id ASC").Find(&roles).Error; err != nil {
		return helper.JsonServerError(c, err)
	}
	return helper.JsonList(c, "Roles retrieved", len(roles), len(roles), roles)
}
