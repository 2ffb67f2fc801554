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
	"artcc_backend/internals/features/comments/dto"
	"artcc_backend/internals/features/comments/model"
	usermodel "artcc_backend/internals/features/users/model"
	"artcc_backend/internals/helpers"
	authmw "artcc_backend/internals/middlewares/auth"
)

type CommentController struct {
	DB    *gorm.DB
	Roles *rolecache.Cache
	Audit auditsvc.Logger
}

func NewCommentController(db *gorm.DB, roles *rolecache.Cache, audit auditsvc.Logger) *CommentController {
	return &CommentController{DB: db, Roles: roles, Audit: audit}
}

func (ctrl *CommentController) allowed(c *fiber.Ctx, policy []string) bool {
	ok, err := ctrl.Roles.Validate(c.Context(), authmw.Cid(c), policy)
	if err != nil {
		log.Printf("[WARN] role check failed for cid=%d: %v", authmw.Cid(c), err)
		return false
	}
	return ok
}

// POST /v1/comments
func (ctrl *CommentController) CreateComment(c *fiber.Ctx) error {
	if !ctrl.allowed(c, constants.CanComment) {
		return helper.JsonForbidden(c, "Forbidden")
	}

	var req dto.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonValidationFailure(c, helper.BodyParseFailure(err))
	}
	if failures := helper.ValidateStruct(req); failures != nil {
		return helper.JsonValidationFailure(c, failures)
	}
	if req.CommentConfidential && !ctrl.allowed(c, constants.CanCommentConfidential) {
		return helper.JsonForbidden(c, "Confidential comments require senior staff")
	}

	var user usermodel.UserModel
	err := ctrl.DB.WithContext(c.Context()).First(&user, "user_cid = ?", req.CommentUserCid).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonNotFound(c, fmt.Sprintf("User '%d' not found", req.CommentUserCid))
	}
	if err != nil {
		return helper.JsonServerError(c, err)
	}

	comment := req.ToModel()
	comment.CommentSubmitterCid = authmw.Cid(c)
	if err := ctrl.DB.WithContext(c.Context()).Create(&comment).Error; err != nil {
		return helper.JsonServerError(c, err)
	}

	ctrl.Audit.Record(c.Context(), auditsvc.ActorFromCtx(c),
		fmt.Sprintf("Created comment '%d' on user '%d'", comment.CommentID, comment.CommentUserCid), nil, comment)
	return helper.JsonCreated(c, "Comment created", comment)
}

// GET /v1/comments/user/:cid
func (ctrl *CommentController) GetUserComments(c *fiber.Ctx) error {
	if !ctrl.allowed(c, constants.CanComment) {
		return helper.JsonForbidden(c, "Forbidden")
	}
	cid, err := c.ParamsInt("cid")
	if err != nil {
		return helper.JsonNotFound(c, "User not found")
	}

	paging := helper.ResolvePaging(c, 10, 50)
	query := ctrl.DB.WithContext(c.Context()).
		Model(&model.CommentModel{}).
		Where("comment_user_cid = ?", cid)
	if !ctrl.allowed(c, constants.CanCommentConfidential) {
		query = query.Where("comment_confidential = ?", false)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return helper.JsonServerError(c, err)
	}

	var comments []model.CommentModel
	err = query.
		Order("comment_created_at DESC").
		Offset(paging.Offset).Limit(paging.Size).
		Find(&comments).Error
	if err != nil {
		return helper.JsonServerError(c, err)
	}
	return helper.JsonList(c, "Comments retrieved", len(comments), int(total), comments)
}

// DELETE /v1/comments/:commentId
func (ctrl *CommentController) DeleteComment(c *fiber.Ctx) error {
	if !ctrl.allowed(c, constants.SeniorStaff) {
		return helper.JsonForbidden(c, "Forbidden")
	}
	commentID, err := c.ParamsInt("commentId")
	if err != nil {
		return helper.JsonNotFound(c, "Comment not found")
	}

	var comment model.CommentModel
	err = ctrl.DB.WithContext(c.Context()).First(&comment, "comment_id = ?", commentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonNotFound(c, fmt.Sprintf("Comment '%d' not found", commentID))
	}
	if err != nil {
		return helper.JsonServerError(c, err)
	}

	if err := ctrl.DB.WithContext(c.Context()).Delete(&comment).Error; err != nil {
		return helper.JsonServerError(c, err)
	}
	ctrl.Audit.Record(c.Context(), auditsvc.ActorFromCtx(c),
		fmt.Sprintf("Deleted comment '%d'", commentID), comment, nil)
	return helper.JsonOK(c, "Comment deleted", nil)
}
