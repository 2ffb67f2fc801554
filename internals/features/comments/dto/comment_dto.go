package dto

import (
	"artcc_backend/internals/features/comments/model"
)

type CreateCommentRequest struct {
	CommentUserCid      int    `json:"comment_user_cid" validate:"required"`
	CommentConfidential bool   `json:"comment_confidential"`
	CommentTitle        string `json:"comment_title" validate:"required,max=255"`
	CommentDescription  string `json:"comment_description" validate:"required"`
}

func (r CreateCommentRequest) ToModel() model.CommentModel {
	return model.CommentModel{
		CommentUserCid:      r.CommentUserCid,
		CommentConfidential: r.CommentConfidential,
		CommentTitle:        r.CommentTitle,
		CommentDescription:  r.CommentDescription,
	}
}
