package model

import (
	"time"
)

// CommentModel is a staff note on a member's record. Confidential
// comments are only visible to senior staff.
type CommentModel struct {
	CommentID           int       `gorm:"column:comment_id;primaryKey;autoIncrement" json:"comment_id"`
	CommentUserCid      int       `gorm:"column:comment_user_cid;not null;index" json:"comment_user_cid"`
	CommentSubmitterCid int       `gorm:"column:comment_submitter_cid;not null" json:"comment_submitter_cid"`
	CommentConfidential bool      `gorm:"column:comment_confidential;not null;default:false;index" json:"comment_confidential"`
	CommentTitle        string    `gorm:"column:comment_title;size:255;not null" json:"comment_title"`
	CommentDescription  string    `gorm:"column:comment_description;type:text;not null" json:"comment_description"`
	CommentCreatedAt    time.Time `gorm:"column:comment_created_at;autoCreateTime" json:"comment_created_at"`
}

func (CommentModel) TableName() string {
	return "comments"
}
