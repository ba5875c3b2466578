package models

import "github.com/google/uuid"

// ForumPost represents a top-level discussion thread in the partner forum
type ForumPost struct {
	Base
	UserID     uuid.UUID    `gorm:"type:uuid;index;not null" json:"user_id"`
	User       User         `gorm:"foreignKey:UserID" json:"-"`
	Title      string       `gorm:"type:varchar(255);not null" json:"title"`
	Slug       string       `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	Body       string       `gorm:"type:text;not null" json:"body"`
	Category   string       `gorm:"type:varchar(100)" json:"category"`
	ReplyCount int          `gorm:"default:0" json:"reply_count"`
	Replies    []ForumReply `gorm:"foreignKey:PostID" json:"replies,omitempty"`
}

// ForumReply represents a reply within a thread. No edit history is kept.
type ForumReply struct {
	Base
	PostID uuid.UUID `gorm:"type:uuid;index;not null" json:"post_id"`
	Post   ForumPost `gorm:"foreignKey:PostID" json:"-"`
	UserID uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	User   User      `gorm:"foreignKey:UserID" json:"-"`
	Body   string    `gorm:"type:text;not null" json:"body"`
}
