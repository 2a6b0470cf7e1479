package discussion

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Author struct {
	ID   uuid.UUID `gorm:"type:uuid;index" json:"id"`
	Name string    `gorm:"type:text" json:"name"`
}

type Stats struct {
	Upvotes   int `gorm:"not null;default:0" json:"upvotes"`
	Downvotes int `gorm:"not null;default:0" json:"downvotes"`
	Replies   int `gorm:"not null;default:0" json:"replies"`
}

type Discussion struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	QuestionID string    `gorm:"type:text;not null;index" json:"questionId"`
	Title      string    `gorm:"type:text;not null" json:"title"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	Category   string    `gorm:"type:text;not null;index" json:"category"`
	Author     Author    `gorm:"embedded;embeddedPrefix:author_" json:"author"`
	Stats      Stats     `gorm:"embedded;embeddedPrefix:stats_" json:"stats"`
	Status     Status    `gorm:"type:text;not null;default:OPEN" json:"status"`
	CreatedAt  time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (d *Discussion) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	if d.QuestionID == "" {
		d.QuestionID = newQuestionID()
	}
	if d.Status == "" {
		d.Status = StatusOpen
	}
	return nil
}

type Reply struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	DiscussionID uuid.UUID `gorm:"type:uuid;not null;index" json:"discussionId"`
	Author       Author    `gorm:"embedded;embeddedPrefix:author_" json:"author"`
	Content      string    `gorm:"type:text;not null" json:"content"`
	CreatedAt    time.Time `gorm:"index" json:"createdAt"`
}

func (Reply) TableName() string { return "discussion_replies" }

func (r *Reply) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// Vote is unique per (discussion, user).
type Vote struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	DiscussionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_vote_discussion_user" json:"discussionId"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_vote_discussion_user" json:"userId"`
	Type         VoteType  `gorm:"type:text;not null" json:"type"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (Vote) TableName() string { return "discussion_votes" }

func (v *Vote) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

func newQuestionID() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "QST-" + strings.ToUpper(raw[:8])
}
