package model

import (
	"time"

	"github.com/google/uuid"
)

type Ticket struct {
	Id                 uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RequestText        string    `gorm:"type:text;not null"`
	UserEmail          string    `gorm:"type:varchar(255)"`
	Category           string    `gorm:"type:varchar(64);not null;index"`
	Confidence         float64
	KeywordsMatched    string `gorm:"type:text"` // newline-joined
	Reasoning          string `gorm:"type:text"`
	ShouldEscalate     bool   `gorm:"index"`
	MatchedRuleId      string `gorm:"type:varchar(128)"`
	EscalationLevel    string `gorm:"type:varchar(64)"`
	ContactInfo        string `gorm:"type:varchar(255)"`
	SLADeadline        *time.Time
	Answer             string `gorm:"type:text"`
	ResponseConfidence float64
	CreatedAt          time.Time `gorm:"autoCreateTime;index"`
}

func (Ticket) TableName() string {
	return "tickets"
}
