package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type KBDocument struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Source    string    `gorm:"type:varchar(255);not null;index"`
	DocType   string    `gorm:"type:varchar(64);not null"`
	Category  string    `gorm:"type:varchar(64);index"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (KBDocument) TableName() string {
	return "kb_documents"
}
