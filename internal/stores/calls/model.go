package calls

import (
	"time"

	"gorm.io/gorm"
)

// CallModel represents the database model for call records
type CallModel struct {
	Seq       uint           `json:"-" gorm:"column:seq;primaryKey;autoIncrement"`
	CreatedAt time.Time      `json:"created_at" gorm:"column:created_at"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"column:deleted_at;index"`

	CallID       string    `json:"id" gorm:"column:call_id;unique;not null;size:64"`
	UserName     string    `json:"userName" gorm:"column:user_name;size:255"`
	PhoneNumber  string    `json:"phoneNumber" gorm:"column:phone_number;size:32"`
	Prompt       string    `json:"prompt" gorm:"column:prompt;type:text"`
	PromptOrigin string    `json:"promptOrigin" gorm:"column:prompt_origin;size:16"`
	Status       string    `json:"status" gorm:"column:status;size:16;not null;index"`
	Timestamp    time.Time `json:"timestamp" gorm:"column:timestamp;not null;index"`
}

// TableName sets the table name for GORM
func (CallModel) TableName() string {
	return "call_records"
}
