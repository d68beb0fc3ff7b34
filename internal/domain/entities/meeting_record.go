package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// MeetingSource tells how the meeting content reached the service
type MeetingSource string

const (
	MeetingSourceText  MeetingSource = "text"
	MeetingSourceAudio MeetingSource = "audio"
)

// MeetingRecord is the persisted outcome of one analyze call
type MeetingRecord struct {
	ID            uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Source        MeetingSource  `json:"source" gorm:"type:varchar(20);not null"`
	ModelUsed     string         `json:"model_used" gorm:"type:varchar(100)"`
	ReferenceDate string         `json:"reference_date" gorm:"type:varchar(10)"`
	AudioObject   *string        `json:"audio_object,omitempty" gorm:"type:text"`
	Analysis      datatypes.JSON `json:"analysis" gorm:"type:jsonb;not null"`
	Warnings      datatypes.JSON `json:"warnings" gorm:"type:jsonb;default:'[]'"`
	SyncResult    datatypes.JSON `json:"sync_result,omitempty" gorm:"type:jsonb"`
	CreatedAt     time.Time      `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for MeetingRecord
func (MeetingRecord) TableName() string {
	return "meeting_records"
}

// NewMeetingRecord creates a record with a fresh ID
func NewMeetingRecord(source MeetingSource, model, referenceDate string) *MeetingRecord {
	return &MeetingRecord{
		ID:            uuid.New(),
		Source:        source,
		ModelUsed:     model,
		ReferenceDate: referenceDate,
	}
}
