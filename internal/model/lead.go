package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusClosed    LeadStatus = "closed"
	LeadStatusLost      LeadStatus = "lost"
)

// ValidLeadStatuses is the full status pipeline, in display order.
var ValidLeadStatuses = []LeadStatus{
	LeadStatusNew,
	LeadStatusContacted,
	LeadStatusClosed,
	LeadStatusLost,
}

func (s LeadStatus) IsValid() bool {
	switch s {
	case LeadStatusNew, LeadStatusContacted, LeadStatusClosed, LeadStatusLost:
		return true
	}
	return false
}

// Lead is one submitted inquiry from the public form. Only Status is
// mutable after creation; everything else is written exactly once.
type Lead struct {
	ID           string         `json:"id" gorm:"primaryKey;size:36"`
	Name         string         `json:"name"`
	Email        string         `json:"email"`
	Phone        string         `json:"phone"`
	BusinessName string         `json:"businessName"`
	Plan         string         `json:"plan"`
	Message      string         `json:"message" gorm:"type:text"`
	Status       LeadStatus     `json:"status" gorm:"size:20;default:'new'"`
	Metadata     datatypes.JSON `json:"metadata,omitempty"`

	// Assigned by the database, not the client clock. Sole sort key.
	CreatedAt time.Time `json:"createdAt" gorm:"default:now()"`
}

func (l *Lead) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

// EffectiveStatus treats legacy rows without a status as "new".
func (l *Lead) EffectiveStatus() LeadStatus {
	if l.Status == "" {
		return LeadStatusNew
	}
	return l.Status
}
