package models

import (
	"fluxtrail/src/types"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Route struct {
	ID              string                `gorm:"type:uuid;primaryKey" json:"id"`
	AppID           uint64                `gorm:"uniqueIndex" json:"appId"`
	Price           float64               `json:"price"`
	TransportMedium types.TransportMedium `gorm:"type:text;default:'BUS'" json:"transportMedium"`
	From            string                `gorm:"column:from_location" json:"from"`
	FromStateCode   string                `json:"fromStateCode"`
	FromTerminal    string                `json:"fromTerminal"`
	To              string                `gorm:"column:to_location" json:"to"`
	ToStateCode     string                `json:"toStateCode"`
	ToTerminal      string                `json:"toTerminal"`

	types.Timestamps
}

func (r *Route) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
