package models

import (
	"fluxtrail/src/types"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ticket is bound 1:1 to a ledger asset. Used and Deleted only ever move
// from false to true; Deleted marks a burned ticket.
type Ticket struct {
	ID               string `gorm:"type:uuid;primaryKey" json:"id"`
	AssetID          uint64 `gorm:"uniqueIndex" json:"assetId"`
	BuyerAddress     string `gorm:"index" json:"buyerAddress"`
	RouteID          string `gorm:"type:uuid" json:"routeId"`
	DepartureDate    string `json:"departureDate"`
	NumberOfAdults   uint   `gorm:"default:0" json:"numberOfAdults"`
	NumberOfChildren uint   `gorm:"default:0" json:"numberOfChildren"`
	NumberOfInfants  uint   `gorm:"default:0" json:"numberOfInfants"`
	Used             bool   `gorm:"default:false" json:"used"`
	Deleted          bool   `gorm:"default:false" json:"deleted"`
	IpfsURL          string `json:"ipfsUrl"`

	types.Timestamps
}

func (t *Ticket) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
