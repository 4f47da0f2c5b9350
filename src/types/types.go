package types

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

type Timestamps struct {
	CreatedAt time.Time `gorm:"autoCreateTime:nano" json:"createdAt,omitempty"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:nano" json:"updatedAt,omitempty"`
}

type Order string

const (
	ORDER_ASC  Order = "ASC"
	ORDER_DESC Order = "DESC"
)

type TransportMedium string

const (
	TRANSPORT_BUS   TransportMedium = "BUS"
	TRANSPORT_TRAIN TransportMedium = "TRAIN"
	TRANSPORT_FERRY TransportMedium = "FERRY"
)

// AdminIdentity is the authenticated administrator, identified solely by the
// ledger address that signed the auth transaction.
type AdminIdentity struct {
	Address string `json:"address"`
}

type Claims struct {
	Address string `json:"address"`
	jwt.RegisteredClaims
}

type AdminLoginRequestBody struct {
	AuthTxnBase64 string `json:"authTxnBase64" binding:"required"`
}

type AdminSession struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int64  `json:"expiresIn"`
}

type CreateRouteRequestBody struct {
	AppID           uint64          `json:"appId" binding:"required"`
	Price           float64         `json:"price" binding:"required,gte=0"`
	TransportMedium TransportMedium `json:"transportMedium" binding:"required,oneof=BUS TRAIN FERRY"`
	From            string          `json:"from" binding:"required"`
	FromStateCode   string          `json:"fromStateCode" binding:"required"`
	FromTerminal    string          `json:"fromTerminal" binding:"required"`
	To              string          `json:"to" binding:"required"`
	ToStateCode     string          `json:"toStateCode" binding:"required"`
	ToTerminal      string          `json:"toTerminal" binding:"required"`
}

type UpdateRouteRequestBody struct {
	AppID           *uint64          `json:"appId,omitempty"`
	Price           *float64         `json:"price,omitempty" binding:"omitempty,gte=0"`
	TransportMedium *TransportMedium `json:"transportMedium,omitempty" binding:"omitempty,oneof=BUS TRAIN FERRY"`
	From            *string          `json:"from,omitempty"`
	FromStateCode   *string          `json:"fromStateCode,omitempty"`
	FromTerminal    *string          `json:"fromTerminal,omitempty"`
	To              *string          `json:"to,omitempty"`
	ToStateCode     *string          `json:"toStateCode,omitempty"`
	ToTerminal      *string          `json:"toTerminal,omitempty"`
}

type CreateTicketRequestBody struct {
	AssetID          uint64 `json:"assetId" binding:"required"`
	BuyerAddress     string `json:"buyerAddress" binding:"required,algoaddress"`
	RouteID          string `json:"routeId" binding:"required"`
	DepartureDate    string `json:"departureDate" binding:"required"`
	NumberOfAdults   uint   `json:"numberOfAdults"`
	NumberOfChildren uint   `json:"numberOfChildren"`
	NumberOfInfants  uint   `json:"numberOfInfants"`
	IpfsURL          string `json:"ipfsUrl" binding:"required"`
}

type UseTicketRequestBody struct {
	TicketID     string `json:"ticketId" binding:"required"`
	OwnerAddress string `json:"ownerAddress" binding:"required,algoaddress"`
}

type BurnTicketRequestBody struct {
	TicketID     string `json:"ticketId" binding:"required"`
	OwnerAddress string `json:"ownerAddress" binding:"required"`
}

// PageOptions carries the raw pagination query. Skip is derived, never bound.
type PageOptions struct {
	Order             Order  `form:"order"`
	Page              int    `form:"page" binding:"omitempty,min=1"`
	NumOfItemsPerPage int    `form:"numOfItemsPerPage" binding:"omitempty,min=1,max=50"`
	SearchTerm        string `form:"searchTerm"`
	Used              string `form:"used"`
	Skip              int    `form:"-"`
}

type PageMeta struct {
	Page              int   `json:"page"`
	NumOfItemsPerPage int   `json:"numOfItemsPerPage"`
	ItemCount         int64 `json:"itemCount"`
	PageCount         int64 `json:"pageCount"`
	HasPreviousPage   bool  `json:"hasPreviousPage"`
	HasNextPage       bool  `json:"hasNextPage"`
}

type PaginatedResponse[T any] struct {
	Data       []T      `json:"data"`
	Pagination PageMeta `json:"pagination"`
}

type RouteView struct {
	ID              string          `json:"id"`
	CreatedAt       time.Time       `json:"createdAt"`
	AppID           uint64          `json:"appId"`
	Price           float64         `json:"price"`
	TransportMedium TransportMedium `json:"transportMedium"`
	From            string          `json:"from"`
	FromStateCode   string          `json:"fromStateCode"`
	FromTerminal    string          `json:"fromTerminal"`
	To              string          `json:"to"`
	ToStateCode     string          `json:"toStateCode"`
	ToTerminal      string          `json:"toTerminal"`
}

// RouteSnapshot is the slice of route state echoed on every ticket view. It
// reflects the route as it is at read time, not at ticket creation time.
type RouteSnapshot struct {
	AppID           uint64          `json:"appId"`
	Price           float64         `json:"price"`
	TransportMedium TransportMedium `json:"transportMedium"`
	From            string          `json:"from"`
	FromStateCode   string          `json:"fromStateCode"`
	FromTerminal    string          `json:"fromTerminal"`
	To              string          `json:"to"`
	ToStateCode     string          `json:"toStateCode"`
	ToTerminal      string          `json:"toTerminal"`
}

type TicketView struct {
	ID               string    `json:"id"`
	CreatedAt        time.Time `json:"createdAt"`
	AssetID          uint64    `json:"assetId"`
	BuyerAddress     string    `json:"buyerAddress"`
	RouteID          string    `json:"routeId"`
	DepartureDate    string    `json:"departureDate"`
	NumberOfAdults   uint      `json:"numberOfAdults"`
	NumberOfChildren uint      `json:"numberOfChildren"`
	NumberOfInfants  uint      `json:"numberOfInfants"`
	Used             bool      `json:"used"`
	IpfsURL          string    `json:"ipfsUrl"`

	RouteSnapshot
}

type TicketsStatistics struct {
	TotalTickets int64   `json:"totalTickets"`
	TotalRoutes  int64   `json:"totalRoutes"`
	TotalRevenue float64 `json:"totalRevenue"`
}
