package utils

import (
	"fluxtrail/src/models"
	"fluxtrail/src/types"
)

func ToRouteView(route *models.Route) *types.RouteView {
	return &types.RouteView{
		ID:              route.ID,
		CreatedAt:       route.CreatedAt,
		AppID:           route.AppID,
		Price:           route.Price,
		TransportMedium: route.TransportMedium,
		From:            route.From,
		FromStateCode:   route.FromStateCode,
		FromTerminal:    route.FromTerminal,
		To:              route.To,
		ToStateCode:     route.ToStateCode,
		ToTerminal:      route.ToTerminal,
	}
}

// ToTicketView flattens a ticket together with the current state of its
// route. Route edits therefore show up on previously issued tickets.
func ToTicketView(ticket *models.Ticket, route *models.Route) *types.TicketView {
	return &types.TicketView{
		ID:               ticket.ID,
		CreatedAt:        ticket.CreatedAt,
		AssetID:          ticket.AssetID,
		BuyerAddress:     ticket.BuyerAddress,
		RouteID:          route.ID,
		DepartureDate:    ticket.DepartureDate,
		NumberOfAdults:   ticket.NumberOfAdults,
		NumberOfChildren: ticket.NumberOfChildren,
		NumberOfInfants:  ticket.NumberOfInfants,
		Used:             ticket.Used,
		IpfsURL:          ticket.IpfsURL,
		RouteSnapshot: types.RouteSnapshot{
			AppID:           route.AppID,
			Price:           route.Price,
			TransportMedium: route.TransportMedium,
			From:            route.From,
			FromStateCode:   route.FromStateCode,
			FromTerminal:    route.FromTerminal,
			To:              route.To,
			ToStateCode:     route.ToStateCode,
			ToTerminal:      route.ToTerminal,
		},
	}
}
