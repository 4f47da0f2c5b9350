package services

import (
	"context"

	"fluxtrail/src/types"
)

// StatsService derives aggregate counts and revenue from ticket and route
// state. Counts include burned and used tickets.
type StatsService struct {
	tickets TicketStore
	routes  RouteStore
}

func NewStatsService(tickets TicketStore, routes RouteStore) *StatsService {
	return &StatsService{tickets: tickets, routes: routes}
}

// Compute walks every ticket and sums route price times headcount. Tickets
// whose route no longer resolves contribute nothing.
// TODO: fold the per-ticket route lookup into a storage-side aggregation
// once ticket volume makes this loop noticeable.
func (s *StatsService) Compute(ctx context.Context) (*types.TicketsStatistics, error) {
	totalTickets, err := s.tickets.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalRoutes, err := s.routes.Count(ctx)
	if err != nil {
		return nil, err
	}

	tickets, err := s.tickets.All(ctx)
	if err != nil {
		return nil, err
	}

	var totalRevenue float64
	for i := range tickets {
		route, err := s.routes.GetByID(ctx, tickets[i].RouteID)
		if err != nil {
			return nil, err
		}
		if route == nil {
			continue
		}
		headcount := tickets[i].NumberOfAdults + tickets[i].NumberOfChildren + tickets[i].NumberOfInfants
		totalRevenue += route.Price * float64(headcount)
	}

	return &types.TicketsStatistics{
		TotalTickets: totalTickets,
		TotalRoutes:  totalRoutes,
		TotalRevenue: totalRevenue,
	}, nil
}
