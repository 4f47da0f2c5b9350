package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"fluxtrail/src/models"
	"fluxtrail/src/types"

	"github.com/google/uuid"
)

// MemoryRouteStore is an in-memory RouteStore for tests.
type MemoryRouteStore struct {
	mu     sync.RWMutex
	routes map[string]models.Route
	seq    int
}

func NewMemoryRouteStore() *MemoryRouteStore {
	return &MemoryRouteStore{routes: make(map[string]models.Route)}
}

func (s *MemoryRouteStore) Create(ctx context.Context, route *models.Route) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if route.ID == "" {
		route.ID = uuid.NewString()
	}
	s.seq++
	route.CreatedAt = time.Unix(0, int64(s.seq))
	route.UpdatedAt = route.CreatedAt
	s.routes[route.ID] = *route
	return nil
}

func (s *MemoryRouteStore) GetByID(ctx context.Context, id string) (*models.Route, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	route, ok := s.routes[id]
	if !ok {
		return nil, nil
	}
	return &route, nil
}

func (s *MemoryRouteStore) GetByAppID(ctx context.Context, appID uint64) (*models.Route, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, route := range s.routes {
		if route.AppID == appID {
			r := route
			return &r, nil
		}
	}
	return nil, nil
}

func (s *MemoryRouteStore) List(ctx context.Context, opts types.PageOptions) ([]models.Route, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var matched []models.Route
	for _, route := range s.routes {
		if opts.SearchTerm != "" {
			term := strings.ToLower(opts.SearchTerm)
			if !strings.Contains(strings.ToLower(route.From), term) && !strings.Contains(strings.ToLower(route.To), term) {
				continue
			}
		}
		matched = append(matched, route)
	}
	sortByCreatedAt(matched, opts.Order)
	itemCount := int64(len(matched))
	return window(matched, opts.Skip, opts.NumOfItemsPerPage), itemCount, nil
}

func (s *MemoryRouteStore) All(ctx context.Context) ([]models.Route, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var routes []models.Route
	for _, route := range s.routes {
		routes = append(routes, route)
	}
	sortByCreatedAt(routes, types.ORDER_ASC)
	return routes, nil
}

func (s *MemoryRouteStore) Update(ctx context.Context, id string, fields *types.UpdateRouteRequestBody) (*models.Route, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	route, ok := s.routes[id]
	if !ok {
		return nil, nil
	}
	if fields.AppID != nil {
		route.AppID = *fields.AppID
	}
	if fields.Price != nil {
		route.Price = *fields.Price
	}
	if fields.TransportMedium != nil {
		route.TransportMedium = *fields.TransportMedium
	}
	if fields.From != nil {
		route.From = *fields.From
	}
	if fields.FromStateCode != nil {
		route.FromStateCode = *fields.FromStateCode
	}
	if fields.FromTerminal != nil {
		route.FromTerminal = *fields.FromTerminal
	}
	if fields.To != nil {
		route.To = *fields.To
	}
	if fields.ToStateCode != nil {
		route.ToStateCode = *fields.ToStateCode
	}
	if fields.ToTerminal != nil {
		route.ToTerminal = *fields.ToTerminal
	}
	route.UpdatedAt = time.Now()
	s.routes[id] = route
	return &route, nil
}

func (s *MemoryRouteStore) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.routes[id]; !ok {
		return false, nil
	}
	delete(s.routes, id)
	return true, nil
}

func (s *MemoryRouteStore) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.routes)), nil
}

// MemoryTicketStore is an in-memory TicketStore for tests.
type MemoryTicketStore struct {
	mu      sync.RWMutex
	tickets map[string]models.Ticket
	seq     int
}

func NewMemoryTicketStore() *MemoryTicketStore {
	return &MemoryTicketStore{tickets: make(map[string]models.Ticket)}
}

func (s *MemoryTicketStore) Create(ctx context.Context, ticket *models.Ticket) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ticket.ID == "" {
		ticket.ID = uuid.NewString()
	}
	s.seq++
	ticket.CreatedAt = time.Unix(0, int64(s.seq))
	ticket.UpdatedAt = ticket.CreatedAt
	s.tickets[ticket.ID] = *ticket
	return nil
}

func (s *MemoryTicketStore) GetByID(ctx context.Context, id string) (*models.Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ticket, ok := s.tickets[id]
	if !ok {
		return nil, nil
	}
	return &ticket, nil
}

func (s *MemoryTicketStore) GetByAssetID(ctx context.Context, assetID uint64, excludeDeleted bool) (*models.Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ticket := range s.tickets {
		if ticket.AssetID != assetID {
			continue
		}
		if excludeDeleted && ticket.Deleted {
			continue
		}
		t := ticket
		return &t, nil
	}
	return nil, nil
}

func (s *MemoryTicketStore) List(ctx context.Context, filter TicketFilter, opts types.PageOptions) ([]models.Ticket, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var matched []models.Ticket
	for _, ticket := range s.tickets {
		if filter.ExcludeDeleted && ticket.Deleted {
			continue
		}
		if filter.BuyerAddress != "" && ticket.BuyerAddress != filter.BuyerAddress {
			continue
		}
		if filter.Used != nil && ticket.Used != *filter.Used {
			continue
		}
		if opts.SearchTerm != "" && !strings.Contains(strings.ToLower(ticket.BuyerAddress), strings.ToLower(opts.SearchTerm)) {
			continue
		}
		matched = append(matched, ticket)
	}
	sort.Slice(matched, func(i, j int) bool {
		if opts.Order == types.ORDER_ASC {
			return matched[i].CreatedAt.Before(matched[j].CreatedAt)
		}
		return matched[j].CreatedAt.Before(matched[i].CreatedAt)
	})
	itemCount := int64(len(matched))
	return windowTickets(matched, opts.Skip, opts.NumOfItemsPerPage), itemCount, nil
}

func (s *MemoryTicketStore) SetUsed(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ticket, ok := s.tickets[id]
	if !ok || ticket.Used {
		return false, nil
	}
	ticket.Used = true
	ticket.UpdatedAt = time.Now()
	s.tickets[id] = ticket
	return true, nil
}

func (s *MemoryTicketStore) SetDeleted(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ticket, ok := s.tickets[id]
	if !ok {
		return nil
	}
	ticket.Deleted = true
	ticket.UpdatedAt = time.Now()
	s.tickets[id] = ticket
	return nil
}

func (s *MemoryTicketStore) All(ctx context.Context) ([]models.Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var tickets []models.Ticket
	for _, ticket := range s.tickets {
		tickets = append(tickets, ticket)
	}
	return tickets, nil
}

func (s *MemoryTicketStore) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.tickets)), nil
}

// StaticLedger is a canned AssetLedger for tests.
type StaticLedger struct {
	Assets           map[uint64]bool
	Holdings         map[string]map[uint64]bool
	InvalidAddresses map[string]bool
}

func NewStaticLedger() *StaticLedger {
	return &StaticLedger{
		Assets:           make(map[uint64]bool),
		Holdings:         make(map[string]map[uint64]bool),
		InvalidAddresses: make(map[string]bool),
	}
}

func (l *StaticLedger) AssetExists(ctx context.Context, assetID uint64) (bool, error) {
	return l.Assets[assetID], nil
}

func (l *StaticLedger) AccountHoldsAsset(ctx context.Context, address string, assetID uint64) (bool, error) {
	return l.Holdings[address][assetID], nil
}

func (l *StaticLedger) IsValidAddress(address string) bool {
	return !l.InvalidAddresses[address]
}

func (l *StaticLedger) Hold(address string, assetID uint64) {
	if l.Holdings[address] == nil {
		l.Holdings[address] = make(map[uint64]bool)
	}
	l.Holdings[address][assetID] = true
}

func (l *StaticLedger) Release(address string, assetID uint64) {
	if l.Holdings[address] != nil {
		l.Holdings[address][assetID] = false
	}
}

func sortByCreatedAt(routes []models.Route, order types.Order) {
	sort.Slice(routes, func(i, j int) bool {
		if order == types.ORDER_ASC {
			return routes[i].CreatedAt.Before(routes[j].CreatedAt)
		}
		return routes[j].CreatedAt.Before(routes[i].CreatedAt)
	})
}

func window(routes []models.Route, skip int, limit int) []models.Route {
	if skip >= len(routes) {
		return nil
	}
	routes = routes[skip:]
	if limit > 0 && len(routes) > limit {
		routes = routes[:limit]
	}
	return routes
}

func windowTickets(tickets []models.Ticket, skip int, limit int) []models.Ticket {
	if skip >= len(tickets) {
		return nil
	}
	tickets = tickets[skip:]
	if limit > 0 && len(tickets) > limit {
		tickets = tickets[:limit]
	}
	return tickets
}
