package services

import (
	"context"
	"log"

	"fluxtrail/src/common"
	"fluxtrail/src/lib"
	"fluxtrail/src/models"
	"fluxtrail/src/types"
	"fluxtrail/src/utils"
)

type TicketFilter struct {
	BuyerAddress   string
	Used           *bool
	ExcludeDeleted bool
}

// TicketStore is the persistence surface for tickets. Lookups return
// (nil, nil) when no record matches. SetUsed must only flip used when it is
// still false and report whether it did, so that two concurrent uses cannot
// both succeed.
type TicketStore interface {
	Create(ctx context.Context, ticket *models.Ticket) error
	GetByID(ctx context.Context, id string) (*models.Ticket, error)
	GetByAssetID(ctx context.Context, assetID uint64, excludeDeleted bool) (*models.Ticket, error)
	List(ctx context.Context, filter TicketFilter, opts types.PageOptions) ([]models.Ticket, int64, error)
	SetUsed(ctx context.Context, id string) (bool, error)
	SetDeleted(ctx context.Context, id string) error
	All(ctx context.Context) ([]models.Ticket, error)
	Count(ctx context.Context) (int64, error)
}

type TicketService struct {
	tickets TicketStore
	routes  RouteStore
	ledger  lib.AssetLedger
}

func NewTicketService(tickets TicketStore, routes RouteStore, ledger lib.AssetLedger) *TicketService {
	return &TicketService{tickets: tickets, routes: routes, ledger: ledger}
}

// Create issues a ticket for an asset that already exists on the ledger and
// is held by the buyer.
func (s *TicketService) Create(ctx context.Context, body *types.CreateTicketRequestBody) (*types.TicketView, error) {
	existing, err := s.tickets.GetByAssetID(ctx, body.AssetID, false)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, common.ErrConflict("Ticket already exists")
	}

	route, err := s.routes.GetByID(ctx, body.RouteID)
	if err != nil {
		return nil, err
	}
	if route == nil {
		return nil, common.ErrNotFound("Route not found")
	}

	assetExists, err := s.ledger.AssetExists(ctx, body.AssetID)
	if err != nil {
		return nil, err
	}
	if !assetExists {
		return nil, common.ErrBadRequest("The asset id for this ticket does not belong to any existing ASA")
	}

	if !s.ledger.IsValidAddress(body.BuyerAddress) {
		return nil, common.ErrBadRequest("Invalid buyer address")
	}

	holdsAsset, err := s.ledger.AccountHoldsAsset(ctx, body.BuyerAddress, body.AssetID)
	if err != nil {
		return nil, err
	}
	if !holdsAsset {
		return nil, common.ErrForbidden("The buyer address does not have the required ASA in their wallet")
	}

	ticket := models.Ticket{
		AssetID:          body.AssetID,
		BuyerAddress:     body.BuyerAddress,
		RouteID:          body.RouteID,
		DepartureDate:    body.DepartureDate,
		NumberOfAdults:   body.NumberOfAdults,
		NumberOfChildren: body.NumberOfChildren,
		NumberOfInfants:  body.NumberOfInfants,
		Used:             false,
		Deleted:          false,
		IpfsURL:          body.IpfsURL,
	}
	if err := s.tickets.Create(ctx, &ticket); err != nil {
		return nil, err
	}
	return utils.ToTicketView(&ticket, route), nil
}

func (s *TicketService) GetByID(ctx context.Context, id string) (*types.TicketView, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, common.ErrNotFound("Ticket not found")
	}
	return s.withRoute(ctx, ticket)
}

// GetByAssetID resolves a live (not burned) ticket by its bound asset.
func (s *TicketService) GetByAssetID(ctx context.Context, assetID uint64) (*types.TicketView, error) {
	ticket, err := s.tickets.GetByAssetID(ctx, assetID, true)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, common.ErrNotFound("Ticket not found")
	}
	return s.withRoute(ctx, ticket)
}

// Use marks a ticket used, once, on behalf of the current asset holder.
func (s *TicketService) Use(ctx context.Context, body *types.UseTicketRequestBody) (*types.TicketView, error) {
	ticket, err := s.tickets.GetByID(ctx, body.TicketID)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, common.ErrNotFound("Ticket not found")
	}
	if ticket.Used {
		return nil, common.ErrForbidden("Ticket has already been used")
	}

	holdsAsset, err := s.ledger.AccountHoldsAsset(ctx, body.OwnerAddress, ticket.AssetID)
	if err != nil {
		return nil, err
	}
	if !holdsAsset {
		return nil, common.ErrForbidden("Only the holder of this asset can use this ticket")
	}

	flipped, err := s.tickets.SetUsed(ctx, body.TicketID)
	if err != nil {
		return nil, err
	}
	if !flipped {
		// Another caller won the race between the read above and the update.
		return nil, common.ErrForbidden("Ticket has already been used")
	}
	ticket.Used = true

	return s.withRoute(ctx, ticket)
}

// Burn soft-deletes a ticket. It is only legal once the bound asset has been
// destroyed on-ledger, and is idempotent for an already burned ticket.
func (s *TicketService) Burn(ctx context.Context, body *types.BurnTicketRequestBody) error {
	ticket, err := s.tickets.GetByID(ctx, body.TicketID)
	if err != nil {
		return err
	}
	if ticket == nil {
		return common.ErrNotFound("Ticket not found")
	}

	assetExists, err := s.ledger.AssetExists(ctx, ticket.AssetID)
	if err != nil {
		return err
	}
	if assetExists {
		return common.ErrForbidden("You cannot burn this asset if the asset still exists on the blockchain")
	}

	return s.tickets.SetDeleted(ctx, body.TicketID)
}

// ListByBuyer pages over a buyer's live tickets. Tickets whose route no
// longer resolves are dropped from the page while itemCount keeps the
// pre-drop total.
func (s *TicketService) ListByBuyer(ctx context.Context, buyerAddress string, opts types.PageOptions) (*types.PaginatedResponse[types.TicketView], error) {
	opts = utils.PageOptionsFallback(opts, nil)
	if err := checkOrder(opts.Order); err != nil {
		return nil, err
	}

	filter := TicketFilter{BuyerAddress: buyerAddress, ExcludeDeleted: true}
	if opts.Used != "" {
		used := opts.Used == "true"
		filter.Used = &used
	}
	return s.list(ctx, filter, opts)
}

// ListAll pages over every ticket, burned and used included.
func (s *TicketService) ListAll(ctx context.Context, opts types.PageOptions) (*types.PaginatedResponse[types.TicketView], error) {
	opts = utils.PageOptionsFallback(opts, nil)
	if err := checkOrder(opts.Order); err != nil {
		return nil, err
	}
	return s.list(ctx, TicketFilter{}, opts)
}

func (s *TicketService) list(ctx context.Context, filter TicketFilter, opts types.PageOptions) (*types.PaginatedResponse[types.TicketView], error) {
	tickets, itemCount, err := s.tickets.List(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	views := make([]types.TicketView, 0, len(tickets))
	for i := range tickets {
		route, err := s.routes.GetByID(ctx, tickets[i].RouteID)
		if err != nil {
			return nil, err
		}
		if route == nil {
			log.Printf("Skipping ticket [%s]: route [%s] not found\n", tickets[i].ID, tickets[i].RouteID)
			continue
		}
		views = append(views, *utils.ToTicketView(&tickets[i], route))
	}
	return &types.PaginatedResponse[types.TicketView]{
		Data:       views,
		Pagination: utils.NewPageMeta(opts, itemCount),
	}, nil
}

func (s *TicketService) withRoute(ctx context.Context, ticket *models.Ticket) (*types.TicketView, error) {
	route, err := s.routes.GetByID(ctx, ticket.RouteID)
	if err != nil {
		return nil, err
	}
	if route == nil {
		return nil, common.ErrNotFound("Route not found")
	}
	return utils.ToTicketView(ticket, route), nil
}
