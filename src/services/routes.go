package services

import (
	"context"

	"fluxtrail/src/common"
	"fluxtrail/src/models"
	"fluxtrail/src/types"
	"fluxtrail/src/utils"
)

// RouteStore is the persistence surface for routes. Lookups return
// (nil, nil) when no record matches.
type RouteStore interface {
	Create(ctx context.Context, route *models.Route) error
	GetByID(ctx context.Context, id string) (*models.Route, error)
	GetByAppID(ctx context.Context, appID uint64) (*models.Route, error)
	List(ctx context.Context, opts types.PageOptions) ([]models.Route, int64, error)
	All(ctx context.Context) ([]models.Route, error)
	Update(ctx context.Context, id string, fields *types.UpdateRouteRequestBody) (*models.Route, error)
	Delete(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int64, error)
}

type RouteService struct {
	routes RouteStore
}

func NewRouteService(routes RouteStore) *RouteService {
	return &RouteService{routes: routes}
}

func checkOrder(order types.Order) error {
	if order != types.ORDER_ASC && order != types.ORDER_DESC {
		return common.ErrBadRequest(`Order must be either "ASC" or "DESC"`)
	}
	return nil
}

func (s *RouteService) Create(ctx context.Context, body *types.CreateRouteRequestBody) (*types.RouteView, error) {
	existing, err := s.routes.GetByAppID(ctx, body.AppID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, common.ErrConflict("Route already exists")
	}

	route := models.Route{
		AppID:           body.AppID,
		Price:           body.Price,
		TransportMedium: body.TransportMedium,
		From:            body.From,
		FromStateCode:   body.FromStateCode,
		FromTerminal:    body.FromTerminal,
		To:              body.To,
		ToStateCode:     body.ToStateCode,
		ToTerminal:      body.ToTerminal,
	}
	if err := s.routes.Create(ctx, &route); err != nil {
		return nil, err
	}
	return utils.ToRouteView(&route), nil
}

func (s *RouteService) GetByID(ctx context.Context, id string) (*types.RouteView, error) {
	route, err := s.routes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if route == nil {
		return nil, common.ErrNotFound("Route not found")
	}
	return utils.ToRouteView(route), nil
}

func (s *RouteService) List(ctx context.Context, opts types.PageOptions) (*types.PaginatedResponse[types.RouteView], error) {
	opts = utils.PageOptionsFallback(opts, nil)
	if err := checkOrder(opts.Order); err != nil {
		return nil, err
	}

	routes, itemCount, err := s.routes.List(ctx, opts)
	if err != nil {
		return nil, err
	}
	views := make([]types.RouteView, 0, len(routes))
	for i := range routes {
		views = append(views, *utils.ToRouteView(&routes[i]))
	}
	return &types.PaginatedResponse[types.RouteView]{
		Data:       views,
		Pagination: utils.NewPageMeta(opts, itemCount),
	}, nil
}

// All returns every route unpaginated, for the public route listing.
func (s *RouteService) All(ctx context.Context) ([]types.RouteView, error) {
	routes, err := s.routes.All(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]types.RouteView, 0, len(routes))
	for i := range routes {
		views = append(views, *utils.ToRouteView(&routes[i]))
	}
	return views, nil
}

// Update replaces only the supplied fields.
func (s *RouteService) Update(ctx context.Context, id string, body *types.UpdateRouteRequestBody) (*types.RouteView, error) {
	route, err := s.routes.Update(ctx, id, body)
	if err != nil {
		return nil, err
	}
	if route == nil {
		return nil, common.ErrNotFound("Route not found")
	}
	return utils.ToRouteView(route), nil
}

// Delete is unconditional: tickets referencing the route are not checked.
func (s *RouteService) Delete(ctx context.Context, id string) error {
	deleted, err := s.routes.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return common.ErrNotFound("Route not found")
	}
	return nil
}
