package store

import (
	"context"
	"errors"

	"fluxtrail/src/models"
	"fluxtrail/src/types"

	"gorm.io/gorm"
)

type RouteStore struct {
	db *gorm.DB
}

func NewRouteStore(db *gorm.DB) *RouteStore {
	return &RouteStore{db: db}
}

func orderClause(order types.Order) string {
	if order == types.ORDER_ASC {
		return "created_at asc"
	}
	return "created_at desc"
}

func (s *RouteStore) Create(ctx context.Context, route *models.Route) error {
	return s.db.WithContext(ctx).Create(route).Error
}

func (s *RouteStore) GetByID(ctx context.Context, id string) (*models.Route, error) {
	var route models.Route
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&route).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &route, nil
}

func (s *RouteStore) GetByAppID(ctx context.Context, appID uint64) (*models.Route, error) {
	var route models.Route
	err := s.db.WithContext(ctx).Where("app_id = ?", appID).First(&route).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &route, nil
}

func (s *RouteStore) List(ctx context.Context, opts types.PageOptions) ([]models.Route, int64, error) {
	q := s.db.WithContext(ctx).Model(&models.Route{})
	if opts.SearchTerm != "" {
		term := "%" + opts.SearchTerm + "%"
		q = q.Where("from_location ILIKE ? OR to_location ILIKE ?", term, term)
	}

	var itemCount int64
	if err := q.Count(&itemCount).Error; err != nil {
		return nil, 0, err
	}

	var routes []models.Route
	err := q.
		Order(orderClause(opts.Order)).
		Offset(opts.Skip).
		Limit(opts.NumOfItemsPerPage).
		Find(&routes).Error
	if err != nil {
		return nil, 0, err
	}
	return routes, itemCount, nil
}

func (s *RouteStore) All(ctx context.Context) ([]models.Route, error) {
	var routes []models.Route
	if err := s.db.WithContext(ctx).Order("created_at asc").Find(&routes).Error; err != nil {
		return nil, err
	}
	return routes, nil
}

func (s *RouteStore) Update(ctx context.Context, id string, fields *types.UpdateRouteRequestBody) (*models.Route, error) {
	updates := map[string]any{}
	if fields.AppID != nil {
		updates["app_id"] = *fields.AppID
	}
	if fields.Price != nil {
		updates["price"] = *fields.Price
	}
	if fields.TransportMedium != nil {
		updates["transport_medium"] = *fields.TransportMedium
	}
	if fields.From != nil {
		updates["from_location"] = *fields.From
	}
	if fields.FromStateCode != nil {
		updates["from_state_code"] = *fields.FromStateCode
	}
	if fields.FromTerminal != nil {
		updates["from_terminal"] = *fields.FromTerminal
	}
	if fields.To != nil {
		updates["to_location"] = *fields.To
	}
	if fields.ToStateCode != nil {
		updates["to_state_code"] = *fields.ToStateCode
	}
	if fields.ToTerminal != nil {
		updates["to_terminal"] = *fields.ToTerminal
	}

	if len(updates) > 0 {
		res := s.db.WithContext(ctx).
			Model(&models.Route{}).
			Where("id = ?", id).
			Updates(updates)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, nil
		}
	}
	return s.GetByID(ctx, id)
}

func (s *RouteStore) Delete(ctx context.Context, id string) (bool, error) {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Route{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *RouteStore) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Route{}).Count(&count).Error
	return count, err
}
