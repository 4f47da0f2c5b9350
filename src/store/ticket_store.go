package store

import (
	"context"
	"errors"

	"fluxtrail/src/models"
	"fluxtrail/src/services"
	"fluxtrail/src/types"

	"gorm.io/gorm"
)

type TicketStore struct {
	db *gorm.DB
}

func NewTicketStore(db *gorm.DB) *TicketStore {
	return &TicketStore{db: db}
}

func (s *TicketStore) Create(ctx context.Context, ticket *models.Ticket) error {
	return s.db.WithContext(ctx).Create(ticket).Error
}

func (s *TicketStore) GetByID(ctx context.Context, id string) (*models.Ticket, error) {
	var ticket models.Ticket
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&ticket).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (s *TicketStore) GetByAssetID(ctx context.Context, assetID uint64, excludeDeleted bool) (*models.Ticket, error) {
	q := s.db.WithContext(ctx).Where("asset_id = ?", assetID)
	if excludeDeleted {
		q = q.Where("deleted = ?", false)
	}
	var ticket models.Ticket
	err := q.First(&ticket).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (s *TicketStore) List(ctx context.Context, filter services.TicketFilter, opts types.PageOptions) ([]models.Ticket, int64, error) {
	q := s.db.WithContext(ctx).Model(&models.Ticket{})
	if filter.ExcludeDeleted {
		q = q.Where("deleted = ?", false)
	}
	if filter.BuyerAddress != "" {
		q = q.Where("buyer_address = ?", filter.BuyerAddress)
	}
	if filter.Used != nil {
		q = q.Where("used = ?", *filter.Used)
	}
	if opts.SearchTerm != "" {
		q = q.Where("buyer_address ILIKE ?", "%"+opts.SearchTerm+"%")
	}

	var itemCount int64
	if err := q.Count(&itemCount).Error; err != nil {
		return nil, 0, err
	}

	var tickets []models.Ticket
	err := q.
		Order(orderClause(opts.Order)).
		Offset(opts.Skip).
		Limit(opts.NumOfItemsPerPage).
		Find(&tickets).Error
	if err != nil {
		return nil, 0, err
	}
	return tickets, itemCount, nil
}

// SetUsed flips used only when it is still false, so two racing calls cannot
// both claim the ticket.
func (s *TicketStore) SetUsed(ctx context.Context, id string) (bool, error) {
	res := s.db.WithContext(ctx).
		Model(&models.Ticket{}).
		Where("id = ? AND used = ?", id, false).
		Update("used", true)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *TicketStore) SetDeleted(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).
		Model(&models.Ticket{}).
		Where("id = ?", id).
		Update("deleted", true).Error
}

func (s *TicketStore) All(ctx context.Context) ([]models.Ticket, error) {
	var tickets []models.Ticket
	if err := s.db.WithContext(ctx).Find(&tickets).Error; err != nil {
		return nil, err
	}
	return tickets, nil
}

func (s *TicketStore) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Ticket{}).Count(&count).Error
	return count, err
}
