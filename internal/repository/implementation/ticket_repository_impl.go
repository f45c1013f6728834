package implementation

import (
	"context"
	"errors"

	"helpdesk-ai-be/internal/entity"
	"helpdesk-ai-be/internal/mapper"
	"helpdesk-ai-be/internal/model"
	"helpdesk-ai-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TicketRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.TicketMapper
}

func NewTicketRepository(db *gorm.DB) contract.TicketRepository {
	return &TicketRepositoryImpl{
		db:     db,
		mapper: mapper.NewTicketMapper(),
	}
}

func (r *TicketRepositoryImpl) Create(ctx context.Context, ticket *entity.Ticket) error {
	m := r.mapper.ToModel(ticket)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*ticket = *r.mapper.ToEntity(m)
	return nil
}

func (r *TicketRepositoryImpl) FindById(ctx context.Context, id uuid.UUID) (*entity.Ticket, error) {
	var m model.Ticket
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *TicketRepositoryImpl) FindRecent(ctx context.Context, limit int) ([]*entity.Ticket, error) {
	if limit <= 0 {
		limit = 20
	}

	var models []*model.Ticket
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	tickets := make([]*entity.Ticket, len(models))
	for i, m := range models {
		tickets[i] = r.mapper.ToEntity(m)
	}
	return tickets, nil
}

func (r *TicketRepositoryImpl) CountByCategory(ctx context.Context) (map[string]int64, error) {
	type row struct {
		Category string
		Total    int64
	}
	var rows []row

	err := r.db.WithContext(ctx).
		Model(&model.Ticket{}).
		Select("category, count(*) as total").
		Group("category").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Category] = r.Total
	}
	return counts, nil
}
