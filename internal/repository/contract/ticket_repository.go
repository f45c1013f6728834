package contract

import (
	"context"

	"helpdesk-ai-be/internal/entity"

	"github.com/google/uuid"
)

type TicketRepository interface {
	Create(ctx context.Context, ticket *entity.Ticket) error
	FindById(ctx context.Context, id uuid.UUID) (*entity.Ticket, error)
	FindRecent(ctx context.Context, limit int) ([]*entity.Ticket, error)
	CountByCategory(ctx context.Context) (map[string]int64, error)
}
