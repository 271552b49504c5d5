// internal/service/ticket/ticket.go
package ticket

import (
	"context"

	"msm-console/internal/domain/ticket"
	"msm-console/internal/pkg/paging"
	"msm-console/internal/pkg/querycache"
	"msm-console/internal/service/resource"

	"go.uber.org/zap"
)

const (
	Entity   = "tickets"
	Endpoint = "/Ticket"
)

type TicketService struct {
	*resource.Service[ticket.Ticket, ticket.TicketRequest]
	logger *zap.Logger
}

func NewTicketService(api resource.API, cache *querycache.Cache, logger *zap.Logger) *TicketService {
	return &TicketService{
		Service: resource.NewService[ticket.Ticket, ticket.TicketRequest](Entity, Endpoint, api, cache, logger),
		logger:  logger,
	}
}

// List surfaces listing failures like every other screen. The error is
// logged with the ticket context and returned; no empty page is invented.
func (s *TicketService) List(ctx context.Context, q paging.Query) (paging.Result[ticket.Ticket], error) {
	res, err := s.Service.List(ctx, q)
	if err != nil {
		s.logger.Error("failed to list tickets",
			zap.Int("page", q.Page),
			zap.Int("page_size", q.PageSize),
			zap.Error(err),
		)
		return paging.Result[ticket.Ticket]{}, err
	}
	return res, nil
}
