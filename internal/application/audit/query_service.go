package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stocktrail/backend/internal/domain/audit"
	"github.com/stocktrail/backend/internal/domain/shared"
)

// LogResponse represents one audit record in API responses
type LogResponse struct {
	ID        uuid.UUID  `json:"id"`
	Entity    string     `json:"entity"`
	EntityID  uuid.UUID  `json:"entity_id"`
	Action    string     `json:"action"`
	Message   string     `json:"message,omitempty"`
	UserID    *uuid.UUID `json:"user_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// ListFilter represents filter options for the audit log list
type ListFilter struct {
	Entity   string     `form:"entity"`
	EntityID *uuid.UUID `form:"entity_id"`
	Page     int        `form:"page" binding:"omitempty,min=1"`
	PageSize int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// QueryService serves read access to the audit trail
type QueryService struct {
	repo audit.Repository
}

// NewQueryService creates a new audit QueryService
func NewQueryService(repo audit.Repository) *QueryService {
	return &QueryService{repo: repo}
}

// List retrieves audit records with filtering and pagination
func (s *QueryService) List(ctx context.Context, filter ListFilter) (shared.Paginated[LogResponse], error) {
	f := shared.DefaultFilter()
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}

	var (
		logs []audit.AuditLog
		err  error
	)
	if filter.Entity != "" && filter.EntityID != nil {
		logs, err = s.repo.FindByEntity(ctx, filter.Entity, *filter.EntityID, f)
	} else {
		if filter.Entity != "" {
			f.Filters["entity"] = filter.Entity
		}
		logs, err = s.repo.FindAll(ctx, f)
	}
	if err != nil {
		return shared.Paginated[LogResponse]{}, err
	}

	total, err := s.repo.Count(ctx, f)
	if err != nil {
		return shared.Paginated[LogResponse]{}, err
	}

	responses := make([]LogResponse, 0, len(logs))
	for i := range logs {
		l := &logs[i]
		responses = append(responses, LogResponse{
			ID:        l.ID,
			Entity:    l.Entity,
			EntityID:  l.EntityID,
			Action:    l.Action,
			Message:   l.Message,
			UserID:    l.UserID,
			CreatedAt: l.CreatedAt,
		})
	}
	return shared.NewPaginated(responses, total, f.Page, f.PageSize), nil
}
