package service

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/flo-mobility/admin-console/internal/domain"
	"github.com/flo-mobility/admin-console/internal/events"
	"github.com/flo-mobility/admin-console/internal/listing"
	"github.com/flo-mobility/admin-console/internal/repository"
	apperrors "github.com/flo-mobility/admin-console/pkg/util/errorutil"
)

// AuditService records operator actions and lists them back.
type AuditService struct {
	repo repository.AuditRepository
}

// AuditQuery filters the audit listing.
type AuditQuery struct {
	Action     string
	OperatorID string
	TargetID   string
	Page       int
	Size       int
}

// AuditPage is a page of audit entries.
type AuditPage struct {
	Data  []domain.AuditEntry `json:"data"`
	Page  int                 `json:"page"`
	Size  int                 `json:"size"`
	Total int                 `json:"total"`
}

// NewAuditService builds the service. A nil repository disables the log.
func NewAuditService(repo repository.AuditRepository) *AuditService {
	return &AuditService{repo: repo}
}

// Enabled reports whether audit storage is configured.
func (s *AuditService) Enabled() bool { return s != nil && s.repo != nil }

// Name identifies the sink in logs.
func (s *AuditService) Name() string { return "audit_log" }

// Handle persists one event.
func (s *AuditService) Handle(ctx context.Context, event events.Event) error {
	if !s.Enabled() {
		return nil
	}
	entry := &domain.AuditEntry{
		EventID:    event.ID,
		Action:     domain.AuditAction(event.Type),
		OperatorID: event.Actor.OperatorID,
		TargetType: event.TargetType,
		TargetIDs:  event.TargetIDs,
		Payload:    payloadMap(event.Payload),
		CreatedAt:  event.Timestamp,
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	return s.repo.Create(ctx, entry)
}

// List returns audit entries newest first.
func (s *AuditService) List(ctx context.Context, q AuditQuery) (*AuditPage, error) {
	if !s.Enabled() {
		return nil, apperrors.NewDomainError("AUDIT_DISABLED", "audit log is not configured", http.StatusServiceUnavailable, nil)
	}
	if q.Page <= 0 {
		q.Page = listing.DefaultPage
	}
	if q.Size <= 0 {
		q.Size = listing.DefaultSize
	}
	if q.Size > 100 {
		q.Size = 100
	}

	filter := repository.AuditFilter{Limit: q.Size, Offset: (q.Page - 1) * q.Size}
	if q.Action != "" {
		action := domain.AuditAction(q.Action)
		filter.Action = &action
	}
	if q.OperatorID != "" {
		filter.OperatorID = &q.OperatorID
	}
	if q.TargetID != "" {
		filter.TargetID = &q.TargetID
	}

	entries, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &AuditPage{Data: entries, Page: q.Page, Size: q.Size, Total: total}, nil
}

func payloadMap(payload any) map[string]any {
	if payload == nil {
		return map[string]any{}
	}
	if m, ok := payload.(map[string]any); ok {
		return m
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return map[string]any{}
	}
	out := map[string]any{}
	_ = json.Unmarshal(raw, &out)
	return out
}
