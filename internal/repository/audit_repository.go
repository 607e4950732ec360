package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/flo-mobility/admin-console/internal/domain"
)

// AuditFilter captures audit log search parameters.
type AuditFilter struct {
	Action     *domain.AuditAction
	OperatorID *string
	TargetID   *string
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}

// AuditRepository persists operator actions.
type AuditRepository interface {
	Create(ctx context.Context, entry *domain.AuditEntry) error
	List(ctx context.Context, filter AuditFilter) ([]domain.AuditEntry, int, error)
}

type auditRepository struct {
	pool *pgxpool.Pool
}

// NewAuditRepository instantiates repository.
func NewAuditRepository(pool *pgxpool.Pool) AuditRepository {
	return &auditRepository{pool: pool}
}

// Create inserts an entry. Replaying the same event id is a no-op.
func (r *auditRepository) Create(ctx context.Context, entry *domain.AuditEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	payload, err := json.Marshal(entry.Payload)
	if err != nil {
		return fmt.Errorf("encode audit payload: %w", err)
	}
	if entry.TargetIDs == nil {
		entry.TargetIDs = []string{}
	}
	const query = `
        INSERT INTO audit_log (id, event_id, action, operator_id, target_type, target_ids, payload, created_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        ON CONFLICT (event_id) DO NOTHING`
	_, err = r.pool.Exec(ctx, query,
		entry.ID,
		entry.EventID,
		string(entry.Action),
		entry.OperatorID,
		entry.TargetType,
		entry.TargetIDs,
		payload,
		entry.CreatedAt,
	)
	return err
}

func (r *auditRepository) List(ctx context.Context, filter AuditFilter) ([]domain.AuditEntry, int, error) {
	where, args := buildAuditWhere(filter)

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM audit_log WHERE "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit, offset := normalizePage(filter.Limit, filter.Offset)
	query := fmt.Sprintf(`SELECT id, event_id, action, operator_id, target_type, target_ids, payload, created_at
        FROM audit_log WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`, where, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	entries, err := scanAuditEntries(rows)
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

func buildAuditWhere(filter AuditFilter) (string, []any) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Action != nil {
		args = append(args, string(*filter.Action))
		clauses = append(clauses, fmt.Sprintf("action=$%d", len(args)))
	}
	if filter.OperatorID != nil {
		args = append(args, *filter.OperatorID)
		clauses = append(clauses, fmt.Sprintf("operator_id=$%d", len(args)))
	}
	if filter.TargetID != nil {
		args = append(args, *filter.TargetID)
		clauses = append(clauses, fmt.Sprintf("$%d = ANY(target_ids)", len(args)))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		clauses = append(clauses, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		clauses = append(clauses, fmt.Sprintf("created_at <= $%d", len(args)))
	}
	return strings.Join(clauses, " AND "), args
}

func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func scanAuditEntries(rows pgx.Rows) ([]domain.AuditEntry, error) {
	result := []domain.AuditEntry{}
	for rows.Next() {
		var (
			entry   domain.AuditEntry
			action  string
			payload []byte
		)
		if err := rows.Scan(
			&entry.ID,
			&entry.EventID,
			&action,
			&entry.OperatorID,
			&entry.TargetType,
			&entry.TargetIDs,
			&payload,
			&entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		entry.Action = domain.AuditAction(action)
		if len(payload) > 0 {
			if err := json.Unmarshal(payload, &entry.Payload); err != nil {
				return nil, fmt.Errorf("decode audit payload: %w", err)
			}
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}
