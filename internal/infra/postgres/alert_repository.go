package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chriscconte/cycling-coach/internal/domain"
)

const alertColumns = `id, owner_id, session_id, calendar_event_id, calendar_event_title, conflict_at,
        conflict_type, status, resolution, resolved_at, notification_sent, notified_at, created_at`

type AlertRepository struct {
	pool *pgxpool.Pool
}

func NewAlertRepository(pool *pgxpool.Pool) *AlertRepository {
	return &AlertRepository{pool: pool}
}

var _ domain.AlertRepository = (*AlertRepository)(nil)

func (r *AlertRepository) ListAlerts(ctx context.Context, ownerID string) ([]domain.ConflictAlert, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+alertColumns+` FROM conflict_alerts WHERE owner_id=$1 ORDER BY conflict_at, id`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	alerts := make([]domain.ConflictAlert, 0)
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, a)
	}

	return alerts, rows.Err()
}

func (r *AlertRepository) GetAlert(ctx context.Context, ownerID, alertID string) (*domain.ConflictAlert, error) {
	a, err := scanAlert(r.pool.QueryRow(ctx,
		`SELECT `+alertColumns+` FROM conflict_alerts WHERE owner_id=$1 AND id=$2`, ownerID, alertID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAlertNotFound
		}
		return nil, err
	}
	return &a, nil
}

// InsertAlerts relies on the (session_id, calendar_event_id) constraint so concurrent
// writers never duplicate an alert.
func (r *AlertRepository) InsertAlerts(ctx context.Context, ownerID string, alerts []domain.ConflictAlert) (inserted int, err error) {
	if len(alerts) == 0 {
		return 0, nil
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	const stmt = `INSERT INTO conflict_alerts (` + alertColumns + `)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
        ON CONFLICT (session_id, calendar_event_id) DO NOTHING`

	for i := range alerts {
		a := &alerts[i]
		tag, execErr := tx.Exec(ctx, stmt,
			a.ID,
			ownerID,
			a.SessionID,
			a.EventID,
			a.EventTitle,
			a.ConflictAt,
			string(a.Type),
			string(a.Status),
			a.Resolution,
			a.ResolvedAt,
			a.NotificationSent,
			a.NotifiedAt,
			a.CreatedAt,
		)
		if execErr != nil {
			err = execErr
			return 0, err
		}
		inserted += int(tag.RowsAffected())
	}

	if err = tx.Commit(ctx); err != nil {
		return 0, err
	}
	return inserted, nil
}

func (r *AlertRepository) MarkNotified(ctx context.Context, ownerID, alertID string, at time.Time) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE conflict_alerts SET notification_sent=TRUE, notified_at=$3
        WHERE owner_id=$1 AND id=$2 AND NOT notification_sent`, ownerID, alertID, at)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() == 1 {
		return true, nil
	}

	if _, err := r.GetAlert(ctx, ownerID, alertID); err != nil {
		return false, err
	}
	return false, nil
}

// UpdateStatus only moves pending alerts, matching ConflictAlert.Transition.
func (r *AlertRepository) UpdateStatus(ctx context.Context, ownerID, alertID string, status domain.AlertStatus, resolution string, at time.Time) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE conflict_alerts SET status=$3, resolution=$4, resolved_at=$5
        WHERE owner_id=$1 AND id=$2 AND status='pending'`,
		ownerID, alertID, string(status), resolution, at)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	if _, err := r.GetAlert(ctx, ownerID, alertID); err != nil {
		return err
	}
	return domain.ErrInvalidAlertTransition
}

func scanAlert(row pgx.Row) (domain.ConflictAlert, error) {
	var (
		a            domain.ConflictAlert
		conflictType string
		status       string
	)

	err := row.Scan(
		&a.ID,
		&a.OwnerID,
		&a.SessionID,
		&a.EventID,
		&a.EventTitle,
		&a.ConflictAt,
		&conflictType,
		&status,
		&a.Resolution,
		&a.ResolvedAt,
		&a.NotificationSent,
		&a.NotifiedAt,
		&a.CreatedAt,
	)
	if err != nil {
		return domain.ConflictAlert{}, err
	}

	a.Type = domain.ConflictType(conflictType)
	a.Status = domain.AlertStatus(status)
	return a, nil
}
