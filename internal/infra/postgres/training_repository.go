package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chriscconte/cycling-coach/internal/domain"
	"github.com/chriscconte/cycling-coach/internal/observability/tracing"
	"github.com/chriscconte/cycling-coach/internal/observability/watermark"
)

const sessionColumns = `id, owner_id, scheduled_at, session_type, title, description,
        planned_duration_minutes, planned_distance_km, planned_intensity, planned_load,
        completed, completed_at,
        actual_duration_minutes, actual_distance_km, avg_heart_rate, max_heart_rate,
        avg_power_watts, normalized_power_watts, actual_load, perceived_effort,
        sources, user_notes, coaching_feedback, created_at, updated_at`

// TrainingRepository stores sessions and their per-source external ids.
type TrainingRepository struct {
	pool *pgxpool.Pool
}

func NewTrainingRepository(pool *pgxpool.Pool) *TrainingRepository {
	return &TrainingRepository{pool: pool}
}

var _ domain.TrainingRepository = (*TrainingRepository)(nil)

func (r *TrainingRepository) ListSessions(ctx context.Context, ownerID string, from, to time.Time) ([]domain.TrainingSession, error) {
	ctx, span := tracing.StartPostgresOperationSpan(ctx, "select", "training_sessions")
	defer span.End()

	query := `SELECT ` + sessionColumns + `
        FROM training_sessions
        WHERE owner_id=$1 AND scheduled_at >= $2 AND scheduled_at < $3
        ORDER BY scheduled_at, id`

	rows, err := r.pool.Query(ctx, query, ownerID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := make([]domain.TrainingSession, 0)
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.loadExternalIDs(ctx, sessions); err != nil {
		return nil, err
	}

	return sessions, nil
}

func (r *TrainingRepository) GetSession(ctx context.Context, ownerID, sessionID string) (*domain.TrainingSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM training_sessions WHERE owner_id=$1 AND id=$2`

	s, err := scanSession(r.pool.QueryRow(ctx, query, ownerID, sessionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}

	sessions := []domain.TrainingSession{s}
	if err := r.loadExternalIDs(ctx, sessions); err != nil {
		return nil, err
	}

	return &sessions[0], nil
}

// ApplyReconciliation writes inserts and updates in one transaction. A duplicate
// (owner, source, external id) rolls the batch back with ErrPersistenceConflict.
func (r *TrainingRepository) ApplyReconciliation(ctx context.Context, ownerID string, inserts, updates []domain.TrainingSession) (err error) {
	if len(inserts) == 0 && len(updates) == 0 {
		return nil
	}

	ctx, span := tracing.StartPostgresOperationSpan(ctx, "reconcile", "training_sessions")
	defer func() { tracing.End(span, err) }()

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	for i := range inserts {
		s := &inserts[i]
		if s.OwnerID != ownerID {
			return fmt.Errorf("session %s belongs to %s, not %s", s.ID, s.OwnerID, ownerID)
		}
		if err = insertSession(ctx, tx, s); err != nil {
			return classifyWriteError(err, s.ID)
		}
		if err = upsertSources(ctx, tx, s); err != nil {
			return classifyWriteError(err, s.ID)
		}
	}

	for i := range updates {
		s := &updates[i]
		if s.OwnerID != ownerID {
			return fmt.Errorf("session %s belongs to %s, not %s", s.ID, s.OwnerID, ownerID)
		}
		if err = updateSession(ctx, tx, s); err != nil {
			return classifyWriteError(err, s.ID)
		}
		if err = upsertSources(ctx, tx, s); err != nil {
			return classifyWriteError(err, s.ID)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return err
	}

	watermark.RecordSessionPersisted(time.Now())
	return nil
}

func (r *TrainingRepository) UpdateSession(ctx context.Context, session *domain.TrainingSession) (err error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if err = updateSession(ctx, tx, session); err != nil {
		return classifyWriteError(err, session.ID)
	}
	if err = upsertSources(ctx, tx, session); err != nil {
		return classifyWriteError(err, session.ID)
	}

	if err = tx.Commit(ctx); err != nil {
		return err
	}

	watermark.RecordSessionPersisted(session.UpdatedAt)
	return nil
}

func (r *TrainingRepository) DeleteSession(ctx context.Context, ownerID, sessionID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM training_sessions WHERE owner_id=$1 AND id=$2`, ownerID, sessionID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

func (r *TrainingRepository) loadExternalIDs(ctx context.Context, sessions []domain.TrainingSession) error {
	if len(sessions) == 0 {
		return nil
	}

	ids := make([]string, len(sessions))
	index := make(map[string]int, len(sessions))
	for i, s := range sessions {
		ids[i] = s.ID
		index[s.ID] = i
	}

	rows, err := r.pool.Query(ctx,
		`SELECT session_id, source, external_id FROM training_session_sources WHERE session_id = ANY($1)`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var sessionID, source, externalID string
		if err := rows.Scan(&sessionID, &source, &externalID); err != nil {
			return err
		}
		if i, ok := index[sessionID]; ok {
			sessions[i].AttachSource(domain.Source(source), externalID)
		}
	}

	return rows.Err()
}

func insertSession(ctx context.Context, tx pgx.Tx, s *domain.TrainingSession) error {
	const stmt = `INSERT INTO training_sessions (` + sessionColumns + `)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24,$25)`

	_, err := tx.Exec(ctx, stmt,
		s.ID,
		s.OwnerID,
		s.ScheduledAt,
		string(s.SessionType),
		s.Title,
		s.Description,
		s.Planned.DurationMinutes,
		s.Planned.DistanceKm,
		s.Planned.Intensity,
		s.Planned.Load,
		s.Completed,
		s.CompletedAt,
		s.Actual.DurationMinutes,
		s.Actual.DistanceKm,
		s.Actual.AvgHeartRate,
		s.Actual.MaxHeartRate,
		s.Actual.AvgPowerWatts,
		s.Actual.NormalizedPowerWatts,
		s.Actual.Load,
		s.Actual.PerceivedEffort,
		sourceStrings(s.Sources),
		s.UserNotes,
		s.CoachingFeedback,
		s.CreatedAt,
		s.UpdatedAt,
	)
	return err
}

func updateSession(ctx context.Context, tx pgx.Tx, s *domain.TrainingSession) error {
	const stmt = `UPDATE training_sessions SET
        scheduled_at=$3, session_type=$4, title=$5, description=$6,
        planned_duration_minutes=$7, planned_distance_km=$8, planned_intensity=$9, planned_load=$10,
        completed=$11, completed_at=$12,
        actual_duration_minutes=$13, actual_distance_km=$14, avg_heart_rate=$15, max_heart_rate=$16,
        avg_power_watts=$17, normalized_power_watts=$18, actual_load=$19, perceived_effort=$20,
        sources=$21, user_notes=$22, coaching_feedback=$23, updated_at=$24
        WHERE id=$1 AND owner_id=$2`

	tag, err := tx.Exec(ctx, stmt,
		s.ID,
		s.OwnerID,
		s.ScheduledAt,
		string(s.SessionType),
		s.Title,
		s.Description,
		s.Planned.DurationMinutes,
		s.Planned.DistanceKm,
		s.Planned.Intensity,
		s.Planned.Load,
		s.Completed,
		s.CompletedAt,
		s.Actual.DurationMinutes,
		s.Actual.DistanceKm,
		s.Actual.AvgHeartRate,
		s.Actual.MaxHeartRate,
		s.Actual.AvgPowerWatts,
		s.Actual.NormalizedPowerWatts,
		s.Actual.Load,
		s.Actual.PerceivedEffort,
		sourceStrings(s.Sources),
		s.UserNotes,
		s.CoachingFeedback,
		s.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

func upsertSources(ctx context.Context, tx pgx.Tx, s *domain.TrainingSession) error {
	const stmt = `INSERT INTO training_session_sources (session_id, owner_id, source, external_id)
        VALUES ($1,$2,$3,$4)
        ON CONFLICT (session_id, source) DO UPDATE SET external_id=EXCLUDED.external_id`

	for src, externalID := range s.ExternalIDs {
		if externalID == "" {
			continue
		}
		if _, err := tx.Exec(ctx, stmt, s.ID, s.OwnerID, string(src), externalID); err != nil {
			return err
		}
	}
	return nil
}

func classifyWriteError(err error, sessionID string) error {
	if isUniqueViolation(err) {
		return fmt.Errorf("session %s: %w", sessionID, domain.ErrPersistenceConflict)
	}
	return err
}

func scanSession(row pgx.Row) (domain.TrainingSession, error) {
	var (
		s           domain.TrainingSession
		sessionType string
		sources     []string
	)

	err := row.Scan(
		&s.ID,
		&s.OwnerID,
		&s.ScheduledAt,
		&sessionType,
		&s.Title,
		&s.Description,
		&s.Planned.DurationMinutes,
		&s.Planned.DistanceKm,
		&s.Planned.Intensity,
		&s.Planned.Load,
		&s.Completed,
		&s.CompletedAt,
		&s.Actual.DurationMinutes,
		&s.Actual.DistanceKm,
		&s.Actual.AvgHeartRate,
		&s.Actual.MaxHeartRate,
		&s.Actual.AvgPowerWatts,
		&s.Actual.NormalizedPowerWatts,
		&s.Actual.Load,
		&s.Actual.PerceivedEffort,
		&sources,
		&s.UserNotes,
		&s.CoachingFeedback,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return domain.TrainingSession{}, err
	}

	s.SessionType = domain.SessionType(sessionType)
	for _, src := range sources {
		s.AttachSource(domain.Source(src), "")
	}

	return s, nil
}

func sourceStrings(sources []domain.Source) []string {
	out := make([]string, len(sources))
	for i, s := range sources {
		out[i] = string(s)
	}
	return out
}
