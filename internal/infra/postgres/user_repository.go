package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chriscconte/cycling-coach/internal/domain"
)

const userColumns = `id, name, email, athlete_id, ftp_watts, threshold_heart_rate, max_heart_rate,
        weight_kg, preferred_days, preferred_time_of_day, timezone, notifications_enabled`

const goalColumns = `id, owner_id, title, goal_type, target_date, target_value, progress,
        status, priority, notes, created_at`

// UserRepository serves users and their goals.
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

var (
	_ domain.UserRepository = (*UserRepository)(nil)
	_ domain.GoalRepository = (*UserRepository)(nil)
)

func (r *UserRepository) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	return users, rows.Err()
}

func (r *UserRepository) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1`, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) UpsertUser(ctx context.Context, u *domain.User) error {
	const stmt = `INSERT INTO users (` + userColumns + `)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
        ON CONFLICT (id) DO UPDATE SET
            name=EXCLUDED.name, email=EXCLUDED.email, athlete_id=EXCLUDED.athlete_id,
            ftp_watts=EXCLUDED.ftp_watts, threshold_heart_rate=EXCLUDED.threshold_heart_rate,
            max_heart_rate=EXCLUDED.max_heart_rate, weight_kg=EXCLUDED.weight_kg,
            preferred_days=EXCLUDED.preferred_days, preferred_time_of_day=EXCLUDED.preferred_time_of_day,
            timezone=EXCLUDED.timezone, notifications_enabled=EXCLUDED.notifications_enabled`

	days := make([]int32, len(u.PreferredDays))
	for i, d := range u.PreferredDays {
		days[i] = int32(d)
	}

	_, err := r.pool.Exec(ctx, stmt,
		u.ID,
		u.Name,
		u.Email,
		u.AthleteID,
		u.FTPWatts,
		u.ThresholdHeartRate,
		u.MaxHeartRate,
		u.WeightKg,
		days,
		u.PreferredTimeOfDay,
		u.Timezone,
		u.NotificationsEnabled,
	)
	return err
}

func (r *UserRepository) ListGoals(ctx context.Context, ownerID string) ([]domain.Goal, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+goalColumns+` FROM goals WHERE owner_id=$1 ORDER BY priority DESC, created_at DESC, id`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	goals := make([]domain.Goal, 0)
	for rows.Next() {
		var (
			g      domain.Goal
			status string
		)
		if err := rows.Scan(
			&g.ID,
			&g.OwnerID,
			&g.Title,
			&g.GoalType,
			&g.TargetDate,
			&g.TargetValue,
			&g.Progress,
			&status,
			&g.Priority,
			&g.Notes,
			&g.CreatedAt,
		); err != nil {
			return nil, err
		}
		g.Status = domain.GoalStatus(status)
		goals = append(goals, g)
	}

	return goals, rows.Err()
}

func (r *UserRepository) UpsertGoal(ctx context.Context, g *domain.Goal) error {
	const stmt = `INSERT INTO goals (` + goalColumns + `)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        ON CONFLICT (id) DO UPDATE SET
            title=EXCLUDED.title, goal_type=EXCLUDED.goal_type, target_date=EXCLUDED.target_date,
            target_value=EXCLUDED.target_value, progress=EXCLUDED.progress, status=EXCLUDED.status,
            priority=EXCLUDED.priority, notes=EXCLUDED.notes`

	createdAt := g.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := r.pool.Exec(ctx, stmt,
		g.ID,
		g.OwnerID,
		g.Title,
		g.GoalType,
		g.TargetDate,
		g.TargetValue,
		g.Progress,
		string(g.Status),
		g.Priority,
		g.Notes,
		createdAt,
	)
	return err
}

func scanUser(row pgx.Row) (domain.User, error) {
	var (
		u    domain.User
		days []int32
	)

	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.AthleteID,
		&u.FTPWatts,
		&u.ThresholdHeartRate,
		&u.MaxHeartRate,
		&u.WeightKg,
		&days,
		&u.PreferredTimeOfDay,
		&u.Timezone,
		&u.NotificationsEnabled,
	)
	if err != nil {
		return domain.User{}, err
	}

	for _, d := range days {
		u.PreferredDays = append(u.PreferredDays, time.Weekday(d))
	}
	return u, nil
}
