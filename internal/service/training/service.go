package training

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/chriscconte/cycling-coach/internal/domain"
	"github.com/chriscconte/cycling-coach/internal/service/coachcontext"
	"github.com/chriscconte/cycling-coach/internal/service/conflict"
)

const (
	minPerceivedEffort = 1
	maxPerceivedEffort = 10
)

type Option func(*Service)

func WithClock(fn func() time.Time) Option {
	return func(s *Service) { s.now = fn }
}

func WithDefaultLocation(loc *time.Location) Option {
	return func(s *Service) { s.defaultLoc = loc }
}

// Service carries the user-initiated operations on sessions and alerts.
type Service struct {
	sessions   domain.TrainingRepository
	alerts     domain.AlertRepository
	users      domain.UserRepository
	goals      domain.GoalRepository
	calendar   domain.CalendarProvider
	now        func() time.Time
	defaultLoc *time.Location
}

func NewService(
	sessions domain.TrainingRepository,
	alerts domain.AlertRepository,
	users domain.UserRepository,
	goals domain.GoalRepository,
	calendar domain.CalendarProvider,
	opts ...Option,
) *Service {
	s := &Service{
		sessions:   sessions,
		alerts:     alerts,
		users:      users,
		goals:      goals,
		calendar:   calendar,
		now:        time.Now,
		defaultLoc: time.UTC,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) ListSessions(ctx context.Context, ownerID string, from, to time.Time) ([]domain.TrainingSession, error) {
	return s.sessions.ListSessions(ctx, ownerID, from, to)
}

func (s *Service) MarkCompleted(ctx context.Context, ownerID, sessionID string) (*domain.TrainingSession, error) {
	return s.mutate(ctx, ownerID, sessionID, func(session *domain.TrainingSession, now time.Time) error {
		if session.Completed {
			return nil
		}
		session.Completed = true
		session.CompletedAt = &now
		return nil
	})
}

func (s *Service) AddNote(ctx context.Context, ownerID, sessionID, note string) (*domain.TrainingSession, error) {
	return s.mutate(ctx, ownerID, sessionID, func(session *domain.TrainingSession, _ time.Time) error {
		session.UserNotes = note
		return nil
	})
}

func (s *Service) UpdatePerceivedEffort(ctx context.Context, ownerID, sessionID string, effort int) (*domain.TrainingSession, error) {
	if effort < minPerceivedEffort || effort > maxPerceivedEffort {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidPerceivedEffort, effort)
	}
	return s.mutate(ctx, ownerID, sessionID, func(session *domain.TrainingSession, _ time.Time) error {
		session.Actual.PerceivedEffort = &effort
		return nil
	})
}

// DeleteSession is the only path that removes a session.
func (s *Service) DeleteSession(ctx context.Context, ownerID, sessionID string) error {
	if err := s.sessions.DeleteSession(ctx, ownerID, sessionID); err != nil {
		return err
	}
	slog.InfoContext(ctx, "training session deleted",
		slog.String("owner_id", ownerID),
		slog.String("session_id", sessionID),
	)
	return nil
}

func (s *Service) mutate(ctx context.Context, ownerID, sessionID string, fn func(*domain.TrainingSession, time.Time) error) (*domain.TrainingSession, error) {
	session, err := s.sessions.GetSession(ctx, ownerID, sessionID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if err := fn(session, now); err != nil {
		return nil, err
	}
	session.UpdatedAt = now

	if err := s.sessions.UpdateSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *Service) ListAlerts(ctx context.Context, ownerID string) ([]domain.ConflictAlert, error) {
	return s.alerts.ListAlerts(ctx, ownerID)
}

func (s *Service) ResolveAlert(ctx context.Context, ownerID, alertID, resolution string) (*domain.ConflictAlert, error) {
	return s.transition(ctx, ownerID, alertID, domain.AlertStatusResolved, resolution)
}

func (s *Service) IgnoreAlert(ctx context.Context, ownerID, alertID string) (*domain.ConflictAlert, error) {
	return s.transition(ctx, ownerID, alertID, domain.AlertStatusIgnored, "")
}

func (s *Service) transition(ctx context.Context, ownerID, alertID string, to domain.AlertStatus, resolution string) (*domain.ConflictAlert, error) {
	alert, err := s.alerts.GetAlert(ctx, ownerID, alertID)
	if err != nil {
		return nil, err
	}
	if err := alert.Transition(to); err != nil {
		return nil, fmt.Errorf("alert %s is %s: %w", alertID, alert.Status, err)
	}

	now := s.now()
	if err := s.alerts.UpdateStatus(ctx, ownerID, alertID, to, resolution, now); err != nil {
		return nil, err
	}

	alert.Status = to
	alert.Resolution = resolution
	alert.ResolvedAt = &now

	slog.InfoContext(ctx, "conflict alert status changed",
		slog.String("alert_id", alertID),
		slog.String("status", to.String()),
	)
	return alert, nil
}

// SuggestAlternative looks for a free canonical slot on the session's own calendar day.
func (s *Service) SuggestAlternative(ctx context.Context, ownerID, sessionID string) (time.Time, bool, error) {
	session, err := s.sessions.GetSession(ctx, ownerID, sessionID)
	if err != nil {
		return time.Time{}, false, err
	}

	loc := s.location(ctx, ownerID)
	local := session.ScheduledAt.In(loc)
	dayStart := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)

	events, err := s.calendar.FetchEvents(ctx, ownerID, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return time.Time{}, false, err
	}

	return conflict.SuggestAlternativeTime(session, events, loc)
}

// CoachContext assembles the prompt context for the owner and its rendered prompt.
func (s *Service) CoachContext(ctx context.Context, ownerID string) (coachcontext.Context, string, error) {
	user, err := s.users.GetUser(ctx, ownerID)
	if err != nil {
		return coachcontext.Context{}, "", err
	}

	goals, err := s.goals.ListGoals(ctx, ownerID)
	if err != nil {
		return coachcontext.Context{}, "", err
	}

	now := s.now()
	recent, err := s.sessions.ListSessions(ctx, ownerID, now.Add(-coachcontext.RecentWindow), now)
	if err != nil {
		return coachcontext.Context{}, "", err
	}

	c := coachcontext.Build(user, goals, recent, now)
	return c, coachcontext.Render(c), nil
}

func (s *Service) Stats(ctx context.Context, ownerID string, window time.Duration) (domain.TrainingStats, error) {
	if window <= 0 {
		window = DefaultStatsWindow
	}
	now := s.now()
	sessions, err := s.sessions.ListSessions(ctx, ownerID, now.Add(-window), now.Add(window))
	if err != nil {
		return domain.TrainingStats{}, err
	}
	return Stats(sessions, now), nil
}

func (s *Service) location(ctx context.Context, ownerID string) *time.Location {
	if s.users == nil {
		return s.defaultLoc
	}
	user, err := s.users.GetUser(ctx, ownerID)
	if err != nil {
		slog.WarnContext(ctx, "falling back to default timezone",
			slog.String("owner_id", ownerID),
			slog.String("error", err.Error()),
		)
		return s.defaultLoc
	}
	return user.Location(s.defaultLoc)
}
