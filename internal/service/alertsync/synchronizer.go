package alertsync

import (
	"time"

	"github.com/google/uuid"

	"github.com/chriscconte/cycling-coach/internal/domain"
)

type Synchronizer struct {
	newID func() string
	now   func() time.Time
}

type Option func(*Synchronizer)

func WithIDGenerator(fn func() string) Option {
	return func(s *Synchronizer) { s.newID = fn }
}

func WithClock(fn func() time.Time) Option {
	return func(s *Synchronizer) { s.now = fn }
}

func NewSynchronizer(opts ...Option) *Synchronizer {
	s := &Synchronizer{
		newID: uuid.NewString,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sync returns the alerts to insert for conflicts whose (session, event) pair has no
// alert yet. Existing alerts are never modified or removed, even when their conflict is
// no longer detected.
func (s *Synchronizer) Sync(ownerID string, detected []domain.Conflict, existing []domain.ConflictAlert) []domain.ConflictAlert {
	seen := make(map[domain.AlertKey]struct{}, len(existing)+len(detected))
	for i := range existing {
		seen[existing[i].Key()] = struct{}{}
	}

	now := s.now()
	var inserts []domain.ConflictAlert
	for _, c := range detected {
		key := domain.AlertKey{SessionID: c.SessionID, EventID: c.EventID}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		inserts = append(inserts, domain.ConflictAlert{
			ID:               s.newID(),
			OwnerID:          ownerID,
			SessionID:        c.SessionID,
			EventID:          c.EventID,
			EventTitle:       c.EventTitle,
			ConflictAt:       c.ConflictAt,
			Type:             c.Type,
			Status:           domain.AlertStatusPending,
			NotificationSent: false,
			CreatedAt:        now,
		})
	}

	return inserts
}
