package coachcontext

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/chriscconte/cycling-coach/internal/domain"
)

const (
	MaxGoals          = 3
	MaxRecentSessions = 5
	// RecentWindow is how far back callers should look when selecting recent sessions.
	RecentWindow = 7 * 24 * time.Hour
)

type AthleteProfile struct {
	Name               string   `json:"name"`
	FTPWatts           *int     `json:"ftp_watts,omitempty"`
	ThresholdHeartRate *int     `json:"threshold_heart_rate,omitempty"`
	PreferredDays      []string `json:"preferred_days,omitempty"`
}

type GoalSummary struct {
	Title      string            `json:"title"`
	TargetDate *time.Time        `json:"target_date,omitempty"`
	Status     domain.GoalStatus `json:"status"`
}

type SessionSummary struct {
	Title           string             `json:"title"`
	ScheduledAt     time.Time          `json:"scheduled_at"`
	SessionType     domain.SessionType `json:"session_type"`
	Completed       bool               `json:"completed"`
	PerceivedEffort *int               `json:"perceived_effort,omitempty"`
}

// Context is the structured input handed to the external text-completion collaborator.
type Context struct {
	Athlete        *AthleteProfile  `json:"athlete,omitempty"`
	Goals          []GoalSummary    `json:"goals"`
	RecentSessions []SessionSummary `json:"recent_sessions"`
}

// Build keeps the newest open goals and the most recent sessions, newest first. Goal
// status is re-evaluated against now before open goals are selected.
func Build(user *domain.User, goals []domain.Goal, recent []domain.TrainingSession, now time.Time) Context {
	out := Context{
		Goals:          []GoalSummary{},
		RecentSessions: []SessionSummary{},
	}

	if user != nil {
		profile := &AthleteProfile{
			Name:               user.Name,
			FTPWatts:           user.FTPWatts,
			ThresholdHeartRate: user.ThresholdHeartRate,
		}
		for _, d := range user.PreferredDays {
			profile.PreferredDays = append(profile.PreferredDays, d.String())
		}
		out.Athlete = profile
	}

	open := make([]domain.Goal, 0, len(goals))
	for _, g := range goals {
		g.Status = g.EvaluateStatus(now)
		if g.IsOpen() {
			open = append(open, g)
		}
	}
	slices.SortStableFunc(open, func(a, b domain.Goal) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	for _, g := range open[:min(len(open), MaxGoals)] {
		out.Goals = append(out.Goals, GoalSummary{
			Title:      g.Title,
			TargetDate: g.TargetDate,
			Status:     g.Status,
		})
	}

	sessions := slices.Clone(recent)
	slices.SortStableFunc(sessions, func(a, b domain.TrainingSession) int {
		return cmp.Or(b.ScheduledAt.Compare(a.ScheduledAt), strings.Compare(a.ID, b.ID))
	})
	for _, s := range sessions[:min(len(sessions), MaxRecentSessions)] {
		out.RecentSessions = append(out.RecentSessions, SessionSummary{
			Title:           s.Title,
			ScheduledAt:     s.ScheduledAt,
			SessionType:     s.SessionType,
			Completed:       s.Completed,
			PerceivedEffort: s.Actual.PerceivedEffort,
		})
	}

	return out
}

const promptHeader = `You are an expert cycling coach with years of experience training cyclists of all levels. You provide personalized, evidence-based coaching advice.

Your coaching style is:
- Encouraging and motivating
- Data-driven but empathetic
- Focused on long-term development
- Attentive to recovery and injury prevention
- Adaptive to the athlete's life circumstances
`

const promptFooter = `
Respond naturally in conversation. Ask follow-up questions to understand the athlete better.
When discussing workouts, consider their current fitness, goals, and life constraints.
`

// Render formats c as the system prompt for the coaching conversation.
func Render(c Context) string {
	var b strings.Builder
	b.WriteString(promptHeader)

	if a := c.Athlete; a != nil {
		b.WriteString("\nAthlete Profile:\n")
		fmt.Fprintf(&b, "- Name: %s\n", a.Name)
		if a.FTPWatts != nil {
			fmt.Fprintf(&b, "- FTP: %dW\n", *a.FTPWatts)
		}
		if a.ThresholdHeartRate != nil {
			fmt.Fprintf(&b, "- Threshold HR: %d bpm\n", *a.ThresholdHeartRate)
		}
		if len(a.PreferredDays) > 0 {
			fmt.Fprintf(&b, "- Preferred training days: %s\n", strings.Join(a.PreferredDays, ", "))
		}
	}

	if len(c.Goals) > 0 {
		b.WriteString("\nCurrent Goals:\n")
		for _, g := range c.Goals {
			b.WriteString("- " + g.Title)
			if g.TargetDate != nil {
				fmt.Fprintf(&b, " (target: %s)", g.TargetDate.Format("Jan 2, 2006"))
			}
			b.WriteString("\n")
		}
	}

	if len(c.RecentSessions) > 0 {
		b.WriteString("\nRecent Training (last 7 days):\n")
		for _, s := range c.RecentSessions {
			mark := "✗"
			if s.Completed {
				mark = "✓"
			}
			fmt.Fprintf(&b, "- %s %s", mark, s.Title)
			if s.PerceivedEffort != nil {
				fmt.Fprintf(&b, " (RPE: %d/10)", *s.PerceivedEffort)
			}
			b.WriteString("\n")
		}
	}

	b.WriteString(promptFooter)
	return b.String()
}
