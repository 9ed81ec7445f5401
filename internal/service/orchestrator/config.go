package orchestrator

import (
	"fmt"
	"time"

	"github.com/chriscconte/cycling-coach/internal/domain"
)

type Job string

const (
	JobCheckTraining   Job = "check-training"
	JobDetectConflicts Job = "detect-conflicts"
)

func (j Job) String() string {
	return string(j)
}

func ParseJob(s string) (Job, error) {
	switch Job(s) {
	case JobCheckTraining, JobDetectConflicts:
		return Job(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownJob, s)
}

const (
	DefaultCheckTrainingCadence   = 4 * time.Hour
	DefaultDetectConflictsCadence = 24 * time.Hour
	DefaultConcurrency            = 4
	DefaultRunBudget              = 5 * time.Minute
	DefaultProviderTimeout        = 20 * time.Second
	DefaultHistoryWindow          = 30 * 24 * time.Hour
	DefaultLookahead              = 14 * 24 * time.Hour

	maxReconcileAttempts = 3
	rearmTimeout         = 10 * time.Second
)

type Config struct {
	CheckTrainingCadence   time.Duration
	DetectConflictsCadence time.Duration
	Concurrency            int
	RunBudget              time.Duration
	ProviderTimeout        time.Duration
	// HistoryWindow and Lookahead bound the range fetched from providers around now.
	HistoryWindow   time.Duration
	Lookahead       time.Duration
	DefaultLocation *time.Location
}

func DefaultConfig() Config {
	return Config{
		CheckTrainingCadence:   DefaultCheckTrainingCadence,
		DetectConflictsCadence: DefaultDetectConflictsCadence,
		Concurrency:            DefaultConcurrency,
		RunBudget:              DefaultRunBudget,
		ProviderTimeout:        DefaultProviderTimeout,
		HistoryWindow:          DefaultHistoryWindow,
		Lookahead:              DefaultLookahead,
		DefaultLocation:        time.UTC,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.CheckTrainingCadence <= 0 {
		c.CheckTrainingCadence = def.CheckTrainingCadence
	}
	if c.DetectConflictsCadence <= 0 {
		c.DetectConflictsCadence = def.DetectConflictsCadence
	}
	if c.Concurrency <= 0 {
		c.Concurrency = def.Concurrency
	}
	if c.RunBudget <= 0 {
		c.RunBudget = def.RunBudget
	}
	if c.ProviderTimeout <= 0 {
		c.ProviderTimeout = def.ProviderTimeout
	}
	if c.HistoryWindow <= 0 {
		c.HistoryWindow = def.HistoryWindow
	}
	if c.Lookahead <= 0 {
		c.Lookahead = def.Lookahead
	}
	if c.DefaultLocation == nil {
		c.DefaultLocation = def.DefaultLocation
	}
	return c
}

// Cadence is the interval after which the job re-arms itself.
func (c Config) Cadence(job Job) time.Duration {
	if job == JobDetectConflicts {
		return c.DetectConflictsCadence
	}
	return c.CheckTrainingCadence
}

// Dependencies are the ports an orchestrator run drives. Calendar, Workouts and
// Platform may be nil, in which case that source is skipped.
type Dependencies struct {
	Users     domain.UserRepository
	Sessions  domain.TrainingRepository
	Alerts    domain.AlertRepository
	Calendar  domain.CalendarProvider
	Workouts  domain.WorkoutProvider
	Platform  domain.TrainingPlatform
	Scheduler domain.JobScheduler
	Lock      domain.RunLock
	Recorder  domain.RunResultRecorder
}
