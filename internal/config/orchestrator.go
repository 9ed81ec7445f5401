package config

import (
	"errors"
	"os"
	"strings"
	"time"
)

const (
	checkTrainingCadenceEnv    = "ORCHESTRATOR_CHECK_TRAINING_CADENCE"
	detectConflictsCadenceEnv  = "ORCHESTRATOR_DETECT_CONFLICTS_CADENCE"
	orchestratorConcurrencyEnv = "ORCHESTRATOR_CONCURRENCY"
	orchestratorRunBudgetEnv   = "ORCHESTRATOR_RUN_BUDGET"
	providerTimeoutEnv         = "PROVIDER_TIMEOUT"
	jobTargetBaseURLEnv        = "JOB_TARGET_BASE_URL"

	defaultCheckTrainingCadence   = 4 * time.Hour
	defaultDetectConflictsCadence = 24 * time.Hour
	defaultConcurrency            = 4
	defaultRunBudget              = 5 * time.Minute
	defaultProviderTimeout        = 20 * time.Second
)

type OrchestratorConfig struct {
	CheckTrainingCadence   time.Duration
	DetectConflictsCadence time.Duration
	Concurrency            int
	RunBudget              time.Duration
	ProviderTimeout        time.Duration
	// JobTargetBaseURL is where re-armed job tasks call back, normally this service.
	JobTargetBaseURL string
}

func LoadOrchestratorConfig() (*OrchestratorConfig, error) {
	var errs []error

	checkTraining, err := duration(checkTrainingCadenceEnv, defaultCheckTrainingCadence)
	errs = append(errs, err)
	detectConflicts, err := duration(detectConflictsCadenceEnv, defaultDetectConflictsCadence)
	errs = append(errs, err)
	runBudget, err := duration(orchestratorRunBudgetEnv, defaultRunBudget)
	errs = append(errs, err)
	providerTimeout, err := duration(providerTimeoutEnv, defaultProviderTimeout)
	errs = append(errs, err)

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	return &OrchestratorConfig{
		CheckTrainingCadence:   checkTraining,
		DetectConflictsCadence: detectConflicts,
		Concurrency:            positiveInt(orchestratorConcurrencyEnv, defaultConcurrency),
		RunBudget:              runBudget,
		ProviderTimeout:        providerTimeout,
		JobTargetBaseURL:       strings.TrimRight(os.Getenv(jobTargetBaseURLEnv), "/"),
	}, nil
}
