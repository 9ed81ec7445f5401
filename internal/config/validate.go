package config

import "errors"

// ValidateForRun checks what a single job run needs.
func ValidateForRun(cfg *Config) error {
	errs := []error{
		cfg.Database.Validate(),
		cfg.Redis.Validate(),
		cfg.TaskQueue.Validate(),
		cfg.Dispatcher.Validate(),
	}
	if cfg.Orchestrator.JobTargetBaseURL == "" && cfg.TaskQueue.enabled() {
		errs = append(errs, ErrJobTargetMissing)
	}
	return errors.Join(errs...)
}

// ValidateForServe adds the user API requirements on top of ValidateForRun.
func ValidateForServe(cfg *Config) error {
	return errors.Join(ValidateForRun(cfg), cfg.Auth.Validate())
}

func (c *TaskQueueConfig) enabled() bool {
	return c.PrimindTasksURL != "" || c.GCloudProjectID != ""
}
