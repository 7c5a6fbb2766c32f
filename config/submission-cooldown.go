package config

import "time"

// Submission cooldown configuration
type SubmissionCooldownConfig struct {
	AttemptsThreshold int           // Number of submissions within the window before cooldown
	Window            time.Duration // Sliding window for counting submissions
	CooldownDuration  time.Duration // How long a session is locked out once throttled
}

var DefaultSubmissionCooldownConfig = SubmissionCooldownConfig{
	AttemptsThreshold: 10,
	Window:            time.Minute,
	CooldownDuration:  30 * time.Second,
}
