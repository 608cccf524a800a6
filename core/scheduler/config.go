package scheduler

// Config holds the in-process refresh schedule.
type Config struct {
	// Schedule is a cron spec with an optional seconds field. Empty disables it.
	Schedule string `mapstructure:"schedule" default:""`
	// OnStart runs the job once when the server boots.
	OnStart bool `mapstructure:"on_start" default:"false"`
}

// Enabled reports whether a schedule is configured.
func (c Config) Enabled() bool {
	return c.Schedule != ""
}
