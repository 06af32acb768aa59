package contract

// ProfileConfig holds profiling configuration.
type ProfileConfig struct {
	Enabled bool   // Whether profiling is enabled
	Prefix  string // File prefix for CPU and memory profiles
}

// ProcessProfilingConfig populates the profiling config from the raw prefix
// value. An empty prefix disables profiling.
func ProcessProfilingConfig(profile *ProfileConfig, prefix string) error {
	profile.Enabled = prefix != ""
	profile.Prefix = prefix
	return nil
}
