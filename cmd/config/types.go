package config

// CacheConfig holds cache backend flags
type CacheConfig struct {
	Backend    string
	Config     string
	ConfigKV   []string
	ConfigFile string
}

// StepFlags holds the flags shared by the save and stats commands
type StepFlags struct {
	Verbose    string // Overrides the "verbose" action input
	Summary    string // Overrides the "summary" action input
	Tool       string
	WorkDir    string
	ResultFile string
	DryRun     bool
	Debug      bool
}
