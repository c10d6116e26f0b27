package config

// DepmanConfig is the top-level configuration structure for depman.
type DepmanConfig struct {
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
	Run     RunConfig     `yaml:"run"`
}

// OutputConfig controls how notifications are printed.
type OutputConfig struct {
	// Indent is prefixed to every notification line (default: three spaces).
	Indent string `yaml:"indent"`
	// EchoCommands prints each command line before its notifications (default: true).
	EchoCommands bool `yaml:"echoCommands"`
	// Messages overrides notification templates, keyed by event reason
	// (e.g. "ComponentInstalling"). Templates use text/template syntax.
	Messages map[string]string `yaml:"messages,omitempty"`
}

// LoggingConfig controls diagnostic logging on stderr.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error (default: warn).
	Level string `yaml:"level"`
}

// RunConfig controls how command sources are processed.
type RunConfig struct {
	// Strict makes a run exit non-zero when any command was rejected.
	Strict bool `yaml:"strict"`
}
