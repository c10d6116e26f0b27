package config

const (
	// DefaultIndent matches the classic output of the command-file tool.
	DefaultIndent = "   "

	// DefaultLogLevel keeps stderr quiet unless something goes wrong.
	DefaultLogLevel = "warn"
)

// GetDefaultConfig returns the default configuration.
func GetDefaultConfig() DepmanConfig {
	return DepmanConfig{
		Output: OutputConfig{
			Indent:       DefaultIndent,
			EchoCommands: true,
		},
		Logging: LoggingConfig{
			Level: DefaultLogLevel,
		},
	}
}
