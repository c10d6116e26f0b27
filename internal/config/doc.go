// Package config provides configuration management for depman.
//
// Configuration is loaded from a single directory containing config.yaml.
// The default directory is ~/.config/depman; the --config flag selects
// another one. A missing file is not an error: the defaults apply.
//
// # Example
//
//	output:
//	  indent: "  "
//	  echoCommands: false
//	  messages:
//	    ComponentInstalling: "+ {{.Name}}"
//	    ComponentRemoving: "- {{.Name}}"
//	logging:
//	  level: debug
//	run:
//	  strict: true
//
// # Defaults
//
//   - output.indent: three spaces
//   - output.echoCommands: true
//   - logging.level: warn
//   - run.strict: false
//
// Message templates are validated at load time against the known event
// reasons of the events package, so a typo fails fast instead of producing
// broken output mid-run.
package config
