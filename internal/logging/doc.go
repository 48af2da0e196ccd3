// Package logger provides leveled logging for Kōtare CLI commands.
//
// The logger supports multiple verbosity levels controlled by
// command-line flags. Output is formatted with semantic prefixes and
// colors.
//
// # Verbosity Levels
//
// Logging behavior is controlled by two flags:
//
//   - --verbose: Shows info and warning messages
//   - --debug: Shows all messages including debug details
//
// Without flags, only warnings and errors are shown.
//
// # Log Methods
//
//	Logger.Infof()           // Shown with --verbose or --debug
//	Logger.Debugf()          // Shown only with --debug
//	Logger.Warnf()           // Always shown
//	Logger.Errorf()          // Always shown
//	Logger.ErrorfAndReturn() // Logs, then returns the message as an error
//
// # Usage
//
// Create a logger with the desired verbosity:
//
//	log := Logger{Verbose: verbose, Debug: debug}
//	log.Infof("Parsed %d entries", count)
//
// Commands create a logger in their PersistentPreRun and pass it to
// internal functions. Log messages reference secret keys and counts
// only, never secret values.
package logger
