/*
Package log provides structured logging for lmctl using zerolog.

The log package wraps the zerolog library to provide JSON-structured logging
with component-specific loggers, configurable log levels, and helper functions
for common logging patterns. All logs include timestamps and support filtering
by severity level.

# Core Components

Global Logger:
  - Package-level zerolog.Logger instance
  - Initialized once via log.Init()
  - Accessible from all lmctl packages
  - Thread-safe concurrent writes

Configuration:
  - Level: debug/info/warn/error threshold
  - JSONOutput: JSON vs human-readable console
  - Output: io.Writer for log destination (stderr by default)

Context Loggers:
  - WithComponent: adds a component name to all logs
  - WithResource: adds resource kind and action context

# Usage

Initializing the logger:

	log.Init(log.Config{
		Level:      log.InfoLevel,
		JSONOutput: true,
	})

Structured logging:

	apiLog := log.WithComponent("api")
	apiLog.Debug().
		Str("method", "GET").
		Str("path", "/device/devices").
		Msg("issuing request")

Error logging:

	log.Logger.Error().
		Err(err).
		Str("resource", "device").
		Msg("reconcile failed")

# Integration Points

This package integrates with:

  - pkg/api: request/response trace lines
  - pkg/resources: resolver lookups
  - pkg/reconcile: action outcomes
  - cmd/lmctl: logger initialization and invocation correlation

# Best Practices

Do:
  - Use Info level by default; Debug mirrors every remote call
  - Use typed fields (.Str, .Int, .Err) for queryable data
  - Create component-specific loggers

Don't:
  - Log access keys or signed tokens
  - Concatenate user input into messages

# See Also

  - Zerolog documentation: https://github.com/rs/zerolog
*/
package log
