// Package log is the structured logging layer of the wallet core.
//
// Components receive a Logger explicitly; nothing in this module logs through
// a global. Three implementations exist:
//
//   - ZapLogger writes console, logfmt or JSON entries through zap.
//   - NoopLogger discards entries and is the default everywhere.
//   - SpanLogger mirrors entries onto an OpenTelemetry span.
//
// Typical setup:
//
//	logger := log.NewZapLogger(log.Config{Format: "json", Level: log.LevelDebug})
//	logger = logger.WithName("anycoin").WithKV("registry", "embedded")
//	logger.Info("core ready", "coins", 120)
//
// SetContextLogger and FromContext move a logger through a context.Context;
// when the context holds a valid span the stored logger is a SpanLogger.
//
// Key material must never be passed as a value. Log Fingerprint(pub) when a
// key needs to be correlated across entries.
//
// Config is read from the environment (see anycoin.LoadConfig):
//
//   - WALLETCORE_LOG_FORMAT: console, logfmt or json
//   - WALLETCORE_LOG_LEVEL: debug, info, warn, error or fatal
//   - WALLETCORE_LOG_OUTPUT: stderr, stdout or a file path
package log
