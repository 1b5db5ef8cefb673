// Package logging provides a minimal logging facade for phe-go.
//
// The Logger interface wraps the context-aware subset of log/slog so that
// applications can supply their own implementation for testing, redaction or
// integration with an existing logging system.
//
// # Backends
//
// The default backend is log/slog:
//
//	logger := logging.New(nil) // slog.Default()
//
//	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})
//	logger = logging.New(slog.New(handler))
//
// Applications already standardised on logrus can use the adapter:
//
//	logger := logging.NewLogrus(logrus.WithField("component", "tally"))
//
// # Redaction
//
// Key generation and encryption never log secret values. Where an attribute
// would have carried one, it is replaced by a placeholder:
//
//	logger.Debug(ctx, "key generated", "bits", 2048, logging.Redacted("p"))
//	// Logs: p="[redacted]"
//
// # Security Considerations
//
//   - Never log prime factors, lambda, mu, randomizers or plaintexts
//   - Ciphertexts and public moduli are public, but still verbose; log bit lengths instead
//   - Ensure log storage is access-controlled
package logging
