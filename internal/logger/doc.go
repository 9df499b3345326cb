// Package logger wraps zap for the whole of TickStack:
//   - a global sugared logger with a compact console encoder,
//   - context helpers (ToContext/FromContext/WithName/WithKV) so every
//     service and step logs with its own scope,
//   - level parsing and runtime level changes,
//   - sink selection, because the terminal UI owns stdout while it runs.
package logger
