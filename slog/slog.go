// Package slog provides log/slog decorators for siteinv services.
package slog
