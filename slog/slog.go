// Package slog provides log/slog decorators for encarte collaborators.
package slog
