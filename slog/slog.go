// Package slog provides logging decorators for ao3doc services.
package slog
