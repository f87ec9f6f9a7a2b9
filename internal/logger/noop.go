package logger

import "time"

// Nop is a logger that discards everything. Handy in tests.
type Nop struct{}

// NewNop returns a no-op logger.
func NewNop() Interface {
	return &Nop{}
}

// Debug does nothing.
func (n *Nop) Debug(string, ...any) {}

// Info does nothing.
func (n *Nop) Info(string, ...any) {}

// Warn does nothing.
func (n *Nop) Warn(string, ...any) {}

// Error does nothing.
func (n *Nop) Error(string, ...any) {}

// Fatal does nothing.
func (n *Nop) Fatal(string, ...any) {}

// With returns the same no-op logger.
func (n *Nop) With(...any) Interface { return n }

// WithComponent returns the same no-op logger.
func (n *Nop) WithComponent(string) Interface { return n }

// WithRunID returns the same no-op logger.
func (n *Nop) WithRunID(string) Interface { return n }

// WithError returns the same no-op logger.
func (n *Nop) WithError(error) Interface { return n }

// WithDuration returns the same no-op logger.
func (n *Nop) WithDuration(time.Duration) Interface { return n }
