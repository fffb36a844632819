package mq

import "context"

// Backend defines the broker operations used by the storefront.
type Backend interface {
	Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error)
	Close() error
}

// MQ wraps a backend with a stable API. A nil backend turns every publish into a no-op,
// which is how the service runs when no broker is configured.
type MQ struct {
	backend Backend
}

// New constructs an MQ wrapper for the provided backend.
func New(backend Backend) *MQ {
	return &MQ{backend: backend}
}

// Enabled reports whether a broker backs this MQ.
func (m *MQ) Enabled() bool {
	return m != nil && m.backend != nil
}

// Publish sends a message to the named channel.
func (m *MQ) Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error) {
	if !m.Enabled() {
		return "", nil
	}
	return m.backend.Publish(ctx, channel, data, attrs)
}

// Close closes the underlying backend.
func (m *MQ) Close() error {
	if !m.Enabled() {
		return nil
	}
	return m.backend.Close()
}
