package transport

// Transport sends magnitude-spectrum frames to an external consumer.
// Implementations must be thread-safe and must never block the frame
// loop: a slow consumer drops frames, it does not stall rendering.
type Transport interface {
	Send(magnitudes []float64) error
	Close() error
}
