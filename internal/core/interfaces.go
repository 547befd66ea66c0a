package core

// Frame is a raw outbound payload, already encoded for the wire.
type Frame []byte

// Conn abstracts the system messaging transport of one connection.
// Owned by the adapter; the adapter must Close() it.
type Conn interface {
	// TrySend queues a frame without blocking. It returns an error when
	// the connection buffer is full or the connection is closed; the
	// caller treats both as a dropped, best-effort delivery.
	TrySend(Frame) error
	Close()
}
