package server

// Server is the lifecycle contract for the sync server's transports.
// NewServer picks the implementation from the configured addresses; main
// blocks in [RunServer] until the process is told to stop, and [Shutdown]
// drains in-flight sync requests before releasing the listener.
type Server interface {
	// RunServer starts serving requests and blocks until the server stops.
	RunServer()

	// Shutdown gracefully stops the server and frees associated resources.
	Shutdown()
}
