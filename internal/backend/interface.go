package backend

import (
	"context"

	"financas/internal/amqp"
	"financas/internal/services"
	"financas/internal/storage"
)

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// BackendResult holds the opened store and the optional change client.
type BackendResult struct {
	KV storage.KV
	// AMQP is nil when change notifications are disabled or the broker
	// could not be reached.
	AMQP    *amqp.Client
	Cleanup CleanupFunc
}

// Publisher returns the change publisher, or a nil interface when AMQP is
// not available.
func (r *BackendResult) Publisher() services.ChangePublisher {
	if r.AMQP == nil {
		return nil
	}
	return r.AMQP
}

// Factory creates backends based on configuration
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}

// Config holds configuration for backend creation
type Config struct {
	Type BackendType

	// sqlite
	SQLiteDBPath string

	// file
	DataDirectory string

	// optional change notifications
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}

// BackendType represents the type of backend
type BackendType string

const (
	SQLiteBackend BackendType = "sqlite"
	FileBackend   BackendType = "file"
	MemoryBackend BackendType = "memory"
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case SQLiteBackend, FileBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
