package types

// Backend is a Store with a lifecycle. Callers attach to storage described
// by a Config and detach when done.
type Backend interface {
	Store

	// Attach opens the storage described by config, creating DataDir and
	// the schema when missing. Returns ErrAlreadyAttached if already attached.
	Attach(config Config) error

	// Detach releases storage resources. Idempotent: multiple calls succeed.
	// After Detach, repository operations return ErrDetached.
	Detach() error
}
