package download

// FailureInjector can force the rollback path to fail.
type FailureInjector interface {
	// RollbackFailure returns a non-nil error to replace the rollback of path.
	RollbackFailure(path string) error
}

// NoFailure is the FailureInjector used in production: rollback always runs.
type NoFailure struct{}

// RollbackFailure never fails.
func (NoFailure) RollbackFailure(string) error {
	return nil
}

// FailRollback makes every rollback fail with ErrSimulatedFilesystem
// without touching the destination. Intended for tests only.
type FailRollback struct{}

// RollbackFailure always fails.
func (FailRollback) RollbackFailure(string) error {
	return ErrSimulatedFilesystem
}
