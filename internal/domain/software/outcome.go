package software

// Outcome is the terminal state of a successful installer run.
type Outcome string

const (
	// OutcomeSkipped means the precondition was false.
	OutcomeSkipped Outcome = "skipped"
	// OutcomePresent means the package was found and had no update routine.
	OutcomePresent Outcome = "present"
	// OutcomeUpdated means the package was found and its update routine ran.
	OutcomeUpdated Outcome = "updated"
	// OutcomeInstalled means the install command ran without a download.
	OutcomeInstalled Outcome = "installed"
	// OutcomeDownloadedAndInstalled means the artifact was downloaded and installed.
	OutcomeDownloadedAndInstalled Outcome = "downloaded-and-installed"
	// OutcomeFailed is recorded by callers when a run returned an error.
	OutcomeFailed Outcome = "failed"
)
