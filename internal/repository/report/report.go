package report

import (
	"time"

	"github.com/oshokin/simple-installer/internal/domain/software"
)

// Report summarizes one setup run.
type Report struct {
	// Actor is who ran the setup and where.
	Actor *software.Actor `yaml:"actor,omitempty"`
	// StartedAt is when the run began.
	StartedAt time.Time `yaml:"started_at"`
	// FinishedAt is when the run ended, successfully or not.
	FinishedAt time.Time `yaml:"finished_at"`
	// Error is the error that stopped the run, empty on success.
	Error string `yaml:"error,omitempty"`
	// Packages lists processed packages in order.
	Packages []Entry `yaml:"packages"`
	// Commands lists plain commands that were run.
	Commands []string `yaml:"commands,omitempty"`
}

// Entry is the outcome of one package.
type Entry struct {
	Name     string           `yaml:"name"`
	Outcome  software.Outcome `yaml:"outcome"`
	Error    string           `yaml:"error,omitempty"`
	Duration time.Duration    `yaml:"duration"`
}

// Add appends an entry for a finished installer run.
func (r *Report) Add(name string, outcome software.Outcome, duration time.Duration, err error) {
	entry := Entry{
		Name:     name,
		Outcome:  outcome,
		Duration: duration,
	}

	if err != nil {
		entry.Error = err.Error()
	}

	r.Packages = append(r.Packages, entry)
}
