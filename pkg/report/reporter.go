package report

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/sherine-k/consultation/pkg/simulation"
)

// Source is the part of the simulation the reporter reads from
type Source interface {
	CurrentAverageWaitingTime() float64
	QueueLength() int
	Lawyers() []simulation.Lawyer
	AllocatorStats() simulation.AllocatorStats
	ServedClients() int
}

// Report is a snapshot of the running simulation
type Report struct {
	AverageWaitingSeconds float64
	WaitingClients        int
	BusyLawyers           int
	HighCategoryBusy      bool
	ServedClients         int
	Leaks                 int64
}

// Reporter logs a Report on a cron schedule while a run is active
type Reporter struct {
	cron   *cron.Cron
	source Source
}

// New creates a reporter firing on spec, a standard cron expression or a
// descriptor such as "@every 30s".
func New(spec string, source Source) (*Reporter, error) {
	r := &Reporter{cron: cron.New(), source: source}
	if _, err := r.cron.AddFunc(spec, r.log); err != nil {
		return nil, fmt.Errorf("invalid report schedule %q: %w", spec, err)
	}
	return r, nil
}

func (r *Reporter) Start() {
	r.cron.Start()
}

// Stop halts the schedule and waits for a report in progress
func (r *Reporter) Stop() {
	<-r.cron.Stop().Done()
}

// Snapshot builds a report from the source's current state
func (r *Reporter) Snapshot() Report {
	rep := Report{
		AverageWaitingSeconds: r.source.CurrentAverageWaitingTime(),
		WaitingClients:        r.source.QueueLength(),
		ServedClients:         r.source.ServedClients(),
		Leaks:                 r.source.AllocatorStats().Leaks,
	}
	for _, l := range r.source.Lawyers() {
		if !l.IsBusy {
			continue
		}
		rep.BusyLawyers++
		if l.IsHighCategory {
			rep.HighCategoryBusy = true
		}
	}
	return rep
}

func (r *Reporter) log() {
	rep := r.Snapshot()
	entry := logrus.WithFields(logrus.Fields{
		"averageWait": fmt.Sprintf("%.2fs", rep.AverageWaitingSeconds),
		"waiting":     rep.WaitingClients,
		"busy":        rep.BusyLawyers,
		"highBusy":    rep.HighCategoryBusy,
		"served":      rep.ServedClients,
	})
	if rep.Leaks > 0 {
		entry.WithField("leaks", rep.Leaks).Warn("Status report")
		return
	}
	entry.Info("Status report")
}
