package simulation

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// QueueEventKind tells whether a client joined or left the waiting line
type QueueEventKind string

const (
	QueueEventAdded   QueueEventKind = "added"
	QueueEventRemoved QueueEventKind = "removed"
)

// QueueEvent describes one waiting line mutation
type QueueEvent struct {
	Kind                QueueEventKind
	ClientID            int64
	PrefersHighCategory bool
}

// StatusSink receives state changes for display. Implementations are called
// while the emitting component holds its lock, so they see changes in the
// order they happened, and must not call back into the simulation.
type StatusSink interface {
	OnQueueChanged(event QueueEvent)
	OnLawyerStatusChanged(snapshot []Lawyer)
}

// LogSink receives timestamped, human readable event lines
type LogSink interface {
	Append(ts time.Time, message string) error
}

// NopStatusSink discards every status change
type NopStatusSink struct{}

func (NopStatusSink) OnQueueChanged(QueueEvent)     {}
func (NopStatusSink) OnLawyerStatusChanged([]Lawyer) {}

// MultiStatusSink fans status changes out to several sinks in order
type MultiStatusSink []StatusSink

func (m MultiStatusSink) OnQueueChanged(event QueueEvent) {
	for _, s := range m {
		s.OnQueueChanged(event)
	}
}

func (m MultiStatusSink) OnLawyerStatusChanged(snapshot []Lawyer) {
	for _, s := range m {
		// each sink gets its own copy
		s.OnLawyerStatusChanged(append([]Lawyer(nil), snapshot...))
	}
}

type discardLog struct{}

func (discardLog) Append(time.Time, string) error { return nil }

// journal writes event lines to a LogSink. A failing sink is reported to the
// operator and otherwise ignored.
type journal struct {
	sink  LogSink
	clock Clock
}

func (j *journal) printf(format string, args ...any) {
	message := fmt.Sprintf(format, args...)
	if err := j.sink.Append(j.clock.Now(), message); err != nil {
		logrus.WithError(err).WithField("message", message).Error("Error writing to log")
	}
}

// EventType defines the type of a recorded event
type EventType string

const (
	EventTypeClientArrived  EventType = "client-arrived"
	EventTypeClientDequeued EventType = "client-dequeued"
	EventTypeLawyerBusy     EventType = "lawyer-busy"
	EventTypeLawyerFree     EventType = "lawyer-free"
)

// Event represents a point-in-time event in the simulation
type Event struct {
	Time           time.Time
	Type           EventType
	ClientID       int64
	LawyerID       int
	BusyLawyers    int
	WaitingClients int
	Message        string
}

// TimePoint represents the state at a specific point in time
type TimePoint struct {
	Time           time.Time
	BusyLawyers    int
	WaitingClients int
}
