package simulation

import (
	"fmt"
	"sync"
	"time"
)

// Recorder is a StatusSink keeping the history of a run as events and the
// corresponding occupancy time points.
type Recorder struct {
	mu         sync.Mutex
	clock      Clock
	lawyers    map[int]bool
	busy       int
	waiting    int
	events     []Event
	timePoints []TimePoint
}

func NewRecorder(clock Clock) *Recorder {
	return &Recorder{clock: clock, lawyers: map[int]bool{}}
}

// OnQueueChanged implements StatusSink
func (r *Recorder) OnQueueChanged(event QueueEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch event.Kind {
	case QueueEventAdded:
		r.waiting++
		r.addEventLocked(EventTypeClientArrived, event.ClientID, -1,
			fmt.Sprintf("Client %d joined the line (prefers high category: %t)", event.ClientID, event.PrefersHighCategory))
	case QueueEventRemoved:
		if r.waiting > 0 {
			r.waiting--
		}
		r.addEventLocked(EventTypeClientDequeued, event.ClientID, -1,
			fmt.Sprintf("Client %d left the line", event.ClientID))
	}
}

// OnLawyerStatusChanged implements StatusSink. One event is recorded per
// lawyer whose state differs from the previous snapshot.
func (r *Recorder) OnLawyerStatusChanged(snapshot []Lawyer) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, l := range snapshot {
		prev, known := r.lawyers[l.ID]
		r.lawyers[l.ID] = l.IsBusy
		if known && prev == l.IsBusy || !known && !l.IsBusy {
			continue
		}
		if l.IsBusy {
			r.busy++
			r.addEventLocked(EventTypeLawyerBusy, -1, l.ID, fmt.Sprintf("Lawyer %d is busy", l.ID))
		} else {
			r.busy--
			r.addEventLocked(EventTypeLawyerFree, -1, l.ID, fmt.Sprintf("Lawyer %d is free", l.ID))
		}
	}
}

func (r *Recorder) addEventLocked(typ EventType, clientID int64, lawyerID int, message string) {
	now := r.clock.Now()
	r.events = append(r.events, Event{
		Time:           now,
		Type:           typ,
		ClientID:       clientID,
		LawyerID:       lawyerID,
		BusyLawyers:    r.busy,
		WaitingClients: r.waiting,
		Message:        message,
	})
	r.timePoints = append(r.timePoints, TimePoint{Time: now, BusyLawyers: r.busy, WaitingClients: r.waiting})
}

// GetEvents returns all events
func (r *Recorder) GetEvents() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// GetTimePoints returns one time point per recorded event
func (r *Recorder) GetTimePoints() []TimePoint {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]TimePoint(nil), r.timePoints...)
}

// Sample resamples the recorded occupancy on a regular grid, carrying the
// last known state forward between events.
func (r *Recorder) Sample(interval time.Duration) []TimePoint {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.timePoints) == 0 || interval <= 0 {
		return nil
	}

	start := r.timePoints[0].Time
	end := r.timePoints[len(r.timePoints)-1].Time

	var samples []TimePoint
	current := TimePoint{}
	idx := 0
	for t := start; !t.After(end); t = t.Add(interval) {
		for idx < len(r.timePoints) && !r.timePoints[idx].Time.After(t) {
			current = r.timePoints[idx]
			idx++
		}
		samples = append(samples, TimePoint{Time: t, BusyLawyers: current.BusyLawyers, WaitingClients: current.WaitingClients})
	}
	return samples
}

// Reset forgets the recorded history but keeps the known lawyer states
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
	r.timePoints = nil
}
