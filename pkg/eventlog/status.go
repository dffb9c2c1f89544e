package eventlog

import (
	"github.com/sirupsen/logrus"

	"github.com/sherine-k/consultation/pkg/simulation"
)

// LogrusStatusSink reports status changes as debug log entries
type LogrusStatusSink struct {
	Logger *logrus.Logger
}

func (s LogrusStatusSink) logger() *logrus.Logger {
	if s.Logger == nil {
		return logrus.StandardLogger()
	}
	return s.Logger
}

func (s LogrusStatusSink) OnQueueChanged(event simulation.QueueEvent) {
	s.logger().WithFields(logrus.Fields{
		"client":      event.ClientID,
		"preferHigh":  event.PrefersHighCategory,
		"queueChange": string(event.Kind),
	}).Debug("Waiting line changed")
}

func (s LogrusStatusSink) OnLawyerStatusChanged(snapshot []simulation.Lawyer) {
	busy := 0
	for _, l := range snapshot {
		if l.IsBusy {
			busy++
		}
	}
	s.logger().WithFields(logrus.Fields{
		"busy":  busy,
		"total": len(snapshot),
	}).Debug("Lawyer status changed")
}
