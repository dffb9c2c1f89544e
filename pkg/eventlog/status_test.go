package eventlog

import (
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sherine-k/consultation/pkg/simulation"
)

func TestLogrusStatusSink_QueueChange(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	sink := LogrusStatusSink{Logger: logger}

	sink.OnQueueChanged(simulation.QueueEvent{Kind: simulation.QueueEventAdded, ClientID: 4, PrefersHighCategory: true})

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "Waiting line changed", entry.Message)
	assert.Equal(t, logrus.Fields{
		"client":      int64(4),
		"preferHigh":  true,
		"queueChange": "added",
	}, entry.Data)
}

func TestLogrusStatusSink_LawyerStatus(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	sink := LogrusStatusSink{Logger: logger}

	sink.OnLawyerStatusChanged([]simulation.Lawyer{{ID: 0, IsHighCategory: true, IsBusy: true}, {ID: 1}})

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.Fields{"busy": 1, "total": 2}, entry.Data)
}
