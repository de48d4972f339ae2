package poller

import (
	"time"

	"github.com/npratt/pcmon/internal/apiclient"
	"github.com/npratt/pcmon/internal/timeseries"
)

// UpdateType identifies the kind of update published by the controller.
type UpdateType string

// Update types.
const (
	UpdateStats   UpdateType = "stats"
	UpdateLogs    UpdateType = "logs"
	UpdateStopped UpdateType = "stopped"
)

// Stop reasons carried by StoppedUpdate.
const (
	ReasonStall = "stall"
)

// Update is a result the controller hands to its sink.
type Update interface {
	Type() UpdateType
}

// StatsUpdate carries one statistics snapshot.
type StatsUpdate struct {
	Stats     *apiclient.StatsResponse
	FetchedAt time.Time
}

// Type implements Update.
func (StatsUpdate) Type() UpdateType { return UpdateStats }

// LogsUpdate carries one log snapshot and everything derived from it.
// Store is freshly built and must not be mutated by receivers.
type LogsUpdate struct {
	Lines     []string
	Store     timeseries.Store
	Defective int
	Anchor    time.Time
	FetchedAt time.Time
}

// Type implements Update.
func (LogsUpdate) Type() UpdateType { return UpdateLogs }

// StoppedUpdate is published once when polling stops for good.
type StoppedUpdate struct {
	Reason string
	Streak int
	At     time.Time
}

// Type implements Update.
func (StoppedUpdate) Type() UpdateType { return UpdateStopped }
