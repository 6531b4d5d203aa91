/*
Package ingest decodes STOMP MESSAGE bodies delivered by a subscribed
session.Session into passenger events and hands them to a caller-owned
sink. It deliberately stops there: station/line bookkeeping and the
transport network graph are an external collaborator's responsibility
so this package never accumulates state of its own.
*/
package ingest

import (
	"encoding/json"
	"fmt"
)

// EventType is the two-value enum a passenger event's type is reported as.
type EventType int

const (
	In EventType = iota
	Out
)

func (t EventType) String() string {
	switch t {
	case In:
		return "in"
	case Out:
		return "out"
	default:
		return "unknown"
	}
}

// PassengerEvent is a single tap-in or tap-out at a station.
type PassengerEvent struct {
	StationID string
	Type      EventType
}

// EventSink is what DecodeMessage delivers a decoded PassengerEvent to.
// The transport network graph in a full deployment would implement
// this to update its own passenger counts; this module provides no
// such implementation.
type EventSink interface {
	RecordPassengerEvent(PassengerEvent) error
}

// wireEvent is the JSON shape a MESSAGE body is expected to carry.
type wireEvent struct {
	StationID string `json:"station_id"`
	EventType string `json:"event_type"`
}

// DecodeMessage parses body as a passenger event and forwards it to
// sink. It returns an error without calling sink if body is not valid
// JSON, is missing station_id, or names an event_type other than "in"
// or "out".
func DecodeMessage(body []byte, sink EventSink) error {
	var w wireEvent
	if err := json.Unmarshal(body, &w); err != nil {
		return fmt.Errorf("could not decode passenger event: %w", err)
	}
	if w.StationID == "" {
		return fmt.Errorf("passenger event is missing station_id")
	}

	var eventType EventType
	switch w.EventType {
	case "in":
		eventType = In
	case "out":
		eventType = Out
	default:
		return fmt.Errorf("passenger event has unrecognized event_type %q", w.EventType)
	}

	return sink.RecordPassengerEvent(PassengerEvent{StationID: w.StationID, Type: eventType})
}
