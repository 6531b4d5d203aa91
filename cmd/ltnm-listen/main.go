/*
ltnm-listen is a minimal example binary showing how the pieces of this
module fit together: it loads configuration, dials the LTNM STOMP
server over a secure WebSocket, subscribes to the passenger events
destination, and logs each decoded event. It is not part of the
module's public contract; a real caller would embed config,
wstransport, session, and ingest directly rather than shelling out to
this binary.
*/
package main

import (
	"context"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/tfl-labs/ltnm-stomp-client/config"
	"github.com/tfl-labs/ltnm-stomp-client/ingest"
	"github.com/tfl-labs/ltnm-stomp-client/logger"
	"github.com/tfl-labs/ltnm-stomp-client/session"
	"github.com/tfl-labs/ltnm-stomp-client/transport/wstransport"
)

const passengerEventsDestination = "/topic/passenger-events"

// logSink adapts *logger.Logger to ingest.EventSink for this example;
// a real deployment would record into the transport network graph
// instead.
type logSink struct {
	log *logger.Logger
}

func (s logSink) RecordPassengerEvent(e ingest.PassengerEvent) error {
	s.log.Infof("passenger event: station=%s type=%s", e.StationID, e.Type)
	return nil
}

func main() {
	overridePath := flag.String("config", "", "optional YAML file supplying local defaults")
	logLevel := flag.String("log-level", "info", "trace, debug, info, warn, or error")
	flag.Parse()

	root, err := logger.New(&logger.Config{
		ConsoleWriters: []io.Writer{os.Stdout},
		LogLevel:       logger.ToLogLevel(*logLevel),
	})
	if err != nil {
		panic(err)
	}
	log := root.GetComponentLogger("ltnm-listen")

	cfg, err := config.Load(*overridePath)
	if err != nil {
		log.Error(err)
		os.Exit(1)
	}

	wsConfig := wstransport.Config{
		URL:      cfg.ServerURL,
		Port:     cfg.ServerPort,
		Endpoint: "/",
	}
	if cfg.CABundlePath != "" {
		pool, err := config.LoadTLSTrustStore(cfg.CABundlePath)
		if err != nil {
			log.Error(err)
			os.Exit(1)
		}
		wsConfig.TLSTrustStore = pool
	}

	transportClient := wstransport.New(log, wsConfig)
	sess := session.New(log, transportClient, cfg.ServerURL)
	sink := logSink{log: log}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	connected := make(chan struct{})
	sess.Connect(ctx, cfg.Username, cfg.Password, func(err error) {
		if err != nil {
			log.Error(err)
			os.Exit(1)
		}
		close(connected)
	}, func(err error) {
		log.Error(err)
		os.Exit(1)
	})
	<-connected

	sess.Subscribe(passengerEventsDestination, func(err error, id string) {
		if err != nil {
			log.Error(err)
			return
		}
		log.Infof("subscribed to %s with id %s", passengerEventsDestination, id)
	}, func(err error, body []byte) {
		if err != nil {
			log.Error(err)
			return
		}
		if err := ingest.DecodeMessage(body, sink); err != nil {
			log.Error(err)
		}
	})

	<-ctx.Done()

	closed := make(chan struct{})
	sess.Close(func(error) { close(closed) })
	<-closed
}
