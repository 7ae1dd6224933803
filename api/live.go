package api

import (
	"context"
	"log"

	"github.com/gorilla/websocket"

	"github.com/nextapp/fleetview/fleet"
)

// LiveStream subscribes to a websocket endpoint that pushes vehicle
// record arrays as positions change. It is an optional supplement to
// polling: the dashboard view feeds each batch through the same
// aggregation pipeline as a fetched snapshot.
type LiveStream struct {
	url string
}

func NewLiveStream(url string) *LiveStream {
	return &LiveStream{url: url}
}

// Run dials the stream and invokes onRecords for every decoded batch
// until the context is cancelled or the connection drops. The caller
// is responsible for marshalling the callback onto the UI scheduler.
func (s *LiveStream) Run(ctx context.Context, onRecords func([]fleet.Record)) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, s.url, nil)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	// Close the connection when the context ends so ReadMessage
	// unblocks.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}
		records, err := fleet.DecodeRecords(data)
		if err != nil {
			log.Printf("live stream: undecodable frame: %v", err)
			continue
		}
		onRecords(records)
	}
}
