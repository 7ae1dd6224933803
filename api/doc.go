// Package api implements the clients for the fleet backend: the
// authentication endpoint, the vehicle roster and last-positions
// endpoints, a per-vehicle location endpoint chain, and the optional
// supplemental position feeds (GTFS-RT protobuf, websocket live
// stream). Transport and protocol failures are classified into a small
// taxonomy so the views can surface uniform messages.
package api
