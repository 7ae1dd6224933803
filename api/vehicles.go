package api

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/nextapp/fleetview/fleet"
)

// ErrNoLocationEndpoint is returned when every candidate location
// endpoint for a vehicle failed.
var ErrNoLocationEndpoint = errors.New("No se encontró endpoint de ubicaciones disponible")

// FetchVehicles retrieves the fleet roster.
func (c *Client) FetchVehicles(ctx context.Context, token string) ([]fleet.Record, error) {
	body, err := c.getJSON(ctx, c.vehiclesPath, token)
	if err != nil {
		return nil, err
	}
	records, err := fleet.DecodeRecords(body)
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	return records, nil
}

// FetchLastPositions retrieves the last-known positions list, records
// already carrying location fields.
func (c *Client) FetchLastPositions(ctx context.Context, token string) ([]fleet.Record, error) {
	body, err := c.getJSON(ctx, c.positionsPath, token)
	if err != nil {
		return nil, err
	}
	records, err := fleet.DecodeRecords(body)
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	return records, nil
}

// locationEndpoints lists the candidate paths for one vehicle's
// current location, tried in order. The backend has shipped several
// spellings of this route; none is authoritative.
func locationEndpoints(vehicleID, imei string) []string {
	var paths []string
	if vehicleID != "" {
		paths = append(paths,
			"/Vehiculos/"+vehicleID+"/Ubicacion",
			"/Vehiculos/"+vehicleID+"/Location",
			"/Ubicaciones/"+vehicleID,
		)
	}
	if imei != "" {
		paths = append(paths,
			"/Ubicaciones?imei="+imei,
			"/Ubicaciones?IMEI="+imei,
			"/Vehiculos/Ubicacion?imei="+imei,
		)
	}
	return paths
}

// FetchVehicleLocation tries each candidate endpoint until one answers
// 2xx with a decodable body. Timeouts and error statuses just advance
// the chain; only full exhaustion is an error.
func (c *Client) FetchVehicleLocation(ctx context.Context, token, vehicleID, imei string) (fleet.Record, error) {
	for _, path := range locationEndpoints(vehicleID, imei) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		body, err := c.getJSON(ctx, path, token)
		if err != nil {
			continue
		}
		records, err := fleet.DecodeRecords(body)
		if err != nil || len(records) == 0 {
			continue
		}
		return records[0], nil
	}
	return nil, ErrNoLocationEndpoint
}

// AllVehicleLocations resolves the current location of every roster
// vehicle that carries an id or IMEI, keyed by id (falling back to
// IMEI). Vehicles whose chain exhausts are simply absent from the
// result.
func (c *Client) AllVehicleLocations(ctx context.Context, token string, vehicles []fleet.Record) map[string]fleet.Record {
	out := make(map[string]fleet.Record)
	for _, v := range vehicles {
		id := v.ID()
		imei := v.IMEI()
		if id == "" && imei == "" {
			continue
		}
		loc, err := c.FetchVehicleLocation(ctx, token, id, imei)
		if err != nil {
			continue
		}
		key := id
		if key == "" {
			key = imei
		}
		out[key] = loc
	}
	return out
}

// PositionSource is one named strategy for obtaining vehicle records.
// Sources are tried in a fixed order; each reports a uniform result.
type PositionSource interface {
	Name() string
	Fetch(ctx context.Context, token string) ([]fleet.Record, error)
}

// lastPositionsSource and rosterSource adapt the Client endpoints to
// the strategy interface.
type lastPositionsSource struct{ c *Client }

func (s lastPositionsSource) Name() string { return "last-positions" }
func (s lastPositionsSource) Fetch(ctx context.Context, token string) ([]fleet.Record, error) {
	return s.c.FetchLastPositions(ctx, token)
}

type rosterSource struct{ c *Client }

func (s rosterSource) Name() string { return "roster" }
func (s rosterSource) Fetch(ctx context.Context, token string) ([]fleet.Record, error) {
	return s.c.FetchVehicles(ctx, token)
}

// LastPositionsSource exposes the last-positions endpoint as a strategy.
func (c *Client) LastPositionsSource() PositionSource { return lastPositionsSource{c} }

// RosterSource exposes the roster endpoint as a strategy.
func (c *Client) RosterSource() PositionSource { return rosterSource{c} }

// SourceChain tries each source in order and returns the first
// success along with the winning source's name. The degraded
// roster-without-positions path is simply the roster source appearing
// later in the chain.
type SourceChain struct {
	Sources []PositionSource
}

// Fetch walks the chain. An empty success advances to the next source
// so a dry positions endpoint still falls through to the roster; when
// every source fails the last error is returned.
func (sc SourceChain) Fetch(ctx context.Context, token string) ([]fleet.Record, string, error) {
	var lastErr error
	emptyFrom := ""
	for _, src := range sc.Sources {
		records, err := src.Fetch(ctx, token)
		if err != nil {
			log.Printf("position source %s failed: %v", src.Name(), err)
			lastErr = err
			continue
		}
		if len(records) == 0 {
			log.Printf("position source %s returned no records", src.Name())
			emptyFrom = src.Name()
			continue
		}
		return records, src.Name(), nil
	}
	// A source that answered with an empty fleet beats a failure.
	if emptyFrom != "" {
		return nil, emptyFrom, nil
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no position sources configured")
	}
	return nil, "", lastErr
}
