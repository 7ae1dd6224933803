package ui

import (
	"context"

	"github.com/nextapp/fleetview/api"
	"github.com/nextapp/fleetview/fleet"
	"github.com/nextapp/fleetview/mapview"
	"github.com/nextapp/fleetview/session"
)

// AuthService is the external token issuer. Only its success/failure
// contract matters here.
type AuthService interface {
	Login(ctx context.Context, username, password string) (api.LoginResult, error)
}

// VehicleService is the remote fleet data source.
type VehicleService interface {
	FetchVehicles(ctx context.Context, token string) ([]fleet.Record, error)
	FetchLastPositions(ctx context.Context, token string) ([]fleet.Record, error)
	FetchVehicleLocation(ctx context.Context, token, vehicleID, imei string) (fleet.Record, error)
}

// LiveService pushes position batches over a long-lived connection.
// Run blocks until the connection drops or ctx is cancelled.
type LiveService interface {
	Run(ctx context.Context, onRecords func([]fleet.Record)) error
}

// Deps carries every collaborator the router needs. Exec runs a
// closure on a background worker; the default spawns a goroutine, and
// tests substitute an inline runner.
type Deps struct {
	Auth     AuthService
	Vehicles VehicleService
	Store    session.Store
	Preview  *mapview.Preview
	Sources  []api.PositionSource
	Live     LiveService

	Exec func(func())
}

func (d *Deps) exec(fn func()) {
	if d.Exec != nil {
		d.Exec(fn)
		return
	}
	go fn()
}
