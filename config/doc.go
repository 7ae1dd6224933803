// Package config loads and validates the application configuration:
// the fleet API endpoints and timeout, optional supplemental position
// feeds, and client-side behavior knobs (splash delay, session storage
// location, map preview port).
package config
