package config

import "time"

// ServerConfig contains the remote fleet API endpoints.
type ServerConfig struct {
	BaseURL       string `yaml:"baseURL" validate:"required,url"`
	AuthPath      string `yaml:"authPath"`
	VehiclesPath  string `yaml:"vehiclesPath"`
	PositionsPath string `yaml:"positionsPath"`
	TimeoutMS     int    `yaml:"timeoutMS" validate:"gte=0"`
}

// FeedConfig contains optional position feeds that supplement the REST
// endpoints.
type FeedConfig struct {
	GTFSRTVehiclePositionsURL string `yaml:"gtfsrtVehiclePositionsURL" validate:"omitempty,url"`
	LiveStreamURL             string `yaml:"liveStreamURL"`
	ReadIntervalMS            int    `yaml:"readIntervalMS" validate:"gte=0"`
}

// UIConfig contains client-side behavior knobs.
type UIConfig struct {
	SplashDelayMS  int    `yaml:"splashDelayMS" validate:"gte=0"`
	SuccessGraceMS int    `yaml:"successGraceMS" validate:"gte=0"`
	SessionFile    string `yaml:"sessionFile"`
	PreviewPort    int    `yaml:"previewPort" validate:"gte=0"`
}

// Timeout is the request deadline as a duration.
func (c ServerConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

// SplashDelay is the minimum splash screen hold as a duration.
func (c UIConfig) SplashDelay() time.Duration {
	return time.Duration(c.SplashDelayMS) * time.Millisecond
}

// SuccessGrace is the post-login success notice hold as a duration.
func (c UIConfig) SuccessGrace() time.Duration {
	return time.Duration(c.SuccessGraceMS) * time.Millisecond
}

// AppConfig is the root configuration structure.
type AppConfig struct {
	Server ServerConfig `yaml:"server" validate:"required"`
	Feeds  FeedConfig   `yaml:"feeds"`
	UI     UIConfig     `yaml:"ui"`
}
