package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config is the global application configuration
var Config AppConfig

// Defaults applied after a successful load. The API paths mirror the
// fleet backend's route names; the splash delay and success grace are
// product constants.
const (
	defaultAuthPath       = "/Authentication/TokenApp"
	defaultVehiclesPath   = "/Vehiculos"
	defaultPositionsPath  = "/Vehiculos/UltimasPosiciones"
	defaultTimeoutMS      = 15000
	defaultSplashDelayMS  = 1000
	defaultSuccessGraceMS = 100
	defaultSessionFile    = "session.json"
)

// LoadAppConfig loads and validates the application configuration from config.yml
func LoadAppConfig() error {
	paths := []string{"config.yml", "./configs/config.yml"}
	var data []byte
	var err error
	for _, p := range paths {
		data, err = os.ReadFile(p)
		if err == nil {
			break
		}
	}
	if err != nil {
		return err
	}
	cfg, err := Parse(data)
	if err != nil {
		return err
	}
	Config = cfg
	return nil
}

// Parse decodes and validates a raw YAML config, applying defaults.
func Parse(data []byte) (AppConfig, error) {
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return AppConfig{}, err
	}
	v := validator.New()
	if err := v.Struct(cfg.Server); err != nil {
		return AppConfig{}, err
	}
	if err := v.Struct(cfg.Feeds); err != nil {
		return AppConfig{}, err
	}
	if err := v.Struct(cfg.UI); err != nil {
		return AppConfig{}, err
	}
	applyDefaults(&cfg)
	return cfg, nil
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Server.AuthPath == "" {
		cfg.Server.AuthPath = defaultAuthPath
	}
	if cfg.Server.VehiclesPath == "" {
		cfg.Server.VehiclesPath = defaultVehiclesPath
	}
	if cfg.Server.PositionsPath == "" {
		cfg.Server.PositionsPath = defaultPositionsPath
	}
	if cfg.Server.TimeoutMS == 0 {
		cfg.Server.TimeoutMS = defaultTimeoutMS
	}
	if cfg.UI.SplashDelayMS == 0 {
		cfg.UI.SplashDelayMS = defaultSplashDelayMS
	}
	if cfg.UI.SuccessGraceMS == 0 {
		cfg.UI.SuccessGraceMS = defaultSuccessGraceMS
	}
	if cfg.UI.SessionFile == "" {
		cfg.UI.SessionFile = defaultSessionFile
	}
}
