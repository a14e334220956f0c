package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Server captures process-level configuration for the dashboard.
type Server struct {
	Addr         string
	DataPath     string
	WorldGeoJSON string
	LogLevel     string
	LogFormat    string
}

// FromEnv builds a Server config from environment variables so main stays
// lean. A .env file in the working directory is honored when present.
func FromEnv() Server {
	// A missing .env is the normal case outside development.
	_ = godotenv.Load()

	addr := os.Getenv("RANKBOARD_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	dataPath := os.Getenv("RANKBOARD_DATA")
	if dataPath == "" {
		dataPath = "top universities.csv"
	}

	worldGeoJSON := os.Getenv("RANKBOARD_WORLD_GEOJSON")
	if worldGeoJSON == "" {
		worldGeoJSON = "assets/world.geo.json"
	}

	logLevel := os.Getenv("RANKBOARD_LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	logFormat := os.Getenv("RANKBOARD_LOG_FORMAT")
	if logFormat == "" {
		logFormat = "text"
	}

	return Server{
		Addr:         addr,
		DataPath:     dataPath,
		WorldGeoJSON: worldGeoJSON,
		LogLevel:     logLevel,
		LogFormat:    logFormat,
	}
}
