package config

import "time"

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Client transports.
const (
	TransportHTTP = "http"
	TransportGRPC = "grpc"
)

// defaultConfig returns the values used for every field no source sets.
func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:   "go-api-dispatch",
			TokenDuration: time.Hour,
			Version:       "N/A",
			LogLevel:      "debug",
		},
		Storage: Storage{
			DB: DB{
				Driver: DriverSQLite,
				DSN:    "file:dispatch.db?_foreign_keys=on",
			},
		},
		Server: Server{
			HTTPAddress:    "localhost:8080",
			RequestTimeout: 30 * time.Second,
		},
		Broker: Broker{
			Subject: "dispatch.requests",
			Queue:   "dispatch",
			Name:    "go-api-dispatch",
		},
	}
}
