// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// validate checks that the final merged [StructuredConfig] can be used to
// start the server.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenSignKey == "" || cfg.App.TokenIssuer == "" || cfg.App.TokenDuration <= 0 {
		return ErrInvalidAppConfigs
	}
	if (cfg.App.AdminLogin == "") != (cfg.App.AdminPassword == "") {
		return fmt.Errorf("%w: admin login and password go together", ErrInvalidAppConfigs)
	}

	switch cfg.Storage.DB.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("%w: unknown driver %q", ErrInvalidStorageConfigs, cfg.Storage.DB.Driver)
	}
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 {
		return ErrInvalidServerConfigs
	}

	if cfg.Broker.URL != "" && cfg.Broker.Subject == "" {
		return ErrInvalidBrokerConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Address == "" || cfg.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Transport != TransportHTTP && cfg.Transport != TransportGRPC {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Endpoint == "" {
		return ErrNoEndpoint
	}

	return nil
}
