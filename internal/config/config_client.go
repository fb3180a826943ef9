package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"time"

	"dario.cat/mergo"
)

// ClientConfig configures the command-line client.
type ClientConfig struct {
	// Address is the "host:port" of the dispatch server transport selected
	// by Transport.
	// Env: ADAPTER_ADDRESS
	Address string `env:"ADDRESS"`

	// Transport is TransportHTTP or TransportGRPC.
	// Env: ADAPTER_TRANSPORT
	Transport string `env:"TRANSPORT"`

	// RequestTimeout bounds a single call to the server.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// Token is sent with every request.
	// Env: ADAPTER_TOKEN
	Token string `env:"TOKEN"`

	// HashKey signs request bodies with HashSHA256 when non-empty.
	// Env: ADAPTER_HASH_KEY
	HashKey string `env:"HASH_KEY"`

	// Endpoint, Method and Data describe the request to send. They are
	// read from flags only.
	Endpoint string
	Method   string
	Data     string
}

// GetClientConfig builds and validates the client configuration from args
// (without the program name) and ADAPTER_* environment variables. Flags win
// over the environment.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-e endpoint name
//	-m method (GET or POST, default GET)
//	-t token
//	-d JSON payload
//	-timeout request timeout (e.g., "5s")
//	-hash-key request signing key
//	-transport http or grpc (default http)
func GetClientConfig(args []string) (*ClientConfig, error) {
	flagsCfg, err := parseClientFlags(args)
	if err != nil {
		return nil, err
	}

	envCfg := &ClientConfig{}
	if err := parseEnvWithPrefix(envCfg, "ADAPTER_"); err != nil {
		return nil, err
	}

	cfg := new(ClientConfig)
	for _, src := range []*ClientConfig{flagsCfg, envCfg, defaultClientConfig()} {
		if err := mergo.Merge(cfg, src); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	return cfg, cfg.validate()
}

func defaultClientConfig() *ClientConfig {
	return &ClientConfig{
		Address:        "localhost:8080",
		Transport:      TransportHTTP,
		RequestTimeout: 10 * time.Second,
		Method:         http.MethodGet,
	}
}

func parseClientFlags(args []string) (*ClientConfig, error) {
	var address NetAddress
	cfg := &ClientConfig{}

	fs := flag.NewFlagSet("client", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.Var(&address, "a", "Server address host:port")
	fs.StringVar(&cfg.Endpoint, "e", "", "Endpoint name")
	fs.StringVar(&cfg.Method, "m", "", "Method (GET or POST)")
	fs.StringVar(&cfg.Token, "t", "", "Token")
	fs.StringVar(&cfg.Data, "d", "", "JSON payload")
	fs.DurationVar(&cfg.RequestTimeout, "timeout", 0, "Request timeout (e.g., 5s)")
	fs.StringVar(&cfg.HashKey, "hash-key", "", "Request signing key")
	fs.StringVar(&cfg.Transport, "transport", "", "Transport (http or grpc)")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	cfg.Address = address.String()
	return cfg, nil
}
