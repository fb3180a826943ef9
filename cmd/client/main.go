package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/MKhiriev/go-api-dispatch/internal/adapter"
	"github.com/MKhiriev/go-api-dispatch/internal/config"
	"github.com/MKhiriev/go-api-dispatch/internal/logger"
	"github.com/MKhiriev/go-api-dispatch/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

var errUnsupportedMethod = errors.New("unsupported method")

func main() {
	log := logger.NewCLILogger("go-api-dispatch-client")

	build := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	log.Debug().Any("build", build).Msg("client started")

	if err := run(context.Background(), os.Args[1:], os.Stdout, log); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		log.Fatal().Err(err).Msg("request failed")
	}
}

// run sends the request described by args and prints the envelope to out.
func run(ctx context.Context, args []string, out io.Writer, log *logger.Logger) error {
	cfg, err := config.GetClientConfig(args)
	if err != nil {
		return fmt.Errorf("error getting configs: %w", err)
	}

	var data models.Payload
	if cfg.Data != "" {
		if err = json.Unmarshal([]byte(cfg.Data), &data); err != nil {
			return fmt.Errorf("invalid -d payload: %w", err)
		}
	}

	client, err := newClient(*cfg, log)
	if err != nil {
		return err
	}
	defer client.Close()

	var resp *models.Response
	switch cfg.Method {
	case http.MethodGet:
		resp, err = client.Get(ctx, cfg.Endpoint, data)
	case http.MethodPost:
		resp, err = client.Post(ctx, cfg.Endpoint, data)
	default:
		return fmt.Errorf("%w: %s", errUnsupportedMethod, cfg.Method)
	}
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(resp)
}

func newClient(cfg config.ClientConfig, log *logger.Logger) (adapter.DispatchClient, error) {
	if cfg.Transport == config.TransportGRPC {
		return adapter.NewGRPCDispatchClient(cfg, log)
	}
	return adapter.NewHTTPDispatchClient(cfg, log)
}
