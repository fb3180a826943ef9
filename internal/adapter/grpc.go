package adapter

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/MKhiriev/go-api-dispatch/internal/config"
	myGRPC "github.com/MKhiriev/go-api-dispatch/internal/handler/grpc"
	"github.com/MKhiriev/go-api-dispatch/internal/logger"
	"github.com/MKhiriev/go-api-dispatch/models"
)

type grpcDispatchClient struct {
	conn    *grpc.ClientConn
	client  myGRPC.DispatcherClient
	timeout time.Duration

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewGRPCDispatchClient constructs a gRPC implementation of
// [DispatchClient] for the server at cfg.Address. The connection is
// established lazily on the first call.
func NewGRPCDispatchClient(cfg config.ClientConfig, logger *logger.Logger, opts ...grpc.DialOption) (DispatchClient, error) {
	address := strings.TrimSpace(cfg.Address)
	if address == "" {
		return nil, fmt.Errorf("%w: empty address", ErrInvalidAddress)
	}

	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(address, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}

	c := &grpcDispatchClient{
		conn:    conn,
		client:  myGRPC.NewDispatcherClient(conn),
		timeout: cfg.RequestTimeout,
		logger:  logger,
	}
	c.SetToken(cfg.Token)

	return c, nil
}

// SetToken implements [DispatchClient].
func (g *grpcDispatchClient) SetToken(token string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.token = strings.TrimSpace(token)
}

// Token implements [DispatchClient].
func (g *grpcDispatchClient) Token() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.token
}

// Get implements [DispatchClient].
func (g *grpcDispatchClient) Get(ctx context.Context, endpoint string, data models.Payload) (*models.Response, error) {
	return g.handle(ctx, http.MethodGet, endpoint, data)
}

// Post implements [DispatchClient].
func (g *grpcDispatchClient) Post(ctx context.Context, endpoint string, data models.Payload) (*models.Response, error) {
	return g.handle(ctx, http.MethodPost, endpoint, data)
}

// Close implements [DispatchClient].
func (g *grpcDispatchClient) Close() error {
	return g.conn.Close()
}

func (g *grpcDispatchClient) handle(ctx context.Context, method, endpoint string, data models.Payload) (*models.Response, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	resp, err := g.client.Handle(ctx, &models.Request{
		Method:   method,
		Endpoint: endpoint,
		Token:    g.Token(),
		Data:     data,
	})
	if err != nil {
		g.logger.Err(err).Str("func", "*grpcDispatchClient.handle").Msg("gRPC call failed")
		return nil, fmt.Errorf("grpc request: %w", err)
	}

	return resp, nil
}
