package server

import (
	"sync"

	"github.com/nats-io/nats.go"

	"github.com/MKhiriev/go-api-dispatch/internal/config"
	myNATS "github.com/MKhiriev/go-api-dispatch/internal/handler/nats"
	"github.com/MKhiriev/go-api-dispatch/internal/logger"
)

// natsServer keeps a queue subscription alive until Shutdown drains it.
type natsServer struct {
	handler *myNATS.Handler
	conn    *nats.Conn

	done     chan struct{}
	stopOnce sync.Once

	logger *logger.Logger
}

func newNATSServer(handler *myNATS.Handler, cfg config.Broker, logger *logger.Logger) (*natsServer, error) {
	conn, err := myNATS.Connect(cfg, logger)
	if err != nil {
		return nil, err
	}

	return &natsServer{
		handler: handler,
		conn:    conn,
		done:    make(chan struct{}),
		logger:  logger,
	}, nil
}

func (n *natsServer) RunServer() {
	if _, err := n.handler.Subscribe(n.conn); err != nil {
		n.logger.Err(err).Msg("NATS server Subscribe")
		return
	}
	<-n.done
}

// Shutdown lets in-flight requests finish, then closes the connection.
func (n *natsServer) Shutdown() {
	n.stopOnce.Do(func() {
		n.logger.Info().Msg("NATS server Shutdown")
		if err := n.conn.Drain(); err != nil {
			n.logger.Err(err).Msg("NATS server Drain")
			n.conn.Close()
		}
		close(n.done)
	})
}
