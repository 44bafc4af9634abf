package server

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fekuna/storefront-service/config"
	"github.com/fekuna/storefront-service/pkg/logger"
)

func TestServerStopsOnCancel(t *testing.T) {
	s := New(&config.ServerConfig{
		HTTPAddr:        "127.0.0.1:0",
		ShutdownTimeout: time.Second,
	}, http.NotFoundHandler(), logger.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- s.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServerReportsListenFailure(t *testing.T) {
	s := New(&config.ServerConfig{
		HTTPAddr:        "256.0.0.1:bad",
		ShutdownTimeout: time.Second,
	}, http.NotFoundHandler(), logger.NewNop())

	err := s.Run(context.Background())
	assert.ErrorContains(t, err, "failed to start server")
}
