package cli

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/leadtime/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerConfig_DefaultsWithoutConfig(t *testing.T) {
	cfg := serverConfig(nil)
	assert.Equal(t, "localhost:4001", cfg.Address)
	assert.Equal(t, 4*time.Second, cfg.Timeout)

	custom := &config.Config{HTTPServer: config.HTTPServer{Address: ":9000"}}
	assert.Equal(t, ":9000", serverConfig(custom).Address)
}

func TestRunServer_StopsOnCancel(t *testing.T) {
	app := testApp(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- runServer(ctx, app, config.HTTPServer{
			Address:     "127.0.0.1:0",
			Timeout:     time.Second,
			IdleTimeout: time.Second,
		})
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
