package main

import (
	"context"
	"log/slog"
	"testing"

	"github.com/alexanderramin/leadtime/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestSetupLogger_Levels(t *testing.T) {
	ctx := context.Background()

	local := setupLogger(config.EnvLocal, "warn")
	assert.IsType(t, &slog.TextHandler{}, local.Handler())
	assert.False(t, local.Enabled(ctx, slog.LevelInfo))
	assert.True(t, local.Enabled(ctx, slog.LevelWarn))

	dev := setupLogger(config.EnvDev, "error")
	assert.IsType(t, &slog.JSONHandler{}, dev.Handler())
	assert.True(t, dev.Enabled(ctx, slog.LevelDebug))

	prod := setupLogger(config.EnvProd, "bogus")
	assert.IsType(t, &slog.JSONHandler{}, prod.Handler())
	assert.True(t, prod.Enabled(ctx, slog.LevelInfo))
	assert.False(t, prod.Enabled(ctx, slog.LevelDebug))
}
