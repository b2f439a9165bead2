package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

func TestRun(t *testing.T) {
	test := []struct {
		name   string
		cfg    func(c *Config)
		output string
		files  []string
	}{
		{
			name: "kmeans png",
			cfg: func(c *Config) {
				c.Samples = 200
				c.Clusters = 3
			},
			output: "cluster 2:",
			files:  []string{"final.png"},
		},
		{
			name: "divisive html every step",
			cfg: func(c *Config) {
				c.Algorithm = AlgoDivisive
				c.Samples = 150
				c.Format = "html"
				c.EveryStep = true
			},
			output: "cluster 1:",
			files:  []string{"final.html", "step-001.html"},
		},
		{
			name: "perceptron",
			cfg: func(c *Config) {
				c.Algorithm = AlgoPerceptron
				c.Samples = 5
				c.MaxIterations = 50
			},
			output: "X",
			files:  []string{"final.png"},
		},
	}
	for _, tt := range test {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Seed = 1
			cfg.Width, cfg.Height = 200, 150
			cfg.Out = t.TempDir()
			tt.cfg(&cfg)
			require.NoError(t, cfg.Validate())

			var stdout bytes.Buffer
			require.NoError(t, run(context.Background(), cfg, zaptest.NewLogger(t, zaptest.Level(zap.WarnLevel)), &stdout))
			assert.Contains(t, stdout.String(), "after")
			assert.Contains(t, stdout.String(), tt.output)
			for _, name := range tt.files {
				info, err := os.Stat(filepath.Join(cfg.Out, name))
				require.NoError(t, err, name)
				assert.Greater(t, info.Size(), int64(0))
			}
		})
	}
}

func TestRunCountFallback(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	cfg := DefaultConfig()
	cfg.Seed = 1
	cfg.Samples = 0
	cfg.Clusters = -2

	var stdout bytes.Buffer
	require.NoError(t, run(context.Background(), cfg, zap.New(core), &stdout))
	assert.Equal(t, 2, logs.FilterMessage("count fallback").Len())
	assert.Contains(t, stdout.String(), "cluster 0: ")
	assert.Contains(t, stdout.String(), "1 samples")
}

func TestRunCanceled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 1
	cfg.Out = t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var stdout bytes.Buffer
	require.NoError(t, run(ctx, cfg, zap.NewNop(), &stdout))
	assert.Contains(t, stdout.String(), "canceled after 0 iterations")
	_, err := os.Stat(filepath.Join(cfg.Out, "final.png"))
	assert.NoError(t, err)
}
