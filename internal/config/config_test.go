package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finhealth/internal/model"
)

func TestLoadConfigFrom_MissingFileUsesDefaults(t *testing.T) {
	cfg, info, err := LoadConfigFrom(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)
	assert.False(t, info.PortSpecified)
	assert.Equal(t, DefaultConfig().Server.Port, cfg.Server.Port)
	assert.Equal(t, 0.196, cfg.Scoring.NetProfitMargin)
}

func TestLoadConfigFrom_TomlAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[server]
port = 9000

[scoring]
net_profit_margin = 0.35

[extraction]
sheet = "P&L"

[extraction.labels]
total_income = ["Turnover", "Total Income"]
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))
	t.Setenv("FINHEALTH_LOG_LEVEL", "debug")

	cfg, info, err := LoadConfigFrom(path)
	require.NoError(t, err)
	assert.True(t, info.PortSpecified)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, 0.35, cfg.Scoring.NetProfitMargin)
	assert.Equal(t, 0.202, cfg.Scoring.ExpenseRatio)
	assert.Equal(t, "P&L", cfg.Extraction.Sheet)
	assert.Equal(t, "debug", cfg.Log.Level)

	overrides := cfg.Extraction.Labels.Overrides()
	assert.Equal(t, []string{"Turnover", "Total Income"}, overrides[model.FieldTotalIncome])
	_, ok := overrides[model.FieldGrossProfit]
	assert.False(t, ok)
}

func TestLoadConfigFrom_InvalidToml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[server\nport = "), 0644))

	_, _, err := LoadConfigFrom(path)
	assert.Error(t, err)
}

func TestEnsureDataDir_Absolute(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Data.DataDir = filepath.Join(t.TempDir(), "data")

	dir, err := EnsureDataDir(cfg)
	require.NoError(t, err)
	assert.Equal(t, cfg.Data.DataDir, dir)
	assert.DirExists(t, dir)
}

func TestScoringConfigWeights(t *testing.T) {
	w := DefaultConfig().Scoring.Weights()
	assert.Equal(t, 0.196, w.NetProfitMargin)
	assert.Equal(t, 0.202, w.ExpenseRatio)
	assert.Equal(t, 0.198, w.GrossProfitMargin)
	assert.Equal(t, 0.202, w.FinanceCostRatio)
	assert.Equal(t, 0.202, w.RevenueGrowthRate)
}
