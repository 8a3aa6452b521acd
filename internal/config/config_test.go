package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FlatBartender/bis-solver/internal/errors"
	"github.com/FlatBartender/bis-solver/internal/evaluator"
	"github.com/FlatBartender/bis-solver/internal/gear"
	"github.com/FlatBartender/bis-solver/internal/timespan"
)

const sample = `
catalog: items.json
solver:
  kind: rolling
  workers: 4
  rolling:
    rolling_k: 64
evaluator:
  kind: timeline
  timeline:
    kill_time: 480
    downtime:
      - begin: 120
        end: 150.5
    party:
      brd: true
      drg: false
log:
  level: debug
redis:
  addr: localhost:6379
  ttl: 24h
`

func TestParseYAML(t *testing.T) {
	cfg, err := Parse(strings.NewReader(sample), "yaml")
	require.NoError(t, err)

	assert.Equal(t, "items.json", cfg.Catalog)
	assert.Equal(t, "rolling", cfg.Solver.Kind)
	assert.Equal(t, 4, cfg.Solver.Workers)
	assert.Equal(t, 64, cfg.Solver.Rolling.RollingK)
	assert.Equal(t, 1000, cfg.Solver.Split.KStage1, "untouched keys keep their default")

	tl := cfg.Evaluator.Timeline
	assert.Equal(t, 480.0, tl.KillTime)
	assert.Equal(t, []timespan.Timespan{{Begin: 120, End: 150.5}}, tl.Downtime)
	assert.True(t, tl.Party.BRD)
	assert.False(t, tl.Party.DRG)
	assert.True(t, tl.Party.AST)
	assert.Equal(t, evaluator.DefaultTimelineConfig().MindBonus, tl.MindBonus)

	assert.Equal(t, gear.SageBase, cfg.Base)
	assert.Equal(t, gear.Level90(), cfg.Formulas)
	assert.Equal(t, "debug", string(cfg.Log.Level))
	assert.Equal(t, 24*time.Hour, cfg.Redis.TTL)
}

func TestParseJSON(t *testing.T) {
	cfg, err := Parse(strings.NewReader(`{"evaluator": {"kind": "infinite_dummy"}, "base": {"mind": 500}}`), "json")
	require.NoError(t, err)
	assert.Equal(t, "infinite_dummy", cfg.Evaluator.Kind)
	assert.Equal(t, uint32(500), cfg.Base.Mind)
	assert.Equal(t, gear.SageBase.Critical, cfg.Base.Critical)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("BIS_SOLVER_KIND", "rolling")
	t.Setenv("BIS_EVALUATOR_TIMELINE_KILL_TIME", "300")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "rolling", cfg.Solver.Kind)
	assert.Equal(t, 300.0, cfg.Evaluator.Timeline.KillTime)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bis.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "rolling", cfg.Solver.Kind)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		field string
	}{
		{"solver kind", `{"solver": {"kind": "greedy"}}`, "Config.Solver.Kind: oneof"},
		{"evaluator kind", `{"evaluator": {"kind": "dummy"}}`, "Config.Evaluator.Kind: oneof"},
		{"beam width", `{"solver": {"rolling": {"rolling_k": 0}}}`, "Config.Solver.Rolling.RollingK: min"},
		{"kill time", `{"evaluator": {"timeline": {"kill_time": 0}}}`, "Config.Evaluator.Timeline.KillTime: gt"},
		{"mind bonus", `{"evaluator": {"timeline": {"mind_bonus": 1.5}}}`, "Config.Evaluator.Timeline.MindBonus: lte"},
		{"downtime", `{"evaluator": {"timeline": {"downtime": [{"begin": 30, "end": 10}]}}}`, "Config.Evaluator.Timeline.Downtime[0].End: gtfield"},
		{"log level", `{"log": {"level": "loud"}}`, "Config.Log.Level: oneof"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.doc), "json")
			require.Error(t, err)
			assert.True(t, errors.IsInvalidArgument(err))
			assert.Contains(t, errors.GetMeta(err)["fields"], tt.field)
		})
	}
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	assert.NoError(t, Validate(&cfg))
}
