// Package config loads solver settings from a YAML or JSON file with BIS_
// environment overrides.
package config

import (
	"io"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/FlatBartender/bis-solver/internal/errors"
	"github.com/FlatBartender/bis-solver/internal/evaluator"
	"github.com/FlatBartender/bis-solver/internal/gear"
	"github.com/FlatBartender/bis-solver/internal/logger"
	"github.com/FlatBartender/bis-solver/internal/solver"
)

const EnvPrefix = "BIS"

type Config struct {
	// Catalog is the item catalog path. The CLI flag wins over it.
	Catalog   string          `mapstructure:"catalog" json:"catalog"`
	Solver    SolverConfig    `mapstructure:"solver" json:"solver"`
	Evaluator EvaluatorConfig `mapstructure:"evaluator" json:"evaluator"`
	Base      gear.Stats      `mapstructure:"base" json:"base"`
	Formulas  gear.Formulas   `mapstructure:"formulas" json:"formulas"`
	Log       logger.Config   `mapstructure:"log" json:"log"`
	Redis     RedisConfig     `mapstructure:"redis" json:"redis"`
	Metrics   MetricsConfig   `mapstructure:"metrics" json:"metrics"`
}

type SolverConfig struct {
	Kind string `mapstructure:"kind" json:"kind" validate:"oneof=split rolling"`
	// Workers bounds the evaluation goroutines, 0 means one per CPU.
	Workers int                  `mapstructure:"workers" json:"workers" validate:"gte=0"`
	Split   solver.SplitConfig   `mapstructure:"split" json:"split"`
	Rolling solver.RollingConfig `mapstructure:"rolling" json:"rolling"`
}

type EvaluatorConfig struct {
	Kind     string                   `mapstructure:"kind" json:"kind" validate:"oneof=infinite_dummy timeline"`
	Timeline evaluator.TimelineConfig `mapstructure:"timeline" json:"timeline"`
}

// RedisConfig enables the results store when Addr is set.
type RedisConfig struct {
	Addr     string        `mapstructure:"addr" json:"addr"`
	Password string        `mapstructure:"password" json:"-"`
	DB       int           `mapstructure:"db" json:"db" validate:"gte=0"`
	TTL      time.Duration `mapstructure:"ttl" json:"ttl" validate:"gte=0"`
}

// MetricsConfig serves /metrics when Addr is set.
type MetricsConfig struct {
	Addr string `mapstructure:"addr" json:"addr"`
}

func Default() Config {
	return Config{
		Solver: SolverConfig{
			Kind:    "split",
			Split:   solver.DefaultSplitConfig(),
			Rolling: solver.DefaultRollingConfig(),
		},
		Evaluator: EvaluatorConfig{
			Kind:     "timeline",
			Timeline: evaluator.DefaultTimelineConfig(),
		},
		Base:     gear.SageBase,
		Formulas: gear.Level90(),
		Log:      logger.DefaultConfig(),
		Redis:    RedisConfig{TTL: 7 * 24 * time.Hour},
	}
}

// Load reads path, or only defaults and environment when path is empty. The
// format follows the file extension.
func Load(path string) (*Config, error) {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "read config "+path)
		}
	}
	return decode(v)
}

// Parse reads a config document of the given format (yaml or json).
func Parse(r io.Reader, format string) (*Config, error) {
	v := newViper()
	v.SetConfigType(format)
	if err := v.ReadConfig(r); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "parse config")
	}
	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, Default())
	return v
}

// setDefaults registers every scalar key so AutomaticEnv can override it.
func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("catalog", d.Catalog)

	v.SetDefault("solver.kind", d.Solver.Kind)
	v.SetDefault("solver.workers", d.Solver.Workers)
	v.SetDefault("solver.split.k_stage_1", d.Solver.Split.KStage1)
	v.SetDefault("solver.split.k_stage_2", d.Solver.Split.KStage2)
	v.SetDefault("solver.rolling.rolling_k", d.Solver.Rolling.RollingK)

	t := d.Evaluator.Timeline
	v.SetDefault("evaluator.kind", d.Evaluator.Kind)
	v.SetDefault("evaluator.timeline.kill_time", t.KillTime)
	v.SetDefault("evaluator.timeline.mind_bonus", t.MindBonus)
	v.SetDefault("evaluator.timeline.downtime", t.Downtime)
	v.SetDefault("evaluator.timeline.potions", t.Potions)
	v.SetDefault("evaluator.timeline.potion_mind", t.PotionMind)
	for job, on := range map[string]bool{
		"brd": t.Party.BRD, "dnc": t.Party.DNC, "smn": t.Party.SMN, "rdm": t.Party.RDM,
		"mnk": t.Party.MNK, "drg": t.Party.DRG, "rpr": t.Party.RPR, "nin": t.Party.NIN,
		"sch": t.Party.SCH, "ast": t.Party.AST,
	} {
		v.SetDefault("evaluator.timeline.party."+job, on)
	}

	b := d.Base
	v.SetDefault("base.weapon_damage", b.WeaponDamage)
	v.SetDefault("base.mind", b.Mind)
	v.SetDefault("base.vitality", b.Vitality)
	v.SetDefault("base.piety", b.Piety)
	v.SetDefault("base.direct_hit", b.DirectHit)
	v.SetDefault("base.critical", b.Critical)
	v.SetDefault("base.determination", b.Determination)
	v.SetDefault("base.spell_speed", b.SpellSpeed)

	f := d.Formulas
	v.SetDefault("formulas.main", f.Main)
	v.SetDefault("formulas.sub", f.Sub)
	v.SetDefault("formulas.div", f.Div)
	v.SetDefault("formulas.job_attack", f.JobAttack)
	v.SetDefault("formulas.attack_slope", f.AttackSlope)
	v.SetDefault("formulas.trait_bonus", f.TraitBonus)
	v.SetDefault("formulas.weapon_delay", f.WeaponDelay)
	v.SetDefault("formulas.physical_attack", f.PhysicalAttack)

	v.SetDefault("log.level", string(d.Log.Level))
	v.SetDefault("log.format", string(d.Log.Format))

	v.SetDefault("redis.addr", d.Redis.Addr)
	v.SetDefault("redis.password", d.Redis.Password)
	v.SetDefault("redis.db", d.Redis.DB)
	v.SetDefault("redis.ttl", d.Redis.TTL)

	v.SetDefault("metrics.addr", d.Metrics.Addr)
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "decode config")
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the struct tags of every section.
func Validate(cfg *Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	out := errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid config")
	if verrs, ok := err.(validator.ValidationErrors); ok {
		fields := make([]string, len(verrs))
		for i, fe := range verrs {
			fields[i] = fe.Namespace() + ": " + fe.Tag()
		}
		out = out.WithMeta("fields", fields)
	}
	return out
}
