package pivot

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cznic/mathutil"
	"github.com/magiconair/properties"
	"github.com/rs/zerolog"
)

const (
	REQUIRE_FUNCTION_RETURN_KEY = "analyzer.require_function_return"
	STRICT_LOGICAL_OPERANDS_KEY = "analyzer.strict_logical_operands"
	ALLOW_BOOLEAN_NEGATION_KEY  = "analyzer.allow_boolean_negation"
	MAX_DEPTH_KEY               = "analyzer.max_depth"
	LOG_LEVEL_KEY               = "log.level"

	DEFAULT_MAX_DEPTH = 1024
	MIN_MAX_DEPTH     = 16
	MAX_MAX_DEPTH     = 1 << 16
)

type Config struct {
	// RequireFunctionReturn rejects function bodies without any return.
	RequireFunctionReturn bool
	// StrictLogicalOperands makes and/or/&&/|| require bool operands.
	StrictLogicalOperands bool
	// AllowBooleanNegation lets unary - accept a bool operand.
	AllowBooleanNegation bool
	MaxDepth             int
	LogLevel             zerolog.Level
}

func DefaultConfig() Config {
	return Config{
		RequireFunctionReturn: true,
		StrictLogicalOperands: true,
		AllowBooleanNegation:  false,
		MaxDepth:              DEFAULT_MAX_DEPTH,
		LogLevel:              zerolog.InfoLevel,
	}
}

func LoadConfig(path string) (Config, error) {
	p, err := properties.LoadFile(path, properties.UTF8)
	if err != nil {
		return Config{}, err
	}
	return configFromProperties(p)
}

func ParseConfig(text string) (Config, error) {
	p, err := properties.LoadString(text)
	if err != nil {
		return Config{}, err
	}
	return configFromProperties(p)
}

var configKeys = map[string]struct{}{
	REQUIRE_FUNCTION_RETURN_KEY: {},
	STRICT_LOGICAL_OPERANDS_KEY: {},
	ALLOW_BOOLEAN_NEGATION_KEY:  {},
	MAX_DEPTH_KEY:               {},
	LOG_LEVEL_KEY:               {},
}

func configFromProperties(p *properties.Properties) (Config, error) {
	for _, key := range p.Keys() {
		if _, ok := configKeys[key]; !ok {
			return Config{}, fmt.Errorf("unknown configuration key: %s", key)
		}
	}
	cfg := DefaultConfig()
	for _, opt := range []struct {
		key string
		dst *bool
	}{
		{REQUIRE_FUNCTION_RETURN_KEY, &cfg.RequireFunctionReturn},
		{STRICT_LOGICAL_OPERANDS_KEY, &cfg.StrictLogicalOperands},
		{ALLOW_BOOLEAN_NEGATION_KEY, &cfg.AllowBooleanNegation},
	} {
		if err := parseBoolProperty(p, opt.key, opt.dst); err != nil {
			return Config{}, err
		}
	}
	if value, ok := p.Get(MAX_DEPTH_KEY); ok {
		depth, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", MAX_DEPTH_KEY, err)
		}
		cfg.MaxDepth = mathutil.Clamp(depth, MIN_MAX_DEPTH, MAX_MAX_DEPTH)
	}
	if level, ok := p.Get(LOG_LEVEL_KEY); ok {
		parsed, err := zerolog.ParseLevel(level)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", LOG_LEVEL_KEY, err)
		}
		cfg.LogLevel = parsed
	}
	return cfg, nil
}

// parseBoolProperty leaves dst untouched when key is absent.
func parseBoolProperty(p *properties.Properties, key string, dst *bool) error {
	value, ok := p.Get(key)
	if !ok {
		return nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = b
	return nil
}
