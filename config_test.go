package pivot_test

import (
	"os"
	"path/filepath"
	"pivot"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	cfg, err := pivot.ParseConfig(`
# analyzer options
analyzer.require_function_return = false
analyzer.strict_logical_operands = false
analyzer.allow_boolean_negation = true
analyzer.max_depth = 200
log.level = debug
`)
	require.NoError(t, err)
	assert.Equal(t, pivot.Config{
		RequireFunctionReturn: false,
		StrictLogicalOperands: false,
		AllowBooleanNegation:  true,
		MaxDepth:              200,
		LogLevel:              zerolog.DebugLevel,
	}, cfg)
}

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := pivot.ParseConfig("")
	require.NoError(t, err)
	assert.Equal(t, pivot.DefaultConfig(), cfg)
}

type maxDepthTest struct {
	value    string
	expected int
}

var maxDepthTests = []maxDepthTest{
	{"1", pivot.MIN_MAX_DEPTH},
	{"64", 64},
	{"10000000", pivot.MAX_MAX_DEPTH},
}

func TestParseConfigClampsMaxDepth(t *testing.T) {
	for _, test := range maxDepthTests {
		t.Logf("running test '%s'", test.value)
		cfg, err := pivot.ParseConfig("analyzer.max_depth = " + test.value)
		if assert.NoError(t, err) {
			assert.Equal(t, test.expected, cfg.MaxDepth)
		}
	}
}

var malformedConfigs = []string{
	"analyzer.unknown = true",
	"log.level = loud",
	"analyzer.require_function_return = ture",
	"analyzer.strict_logical_operands = yes please",
	"analyzer.allow_boolean_negation = ",
	"analyzer.max_depth = lots",
	"analyzer.max_depth = 12.5",
}

func TestParseConfigErrors(t *testing.T) {
	for _, text := range malformedConfigs {
		t.Logf("running test '%s'", text)
		_, err := pivot.ParseConfig(text)
		assert.Error(t, err)
	}
	_, err := pivot.ParseConfig("analyzer.require_function_return = ture\nanalyzer.max_depth = lots\n")
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), pivot.REQUIRE_FUNCTION_RETURN_KEY)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pivot.properties")
	require.NoError(t, os.WriteFile(path, []byte("analyzer.allow_boolean_negation = true\n"), 0644))
	cfg, err := pivot.LoadConfig(path)
	require.NoError(t, err)
	assert.True(t, cfg.AllowBooleanNegation)
	assert.True(t, cfg.RequireFunctionReturn)

	_, err = pivot.LoadConfig(filepath.Join(t.TempDir(), "missing.properties"))
	assert.Error(t, err)
}
