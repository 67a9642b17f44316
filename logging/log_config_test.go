package logging

import (
	"strings"
	"testing"

	"go.viam.com/test"
)

func verifySetLevels(registry *Registry, expectedMatches map[string]string) bool {
	for name, level := range expectedMatches {
		logger, ok := registry.loggerNamed(name)
		if !ok || !strings.EqualFold(level, logger.GetLevel().String()) {
			return false
		}
	}
	return true
}

func createTestRegistry(loggerNames []string) *Registry {
	registry := newRegistry()
	for _, name := range loggerNames {
		registry.getOrRegister(name, NewBlankLogger(name))
	}
	return registry
}

func TestValidatePattern(t *testing.T) {
	t.Parallel()

	type testCfg struct {
		pattern string
		isValid bool
	}

	tests := []testCfg{
		{"imx500.decoder", true},
		{"imx500.decoder.*", true},
		{"imx500.*.tensor", true},
		{"imx500.*.*", true},
		{"*.decoder", true},
		{"*", true},
		{"mobilenet-ssd", true},

		{"imx500..decoder", false},
		{"imx500.decoder.", false},
		{".imx500.decoder", false},
		{"imx500.decoder.**", false},
		{"imx500.**.decoder", false},
		{"_.imx500.decoder", false},
		{"-.imx500", false},
		{"imx500.-", false},
		{"imx500:decoder", false},
	}

	for _, tc := range tests {
		t.Run(tc.pattern, func(t *testing.T) {
			t.Parallel()
			test.That(t, validatePattern(tc.pattern), test.ShouldEqual, tc.isValid)
		})
	}
}

func TestUpdateLoggerRegistry(t *testing.T) {
	type testCfg struct {
		loggerConfig    []LoggerPatternConfig
		loggerNames     []string
		expectedMatches map[string]string
	}

	tests := []testCfg{
		{
			loggerConfig: []LoggerPatternConfig{{Pattern: "imx500.decoder", Level: "WARN"}},
			loggerNames:  []string{"imx500.decoder", "imx500.decoder.tensor", "imx500.ssd"},
			expectedMatches: map[string]string{
				"imx500.decoder":        "WARN",
				"imx500.decoder.tensor": "INFO",
				"imx500.ssd":            "INFO",
			},
		},
		{
			loggerConfig: []LoggerPatternConfig{{Pattern: "imx500.*", Level: "DEBUG"}},
			loggerNames:  []string{"imx500.decoder", "imx500.decoder.tensor", "cli"},
			expectedMatches: map[string]string{
				"imx500.decoder":        "DEBUG",
				"imx500.decoder.tensor": "DEBUG",
				"cli":                   "INFO",
			},
		},
		{
			loggerConfig: []LoggerPatternConfig{{Pattern: "imx500.*.tensor", Level: "ERROR"}},
			loggerNames:  []string{"imx500.decoder.tensor", "imx500.decoder.header"},
			expectedMatches: map[string]string{
				"imx500.decoder.tensor": "ERROR",
				"imx500.decoder.header": "INFO",
			},
		},
		{
			// Later patterns win.
			loggerConfig: []LoggerPatternConfig{
				{Pattern: "imx500.*", Level: "DEBUG"},
				{Pattern: "imx500.decoder", Level: "WARN"},
			},
			loggerNames:     []string{"imx500.decoder"},
			expectedMatches: map[string]string{"imx500.decoder": "WARN"},
		},
		{
			loggerConfig:    []LoggerPatternConfig{{Pattern: "_.*.decoder", Level: "DEBUG"}},
			loggerNames:     []string{"imx500.decoder"},
			expectedMatches: map[string]string{"imx500.decoder": "INFO"},
		},
		{
			loggerConfig:    []LoggerPatternConfig{{Pattern: "a.b", Level: "DEBUG"}},
			loggerNames:     []string{"a.b.c"},
			expectedMatches: map[string]string{"a.b.c": "INFO"},
		},
	}

	for _, tc := range tests {
		testRegistry := createTestRegistry(tc.loggerNames)

		err := testRegistry.UpdateConfig(tc.loggerConfig, NewBlankLogger("error-logger"))
		test.That(t, err, test.ShouldBeNil)
		test.That(t, verifySetLevels(testRegistry, tc.expectedMatches), test.ShouldBeTrue)
		test.That(t, testRegistry.getCurrentConfig(), test.ShouldResemble, tc.loggerConfig)
	}
}

func TestRegisterAfterConfig(t *testing.T) {
	registry := newRegistry()
	err := registry.UpdateConfig([]LoggerPatternConfig{{Pattern: "late.*", Level: "ERROR"}}, NewBlankLogger("err"))
	test.That(t, err, test.ShouldBeNil)

	logger := registry.getOrRegister("late.arrival", NewBlankLogger("late.arrival"))
	test.That(t, logger.GetLevel(), test.ShouldEqual, ERROR)

	err = registry.UpdateConfig([]LoggerPatternConfig{{Pattern: "late.arrival", Level: "verbose"}}, NewBlankLogger("err"))
	test.That(t, err, test.ShouldNotBeNil)
}
