package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/artuross/funscript/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFlags struct {
	strings map[string]string
	ints    map[string]int
	bools   map[string]bool
}

func (f fakeFlags) String(name string) string { return f.strings[name] }
func (f fakeFlags) Int(name string) int       { return f.ints[name] }
func (f fakeFlags) Bool(name string) bool     { return f.bools[name] }

func (f fakeFlags) IsSet(name string) bool {
	_, isString := f.strings[name]
	_, isInt := f.ints[name]
	_, isBool := f.bools[name]

	return isString || isInt || isBool
}

func env(values map[string]string) func(string) string {
	return func(name string) string {
		return values[name]
	}
}

func writeFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "funscript.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestRead(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := config.Read(fakeFlags{}, env(nil))
		require.NoError(t, err)

		assert.Equal(t, &config.Config{LogLevel: "warn", MaxCallDepth: 2048}, cfg)
		assert.Equal(t, zerolog.WarnLevel, cfg.Level())
	})

	t.Run("file, env and flags in order", func(t *testing.T) {
		path := writeFile(t, "log_level: info\nmax_call_depth: 100\ntrace: true\nhistory_file: /tmp/from-file\n")

		flags := fakeFlags{
			strings: map[string]string{config.FlagConfig: path, config.FlagLogLevel: "error"},
			bools:   map[string]bool{config.FlagCatchRuntimeFaults: true},
		}

		cfg, err := config.Read(flags, env(map[string]string{
			config.EnvLogLevel:     "debug",
			config.EnvMaxCallDepth: "300",
		}))
		require.NoError(t, err)

		assert.Equal(t, &config.Config{
			LogLevel:           "error",
			MaxCallDepth:       300,
			CatchRuntimeFaults: true,
			Trace:              true,
			HistoryFile:        "/tmp/from-file",
		}, cfg)
	})

	t.Run("config path from env", func(t *testing.T) {
		path := writeFile(t, "catch_runtime_faults: true\n")

		cfg, err := config.Read(fakeFlags{}, env(map[string]string{config.EnvConfig: path}))
		require.NoError(t, err)
		assert.True(t, cfg.CatchRuntimeFaults)
	})

	t.Run("empty file", func(t *testing.T) {
		path := writeFile(t, "")

		cfg, err := config.Read(fakeFlags{strings: map[string]string{config.FlagConfig: path}}, env(nil))
		require.NoError(t, err)
		assert.Equal(t, 2048, cfg.MaxCallDepth)
	})

	t.Run("invalid", func(t *testing.T) {
		type testCase struct {
			name  string
			flags fakeFlags
			env   map[string]string
			file  string
		}

		testCases := []testCase{
			{name: "log level flag", flags: fakeFlags{strings: map[string]string{config.FlagLogLevel: "loud"}}},
			{name: "max call depth flag", flags: fakeFlags{ints: map[string]int{config.FlagMaxCallDepth: 0}}},
			{name: "max call depth env", env: map[string]string{config.EnvMaxCallDepth: "many"}},
			{name: "trace env", env: map[string]string{config.EnvTrace: "maybe"}},
			{name: "catch env", env: map[string]string{config.EnvCatchRuntimeFaults: "sometimes"}},
			{name: "unknown file field", file: "colour: blue\n"},
			{name: "malformed file", file: "max_call_depth: [\n"},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				flags := tc.flags
				if tc.file != "" {
					if flags.strings == nil {
						flags.strings = map[string]string{}
					}

					flags.strings[config.FlagConfig] = writeFile(t, tc.file)
				}

				_, err := config.Read(flags, env(tc.env))
				require.ErrorIs(t, err, config.ErrInvalidConfig)
			})
		}
	})

	t.Run("missing file", func(t *testing.T) {
		flags := fakeFlags{strings: map[string]string{config.FlagConfig: filepath.Join(t.TempDir(), "nope.yaml")}}

		_, err := config.Read(flags, env(nil))
		require.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestPrint(t *testing.T) {
	var out bytes.Buffer

	config.Print(&out, &config.Config{LogLevel: "info", MaxCallDepth: 10, Trace: true, HistoryFile: "h"})

	expected := "Running with config:\n" +
		"  Log Level: info\n" +
		"  Max Call Depth: 10\n" +
		"  Catch Runtime Faults: false\n" +
		"  Trace: true\n" +
		"  History File: h\n"

	assert.Equal(t, expected, out.String())
}
