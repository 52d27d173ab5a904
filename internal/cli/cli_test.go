// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/convertxpert/internal/config"
	"github.com/jeranaias/convertxpert/internal/convert"
	"github.com/jeranaias/convertxpert/internal/history"
	"github.com/jeranaias/convertxpert/internal/units"
)

func newTestEnv(t *testing.T) (*Env, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	ForceColorsEnabled(false)
	var stdout, stderr bytes.Buffer
	return &Env{
		Stdin:  strings.NewReader(""),
		Stdout: &stdout,
		Stderr: &stderr,
		Config: config.Default(),
		Engine: convert.New(nil),
	}, &stdout, &stderr
}

// =============================================================================
// PARSE
// =============================================================================

func TestParse_Commands(t *testing.T) {
	tests := []struct {
		argv []string
		want Command
	}{
		{nil, CmdTUI},
		{[]string{"tui"}, CmdTUI},
		{[]string{"convert", "Length", "1", "Meter", "Foot"}, CmdConvert},
		{[]string{"c", "Length", "1", "Meter", "Foot"}, CmdConvert},
		{[]string{"units"}, CmdUnits},
		{[]string{"ls"}, CmdUnits},
		{[]string{"BATCH", "--input", "x.csv"}, CmdBatch},
		{[]string{"repl"}, CmdREPL},
		{[]string{"config", "show"}, CmdConfig},
		{[]string{"--version"}, CmdVersion},
		{[]string{"-h"}, CmdHelp},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.argv, " "), func(t *testing.T) {
			cmd, _, err := Parse(tt.argv)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cmd)
		})
	}
}

func TestParse_GlobalFlags(t *testing.T) {
	cmd, args, err := Parse([]string{"--json", "convert", "Temperature", "-40", "Celsius", "--config=/tmp/c.toml", "Fahrenheit", "--verbose"})
	require.NoError(t, err)

	assert.Equal(t, CmdConvert, cmd)
	assert.True(t, args.JSON)
	assert.True(t, args.Verbose)
	assert.Equal(t, "/tmp/c.toml", args.ConfigPath)
	assert.Equal(t, []string{"Temperature", "-40", "Celsius", "Fahrenheit"}, args.Raw)
}

func TestParse_UnknownCommand(t *testing.T) {
	_, _, err := Parse([]string{"convrt"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "did you mean 'convert'")
	assert.Equal(t, ExitUsageError, GetExitCode(err))
}

// =============================================================================
// ARG PARSER
// =============================================================================

func TestArgParser(t *testing.T) {
	p := NewArgParser([]string{"Temperature", "-40", "--format=json", "--link", "Celsius", "-o", "out.csv", "--", "--raw"}, "link")

	assert.Equal(t, "Temperature", p.Subcommand())
	assert.Equal(t, "-40", p.Positional(1))
	assert.Equal(t, "Celsius", p.Positional(2))
	assert.Equal(t, "--raw", p.Positional(3))
	assert.Equal(t, 4, p.PositionalCount())
	assert.Equal(t, "json", p.Flag("format"))
	assert.Equal(t, "out.csv", p.FlagAny("output", "o"))
	assert.True(t, p.BoolFlag("link"))
	assert.True(t, p.HasFlag("--format"))
	assert.False(t, p.HasFlag("missing"))
	assert.Equal(t, "csv", p.FlagOrDefault("missing", "csv"))
	assert.Equal(t, "", p.Positional(9))
}

func TestArgParser_BoolFlagDoesNotConsume(t *testing.T) {
	p := NewArgParser([]string{"--link", "Length"}, "link")
	assert.True(t, p.BoolFlag("link"))
	assert.Equal(t, "Length", p.Positional(0))

	q := NewArgParser([]string{"--category", "Length"})
	assert.Equal(t, "Length", q.Flag("category"))
	assert.Equal(t, 0, q.PositionalCount())
}

func TestParseValue(t *testing.T) {
	v, err := ParseValue(" 2.5e3 ")
	require.NoError(t, err)
	assert.Equal(t, 2500.0, v)

	v, err = ParseValue("-40")
	require.NoError(t, err)
	assert.Equal(t, -40.0, v)

	for _, bad := range []string{"", "abc", "1,5", "NaN", "Inf", "-inf"} {
		_, err := ParseValue(bad)
		assert.Error(t, err, bad)
		assert.True(t, IsValidationError(err), bad)
	}
}

// =============================================================================
// ERRORS, SUGGESTIONS, TERMINAL
// =============================================================================

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitUsageError, GetExitCode(NewValidationError("value", "x", "bad")))
	assert.Equal(t, ExitConfigError, GetExitCode(&ConfigError{Err: errors.New("boom")}))
	assert.Equal(t, ExitConfigError, GetExitCode(config.ValidateErrors{{Field: "f", Message: "m"}}))
	assert.Equal(t, ExitGeneralError, GetExitCode(units.ErrUnknownUnit))
	assert.Equal(t, ExitGeneralError, GetExitCode(NewCommandError("batch", "read input", os.ErrNotExist)))
}

func TestDisplayError(t *testing.T) {
	ForceColorsEnabled(false)
	var buf bytes.Buffer
	DisplayError(&buf, errors.New("no such unit"), false)
	assert.Equal(t, "Error: no such unit\n", buf.String())

	buf.Reset()
	DisplayError(&buf, errors.New("no such unit"), true)
	var resp JSONResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "no such unit", *resp.Error)
}

func TestSuggestCommand(t *testing.T) {
	assert.Equal(t, "convert", SuggestCommand("conver"))
	assert.Equal(t, "version", SuggestCommand("versoin"))
	assert.Equal(t, "repl", SuggestCommand("rpel"))
	assert.Equal(t, "", SuggestCommand("convert"))
	assert.Equal(t, "", SuggestCommand("x"))
	assert.Equal(t, "", SuggestCommand("zzzzzz"))
}

func TestDetectColors(t *testing.T) {
	env := func(vals map[string]string) func(string) string {
		return func(k string) string { return vals[k] }
	}
	yes := func() bool { return true }
	no := func() bool { return false }

	assert.True(t, detectColors(env(nil), yes))
	assert.False(t, detectColors(env(nil), no))
	assert.False(t, detectColors(env(map[string]string{"NO_COLOR": "1"}), yes))
	assert.True(t, detectColors(env(map[string]string{"FORCE_COLOR": "1"}), no))
}

func TestRequiresTTY(t *testing.T) {
	err := RequiresTTY("start the converter", func() bool { return false })
	var ttyErr *TTYRequiredError
	require.ErrorAs(t, err, &ttyErr)
	assert.Contains(t, err.Error(), "start the converter")
	assert.NoError(t, RequiresTTY("x", func() bool { return true }))
}

// =============================================================================
// CONVERT
// =============================================================================

func TestRunConvert(t *testing.T) {
	tests := []struct {
		raw  []string
		want string
	}{
		{[]string{"Length", "1", "Meter", "Kilometer"}, "1 Meter = 0.001 Kilometer\n"},
		{[]string{"length", "1", "meter", "FOOT"}, "1 Meter = 3.28084 Foot\n"},
		{[]string{"temperature", "-40", "celsius", "fahrenheit"}, "-40 Celsius = -40 Fahrenheit\n"},
		{[]string{"Data", "8", "Bit", "Byte"}, "8 Bit = 1 Byte\n"},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.raw, " "), func(t *testing.T) {
			env, stdout, _ := newTestEnv(t)
			require.NoError(t, env.RunConvert(Args{Raw: tt.raw}))
			assert.Equal(t, tt.want, stdout.String())
		})
	}
}

func TestRunConvert_JSON(t *testing.T) {
	env, stdout, _ := newTestEnv(t)
	require.NoError(t, env.RunConvert(Args{JSON: true, Raw: []string{"Length", "1", "Meter", "Kilometer"}}))

	var resp struct {
		Success bool        `json:"success"`
		Command string      `json:"command"`
		Data    ConvertData `json:"data"`
	}
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "convert", resp.Command)
	assert.Equal(t, "Length", resp.Data.Category)
	require.NotNil(t, resp.Data.Output)
	assert.InDelta(t, 0.001, *resp.Data.Output, 1e-12)
	assert.Equal(t, "0.001", resp.Data.Display)
}

func TestRunConvert_JSONOverflow(t *testing.T) {
	raw := []string{"Data", "1e308", "Megabyte", "Bit"}

	env, stdout, _ := newTestEnv(t)
	require.NoError(t, env.RunConvert(Args{Raw: raw}))
	assert.Equal(t, "1e+308 Megabyte = +Inf Bit\n", stdout.String())

	env, stdout, _ = newTestEnv(t)
	require.NoError(t, env.RunConvert(Args{JSON: true, Raw: raw}))

	var resp struct {
		Success bool           `json:"success"`
		Data    map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotContains(t, resp.Data, "output")
	assert.Equal(t, "+Inf", resp.Data["display"])
}

func TestRunConvert_Errors(t *testing.T) {
	env, stdout, _ := newTestEnv(t)

	err := env.RunConvert(Args{Raw: []string{"Length", "1", "Meter"}})
	assert.Equal(t, ExitUsageError, GetExitCode(err))

	err = env.RunConvert(Args{Raw: []string{"Length", "one", "Meter", "Foot"}})
	assert.Equal(t, ExitUsageError, GetExitCode(err))

	err = env.RunConvert(Args{Raw: []string{"Length", "1", "Metre", "Foot"}})
	require.ErrorIs(t, err, units.ErrUnknownUnit)
	assert.Contains(t, err.Error(), "did you mean 'Meter'")
	assert.Equal(t, ExitGeneralError, GetExitCode(err))

	err = env.RunConvert(Args{Raw: []string{"Lenght", "1", "Meter", "Foot"}})
	require.ErrorIs(t, err, units.ErrUnknownCategory)
	assert.Contains(t, err.Error(), "did you mean 'Length'")

	assert.Empty(t, stdout.String())
}

// =============================================================================
// UNITS
// =============================================================================

func TestRunUnits_All(t *testing.T) {
	env, stdout, _ := newTestEnv(t)
	require.NoError(t, env.RunUnits(Args{}))

	out := stdout.String()
	for _, want := range []string{"Basic", "Science", "Digital", "Weight/Mass", "Gallon (US)", "Meter per second", "Megabyte"} {
		assert.Contains(t, out, want)
	}
	assert.Less(t, strings.Index(out, "Basic"), strings.Index(out, "Science"))
}

func TestRunUnits_Category(t *testing.T) {
	env, stdout, _ := newTestEnv(t)
	require.NoError(t, env.RunUnits(Args{Raw: []string{"data"}}))

	out := stdout.String()
	assert.Contains(t, out, "Data (Digital)")
	assert.Contains(t, out, "Byte")
	assert.Contains(t, out, "0.125")

	stdout.Reset()
	require.NoError(t, env.RunUnits(Args{Raw: []string{"Temperature"}}))
	assert.Contains(t, stdout.String(), "Scale")
	assert.Contains(t, stdout.String(), "Kelvin")
}

func TestRunUnits_JSON(t *testing.T) {
	env, stdout, _ := newTestEnv(t)
	require.NoError(t, env.RunUnits(Args{JSON: true}))

	var resp struct {
		Data UnitsData `json:"data"`
	}
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &resp))
	require.Len(t, resp.Data.Groups, len(units.Groups()))

	seen := 0
	for _, g := range resp.Data.Groups {
		seen += len(g.Categories)
	}
	assert.Equal(t, len(units.Default().Categories()), seen)
}

// =============================================================================
// BATCH
// =============================================================================

const batchInput = `category,value,from,to
Length,1,Meter,Kilometer
Length,2,Meter,Parsec
temperature,100,celsius,fahrenheit
`

func writeInput(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "requests.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRunBatch_CSVToStdout(t *testing.T) {
	env, stdout, stderr := newTestEnv(t)
	in := writeInput(t, batchInput)

	err := env.RunBatch(Args{Raw: []string{"--input", in}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 3 rows failed")
	assert.Equal(t, ExitGeneralError, GetExitCode(err))

	out := stdout.String()
	assert.Contains(t, out, "Input,From,Output,To,Category")
	assert.Contains(t, out, "1,Meter,0.001,Kilometer,Length")
	assert.Contains(t, out, "100,Celsius,212,Fahrenheit,Temperature")
	assert.Contains(t, stderr.String(), "line 3")
}

func TestRunBatch_OutputFile(t *testing.T) {
	env, _, stderr := newTestEnv(t)
	in := writeInput(t, "Length,1,Meter,Kilometer\n")
	out := filepath.Join(t.TempDir(), "results.md")

	require.NoError(t, env.RunBatch(Args{Raw: []string{"--input", in, "--output", out, "--format", "md"}}))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "| Input | From | Output | To | Category |")
	assert.Contains(t, stderr.String(), "Wrote 1 conversions")
}

func TestRunBatch_Stdin(t *testing.T) {
	env, stdout, _ := newTestEnv(t)
	env.Stdin = strings.NewReader("Data,16,Bit,Byte\n")

	require.NoError(t, env.RunBatch(Args{Raw: []string{"--input", "-", "--format", "json"}}))
	assert.Contains(t, stdout.String(), `"output": "2"`)
}

func TestRunBatch_NonFiniteRowsSkipped(t *testing.T) {
	env, stdout, stderr := newTestEnv(t)
	env.Stdin = strings.NewReader("Length,1,Meter,Foot\nLength,NaN,Meter,Foot\nLength,inf,Meter,Foot\n")

	err := env.RunBatch(Args{Raw: []string{"--input", "-", "--format", "json"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 of 3 rows failed")

	var rows []history.Entry
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "3.28084", rows[0].Output)
	assert.Contains(t, stderr.String(), "skipped line 2")
	assert.Contains(t, stderr.String(), "skipped line 3")
}

func TestRunBatch_Link(t *testing.T) {
	env, stdout, _ := newTestEnv(t)
	in := writeInput(t, "Length,1,Meter,Kilometer\n")

	require.NoError(t, env.RunBatch(Args{Raw: []string{"--input", in, "--link"}}))
	assert.True(t, strings.HasPrefix(stdout.String(), `<a href="data:file/csv;base64,`))
	assert.Contains(t, stdout.String(), `download="conversion_results.csv"`)

	err := env.RunBatch(Args{Raw: []string{"--input", in, "--link", "--format", "json"}})
	assert.Equal(t, ExitUsageError, GetExitCode(err))
}

func TestRunBatch_UsageErrors(t *testing.T) {
	env, _, _ := newTestEnv(t)

	err := env.RunBatch(Args{})
	assert.Equal(t, ExitUsageError, GetExitCode(err))

	err = env.RunBatch(Args{Raw: []string{"--input", "x.csv", "--format", "pdf"}})
	assert.Equal(t, ExitUsageError, GetExitCode(err))
	assert.Contains(t, err.Error(), "unsupported format")

	err = env.RunBatch(Args{Raw: []string{"--input", filepath.Join(t.TempDir(), "missing.csv")}})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

// =============================================================================
// CONFIG AND VERSION
// =============================================================================

func TestRunConfig(t *testing.T) {
	env, stdout, _ := newTestEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	args := Args{ConfigPath: path}

	args.Raw = []string{"path"}
	require.NoError(t, env.RunConfig(args))
	assert.Equal(t, path+"\n", stdout.String())

	args.Raw = []string{"init"}
	require.NoError(t, env.RunConfig(args))
	cfg, err := config.LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, units.Length, cfg.Converter.DefaultCategory)

	err = env.RunConfig(args)
	assert.Equal(t, ExitConfigError, GetExitCode(err))

	args.Raw = []string{"init", "--force"}
	assert.NoError(t, env.RunConfig(args))

	stdout.Reset()
	args.Raw = []string{"show"}
	require.NoError(t, env.RunConfig(args))
	assert.Contains(t, stdout.String(), "default_category")

	args.Raw = []string{"edit"}
	assert.Equal(t, ExitUsageError, GetExitCode(env.RunConfig(args)))
}

func TestRunVersion(t *testing.T) {
	env, stdout, _ := newTestEnv(t)
	require.NoError(t, env.RunVersion(Args{}))
	assert.Contains(t, stdout.String(), "convertxpert version "+Version)

	stdout.Reset()
	require.NoError(t, env.RunVersion(Args{JSON: true}))
	var resp struct {
		Data VersionData `json:"data"`
	}
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &resp))
	assert.Equal(t, Version, resp.Data.Version)
}

func TestExecute_Help(t *testing.T) {
	env, stdout, _ := newTestEnv(t)
	require.NoError(t, env.Execute(CmdHelp, Args{}))
	assert.Contains(t, stdout.String(), "convertxpert convert <category> <value> <from> <to>")
}
