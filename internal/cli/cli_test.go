package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	var out bytes.Buffer
	config, shouldExit, err := Parse([]string{"answers.hcl"}, &out)
	require.NoError(t, err)
	require.False(t, shouldExit)

	assert.Equal(t, "answers.hcl", config.AnswersPath)
	assert.Equal(t, 2023, config.Year)
	assert.Equal(t, "1040", config.Form)
	assert.Equal(t, "text", config.LogFormat)
	assert.Equal(t, "info", config.LogLevel)
	assert.False(t, config.Dump)
}

func TestParse_Flags(t *testing.T) {
	var out bytes.Buffer
	config, shouldExit, err := Parse([]string{
		"--answers", "filing/",
		"--year", "2023",
		"--form", "1040",
		"--log-format", "json",
		"--log-level", "debug",
		"--dump",
	}, &out)
	require.NoError(t, err)
	require.False(t, shouldExit)

	assert.Equal(t, "filing/", config.AnswersPath)
	assert.Equal(t, "json", config.LogFormat)
	assert.Equal(t, "debug", config.LogLevel)
	assert.True(t, config.Dump)
}

func TestParse_AnswersFlagWinsOverPositional(t *testing.T) {
	var out bytes.Buffer
	config, _, err := Parse([]string{"--answers", "a.hcl", "b.hcl"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "a.hcl", config.AnswersPath)
}

func TestParse_NoPathPrintsUsage(t *testing.T) {
	var out bytes.Buffer
	config, shouldExit, err := Parse(nil, &out)
	require.NoError(t, err)
	assert.True(t, shouldExit)
	assert.Nil(t, config)
	assert.Contains(t, out.String(), "Usage:")
}

func TestParse_Help(t *testing.T) {
	var out bytes.Buffer
	config, shouldExit, err := Parse([]string{"--help"}, &out)
	require.NoError(t, err)
	assert.True(t, shouldExit)
	assert.Nil(t, config)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown flag", []string{"--bogus", "answers.hcl"}},
		{"bad log format", []string{"--log-format", "yaml", "answers.hcl"}},
		{"bad log level", []string{"--log-level", "loud", "answers.hcl"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			_, _, err := Parse(tt.args, &out)
			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, 2, exitErr.Code)
		})
	}
}
