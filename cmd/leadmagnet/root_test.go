package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/grandcanyonsmith/leadmagnet/internal/domain/config"
)

func TestFormatError_PlainError(t *testing.T) {
	err := errors.New("boom")
	assert.Equal(t, "boom", formatError(err))
}

func TestFormatError_UserError(t *testing.T) {
	err := config.NewConfigNotFoundError("/tmp/leadmagnet.yaml")

	msg := formatError(err)
	assert.Contains(t, msg, "configuration file not found")
	assert.Contains(t, msg, "/tmp/leadmagnet.yaml")
	assert.Contains(t, msg, "Suggestion:")
}

func TestPrintErrorTo(t *testing.T) {
	var buf bytes.Buffer
	printErrorTo(&buf, errors.New("boom"))

	assert.Equal(t, "Error: boom\n", buf.String())
}

func TestRootCmd_RegistersSubcommands(t *testing.T) {
	names := map[string]bool{}
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}

	for _, want := range []string{"status", "jobs", "watch", "serve", "version"} {
		assert.True(t, names[want], "missing %q subcommand", want)
	}
}
