package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestRunSubcommand(t *testing.T) {
	cmd := newRootCommand()

	sub, args, err := cmd.Find([]string{"run", "game.ch8"})
	assert.NoError(t, err)
	assert.Equal(t, "run", sub.Name())
	assert.Equal(t, []string{"game.ch8"}, args)

	for _, name := range []string{"speed", "timer-hz", "frontend", "scale", "hold-frames", "dump-state"} {
		assert.True(t, sub.Flags().Lookup(name) != nil)
		assert.True(t, cmd.Flags().Lookup(name) != nil)
	}
}

func TestRunMissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.ch8")

	for _, args := range [][]string{{missing}, {"run", missing}} {
		cmd := newRootCommand()
		cmd.SetArgs(args)

		err := cmd.ExecuteContext(context.Background())
		assert.Error(t, err)
		assert.True(t, strings.Contains(err.Error(), "unable to load file"))
	}
}

func TestDisasmSubcommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.ch8")
	assert.NoError(t, os.WriteFile(path, []byte{0x00, 0xE0}, 0o600))

	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"disasm", path})

	assert.NoError(t, cmd.ExecuteContext(context.Background()))
	assert.True(t, strings.Contains(out.String(), "0x0200  00E0  cls"))
}
