// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/eigenframes/matrix"
	"github.com/katalvlaran/eigenframes/reconstruct"
)

// execute runs the root command with flag variables reset to their defaults.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	dbPath, verbose = "", false
	runCfg = runConfig{side: 28, seed: 1, components: 10, blockSize: reconstruct.DefaultBlockSize, solver: "svd", sample: -1}
	showIndex, showSample, showWidth, showCSV = -1, 0, 0, false
	compCfg = runConfig{side: 28, seed: 1, components: 10, solver: "svd"}
	compIndex = -1

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())

	return out.String(), err
}

var sessionLine = regexp.MustCompile(`session ([0-9a-f-]{36}): (\d+) frames stored`)

func TestRun_StoresAndShowsFrames(t *testing.T) {
	db := filepath.Join(t.TempDir(), "frames.db")

	out, err := execute(t, "run", "--synthetic", "20", "--side", "8", "-k", "5", "-b", "2", "--db", db, "--label", "digits")
	require.NoError(t, err, out)
	m := sessionLine.FindStringSubmatch(out)
	require.NotNil(t, m, out)
	id := m[1]
	assert.Equal(t, "3", m[2]) // ceil(5/2)

	out, err = execute(t, "frames", "list", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, id)
	assert.Contains(t, out, "digits")

	out, err = execute(t, "frames", "show", id, "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "INDEX")
	assert.Contains(t, out, "20x64")

	out, err = execute(t, "frames", "show", id, "--db", db, "--index", "4", "--sample", "3")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 9) // header + 8 pixel rows
	assert.Len(t, []rune(lines[1]), 8)

	out, err = execute(t, "frames", "show", id, "--db", db, "--index", "1", "--csv")
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimRight(out, "\n"), "\n"), 20)

	_, err = execute(t, "frames", "delete", id, "--db", db)
	require.NoError(t, err)
	out, err = execute(t, "frames", "list", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "no sessions")
}

func TestRun_WithoutStore(t *testing.T) {
	out, err := execute(t, "run", "--synthetic", "12", "--side", "8", "-k", "3", "--solver", "jacobi", "--sample", "0")
	require.NoError(t, err, out)
	assert.Contains(t, out, "3 frames")
	assert.Contains(t, out, "frame 2 (3 components)")
}

func TestRun_Errors(t *testing.T) {
	_, err := execute(t, "run")
	assert.ErrorContains(t, err, "--input or --synthetic")

	_, err = execute(t, "run", "--synthetic", "5", "--input", "x.csv")
	assert.ErrorContains(t, err, "mutually exclusive")

	_, err = execute(t, "run", "--synthetic", "12", "--side", "8", "--solver", "qr")
	assert.Error(t, err)

	_, err = execute(t, "run", "--synthetic", "12", "--side", "8", "-k", "3", "-b", "0")
	assert.ErrorIs(t, err, reconstruct.ErrInvalidArgument)

	_, err = execute(t, "frames", "list")
	assert.ErrorContains(t, err, "--db is required")
}

func TestObserve_StopsOnError(t *testing.T) {
	data, err := matrix.NewIdentity(4)
	require.NoError(t, err)
	seq, err := reconstruct.Reconstruct(data, data, 1)
	require.NoError(t, err)

	boom := errors.New("boom")
	ctx, abort := context.WithCancelCause(context.Background())
	defer abort(nil)
	var seen, doneCalls int
	for range observe(seq, func(s reconstruct.Step) error {
		if s.Index == 2 {
			return boom
		}
		return nil
	}, func() error {
		doneCalls++
		return nil
	}, abort) {
		seen++
	}
	assert.Equal(t, 2, seen)
	assert.Zero(t, doneCalls)
	assert.ErrorIs(t, context.Cause(ctx), boom)
}

func TestObserve_DoneErrorAborts(t *testing.T) {
	data, err := matrix.NewIdentity(3)
	require.NoError(t, err)
	seq, err := reconstruct.Reconstruct(data, data, 2)
	require.NoError(t, err)

	late := errors.New("late failure")
	ctx, abort := context.WithCancelCause(context.Background())
	defer abort(nil)
	var seen int
	for range observe(seq, func(reconstruct.Step) error { return nil }, func() error { return late }, abort) {
		require.NoError(t, ctx.Err(), "aborted before the sequence ran out")
		seen++
	}
	assert.Equal(t, 2, seen)
	assert.ErrorIs(t, context.Cause(ctx), late)
}

func TestRun_FailedRunLeavesNoSession(t *testing.T) {
	db := filepath.Join(t.TempDir(), "frames.db")

	_, err := execute(t, "run", "--synthetic", "12", "--side", "8", "-k", "3", "--db", db, "--sample", "999")
	assert.ErrorContains(t, err, "--sample 999")

	out, err := execute(t, "frames", "list", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "no sessions")
}

func TestCheckSample(t *testing.T) {
	square, err := matrix.NewZeros(3, 16)
	require.NoError(t, err)
	wide, err := matrix.NewZeros(3, 10)
	require.NoError(t, err)

	assert.NoError(t, checkSample(-1, wide))
	assert.NoError(t, checkSample(2, square))
	assert.ErrorContains(t, checkSample(3, square), "only 3 samples")
	assert.ErrorContains(t, checkSample(0, wide), "square image")
}

func TestComponentsShow(t *testing.T) {
	out, err := execute(t, "components", "show", "--synthetic", "20", "--side", "8", "-k", "3")
	require.NoError(t, err, out)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3*(1+8))
	assert.True(t, strings.HasPrefix(lines[0], "component 0 ("))
	assert.True(t, strings.HasPrefix(lines[18], "component 2 ("))

	out, err = execute(t, "components", "show", "--synthetic", "20", "--side", "8", "-k", "3", "--index", "1", "--solver", "jacobi")
	require.NoError(t, err, out)
	lines = strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 9)
	assert.Contains(t, lines[0], "component 1 (")
	assert.Contains(t, lines[0], "% variance)")
	assert.Len(t, []rune(lines[1]), 8)
}

func TestComponentsShow_Errors(t *testing.T) {
	_, err := execute(t, "components", "show", "--synthetic", "20", "--side", "8", "-k", "3", "--index", "3")
	assert.ErrorContains(t, err, "only 3 components")

	csv := filepath.Join(t.TempDir(), "wide.csv")
	require.NoError(t, os.WriteFile(csv, []byte("1,2\n3,5\n4,4\n"), 0o600))
	_, err = execute(t, "components", "show", "--input", csv, "-k", "1")
	assert.ErrorContains(t, err, "square image")

	_, err = execute(t, "components", "show")
	assert.ErrorContains(t, err, "--input or --synthetic")
}

func TestSquareSide(t *testing.T) {
	assert.Equal(t, 28, squareSide(784))
	assert.Equal(t, 1, squareSide(1))
	assert.Equal(t, 0, squareSide(10))
}
