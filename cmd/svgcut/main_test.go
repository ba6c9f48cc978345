package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const drawing = `<svg xmlns="http://www.w3.org/2000/svg" width="10mm" height="10mm" viewBox="0 0 10 10">
	<line x1="0" y1="5" x2="10" y2="5" />
	<blink />
</svg>`

func writeInput(t *testing.T) string {
	name := filepath.Join(t.TempDir(), "in.svg")
	require.NoError(t, os.WriteFile(name, []byte(drawing), 0o644))
	return name
}

func TestRunFormats(t *testing.T) {
	input := writeInput(t)

	var stdout, stderr bytes.Buffer
	require.NoError(t, run([]string{input}, &stdout, &stderr))
	assert.Equal(t, "M100,0\x03D100,200\x03", stdout.String())
	assert.Contains(t, stderr.String(), "cannot process svg element blink")

	for format, prefix := range map[string]string{
		"pdf": "%PDF-",
		"svg": "<svg",
		"png": "\x89PNG",
	} {
		stdout.Reset()
		require.NoError(t, run([]string{"-format", format, "-width", "64", input}, &stdout, &stderr))
		assert.True(t, strings.HasPrefix(stdout.String(), prefix), format)
	}
}

func TestRunOutputFile(t *testing.T) {
	input := writeInput(t)
	output := filepath.Join(t.TempDir(), "out.svg")

	var stdout, stderr bytes.Buffer
	require.NoError(t, run([]string{"-format", "svg", "-o", output, "-v", input}, &stdout, &stderr))
	assert.Zero(t, stdout.Len())
	assert.Contains(t, stderr.String(), "document converted")

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(content), "<path ")
}

func TestRunErrors(t *testing.T) {
	input := writeInput(t)
	var stdout, stderr bytes.Buffer

	assert.True(t, errors.Is(run(nil, &stdout, &stderr), errUsage))
	assert.Error(t, run([]string{"-strict", input}, &stdout, &stderr))
	assert.Error(t, run([]string{"-format", "dxf", input}, &stdout, &stderr))

	// no file is left behind for an invalid format
	output := filepath.Join(t.TempDir(), "out.dxf")
	assert.Error(t, run([]string{"-format", "dxf", "-o", output, input}, &stdout, &stderr))
	_, err := os.Stat(output)
	assert.True(t, os.IsNotExist(err))
	assert.Error(t, run([]string{"-unknown", input}, &stdout, &stderr))
	assert.Error(t, run([]string{filepath.Join(t.TempDir(), "missing.svg")}, &stdout, &stderr))
}
