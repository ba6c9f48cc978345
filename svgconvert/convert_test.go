package svgconvert

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/benoitkugler/svgcut/logging"
	"github.com/benoitkugler/svgcut/svgdraw"
	"github.com/benoitkugler/svgcut/svgpath"
	"github.com/benoitkugler/svgcut/svgtraverse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const drawing = `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="100mm" height="50mm" viewBox="0 0 100 50">
	<title>Test drawing</title>
	<defs>
		<pattern id="hatch" width="10" height="10" patternUnits="userSpaceOnUse">
			<path d="M 0 5 H 10" />
		</pattern>
	</defs>
	<g stroke-dasharray="2 1">
		<rect x="10" y="10" width="30" height="20" fill="url(#hatch)" />
	</g>
	<circle cx="70" cy="25" r="10" fill="red" style="stroke:blue" />
	<text x="0" y="0">skipped</text>
	<blink />
</svg>`

func TestConvert(t *testing.T) {
	logs := logging.NewRecordingHandler(slog.LevelDebug)
	var rec svgdraw.Recorder
	bounds, err := Convert(strings.NewReader(drawing), &rec, WithLogger(slog.New(logs)))
	require.NoError(t, err)

	mm := 96 / 25.4
	assert.InDelta(t, 100*mm, bounds.W, 1e-9)
	assert.InDelta(t, 50*mm, bounds.H, 1e-9)

	// 2 rows of 3 hatches, the rectangle and the circle
	require.Len(t, rec.Records, 2*3+2)
	assert.Equal(t, svgpath.DashArray{2, 1}, rec.Records[6].Dashes)
	assert.Empty(t, rec.Records[7].Dashes)

	// unknown element and colors
	assert.Equal(t, 1, logs.Count(slog.LevelWarn))
	assert.Equal(t, 2, logs.Count(slog.LevelDebug))

	extent := rec.Bounds()
	assert.InDelta(t, 10*mm, extent.X, 1e-6)
	assert.InDelta(t, 80*mm, extent.X+extent.W, 1e-6)
}

func TestConvertOptions(t *testing.T) {
	var rec svgdraw.Recorder
	_, err := Convert(strings.NewReader(drawing), &rec, WithErrorMode(svgtraverse.StrictErrorMode))
	assert.Error(t, err)

	rec = svgdraw.Recorder{}
	_, err = Convert(strings.NewReader(drawing), &rec, WithErrorMode(svgtraverse.IgnoreErrorMode), WithMaxPatternTiles(1))
	require.NoError(t, err)
	assert.Len(t, rec.Records, 2)

	rec = svgdraw.Recorder{}
	bounds, err := Convert(strings.NewReader(`<svg xmlns="http://www.w3.org/2000/svg" width="50%"/>`), &rec,
		WithViewport(svgpath.Bounds{W: 300, H: 200}), WithFlatness(0.5), WithMaxPatternDepth(2))
	require.NoError(t, err)
	assert.Equal(t, svgpath.Bounds{W: 150, H: 200}, bounds)
}

func TestConvertErrors(t *testing.T) {
	var rec svgdraw.Recorder
	_, err := Convert(strings.NewReader(`<svg><path d="M 0 0 L"/>`), &rec)
	assert.Error(t, err)

	_, err = Convert(strings.NewReader(`<g/>`), &rec)
	assert.True(t, errors.Is(err, svgtraverse.ErrUnexpectedElement))

	_, err = ConvertFile("does-not-exist.svg", &rec)
	assert.Error(t, err)
}

func TestConvertFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "drawing.svg")
	require.NoError(t, os.WriteFile(name, []byte(drawing), 0o644))

	var rec svgdraw.Recorder
	_, err := ConvertFile(name, &rec, WithErrorMode(svgtraverse.IgnoreErrorMode))
	require.NoError(t, err)
	assert.Len(t, rec.Records, 8)
}
