package svgcontext

import (
	"log/slog"
	"strings"
	"testing"

	"github.com/benoitkugler/svgcut/logging"
	"github.com/benoitkugler/svgcut/svgdoc"
	"github.com/benoitkugler/svgcut/svgpath"
	"github.com/benoitkugler/svgcut/svgtraverse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// process runs the whole traversal of `content`
func process(t *testing.T, content string, cfg Config) (*recorder, *logging.RecordingHandler, *RootContext) {
	t.Helper()
	doc, err := svgdoc.Parse(strings.NewReader(content))
	require.NoError(t, err)

	logs := logging.NewRecordingHandler(slog.LevelDebug)
	cfg.Logger = slog.New(logs)
	exporter := &recorder{}
	traverser := svgtraverse.NewTraverser(cfg.Logger, svgtraverse.StrictErrorMode)
	root := NewRootContext(doc, traverser, exporter, cfg)
	require.NoError(t, traverser.LoadDocument(doc, root))
	return exporter, logs, root
}

// polylines returns the subpaths of p, which must
// only contain moves and lines
func polylines(t *testing.T, p svgpath.Path) [][]svgpath.Point {
	t.Helper()
	var out [][]svgpath.Point
	for _, op := range p {
		switch op := op.(type) {
		case svgpath.MoveTo:
			out = append(out, []svgpath.Point{svgpath.Point(op)})
		case svgpath.LineTo:
			out[len(out)-1] = append(out[len(out)-1], svgpath.Point(op))
		default:
			t.Fatalf("unexpected command %v", op)
		}
	}
	return out
}

func assertPoints(t *testing.T, expected, got [][]svgpath.Point) {
	t.Helper()
	require.Len(t, got, len(expected))
	for i := range expected {
		require.Len(t, got[i], len(expected[i]))
		for j := range expected[i] {
			assert.InDelta(t, expected[i][j].X, got[i][j].X, 1e-9)
			assert.InDelta(t, expected[i][j].Y, got[i][j].Y, 1e-9)
		}
	}
}

func pts(coords ...float64) []svgpath.Point {
	var out []svgpath.Point
	for i := 0; i+1 < len(coords); i += 2 {
		out = append(out, svgpath.Point{X: coords[i], Y: coords[i+1]})
	}
	return out
}

const hatching = `
<svg xmlns="http://www.w3.org/2000/svg" width="40" height="20">
	<defs>
		<pattern id="user" width="10" height="10" patternUnits="userSpaceOnUse">
			<line x1="0" y1="5" x2="10" y2="5" />
		</pattern>
		<pattern id="bbox" width="0.5" height="1" patternContentUnits="objectBoundingBox">
			<line x1="0" y1="0.5" x2="0.5" y2="0.5" />
		</pattern>
	</defs>
	<rect width="20" height="10" fill="url(#%s)" stroke="none" />
</svg>`

func TestPatternTiling(t *testing.T) {
	for _, id := range []string{"user", "bbox"} {
		exporter, logs, root := process(t, strings.Replace(hatching, "%s", id, 1), Config{})
		assert.Zero(t, logs.Count(slog.LevelWarn))
		assert.Equal(t, svgpath.Bounds{W: 40, H: 20}, root.Bounds())

		require.Len(t, exporter.records, 2, id)
		assertPoints(t, [][]svgpath.Point{pts(0, 5, 10, 5)}, polylines(t, exporter.records[0].Path))
		assertPoints(t, [][]svgpath.Point{pts(10, 5, 20, 5)}, polylines(t, exporter.records[1].Path))
		for _, rec := range exporter.records {
			assert.Empty(t, rec.Dashes)
		}
	}
}

func TestPatternInverseTransform(t *testing.T) {
	exporter, _, _ := process(t, `
	<svg xmlns="http://www.w3.org/2000/svg">
		<pattern id="p" width="10" height="10" patternUnits="userSpaceOnUse">
			<line x1="0" y1="5" x2="10" y2="5" />
		</pattern>
		<g transform="scale(2)">
			<rect width="10" height="10" fill="url(#p)" stroke="none" />
		</g>
	</svg>`, Config{})

	require.Len(t, exporter.records, 1)
	rec := exporter.records[0]
	assertPoints(t, [][]svgpath.Point{pts(0, 10, 20, 10)}, polylines(t, rec.Path))
	// back to the content space of the pattern
	x, y := rec.InverseTransform.Transform(20, 10)
	assert.InDelta(t, 10, x, 1e-9)
	assert.InDelta(t, 5, y, 1e-9)
}

func TestPatternClipping(t *testing.T) {
	// the content overflows the tile, which is larger than the shape
	exporter, _, _ := process(t, `
	<svg xmlns="http://www.w3.org/2000/svg">
		<pattern id="p" width="100" height="100" patternUnits="userSpaceOnUse">
			<line x1="-10" y1="5" x2="200" y2="5" />
			<line x1="0" y1="50" x2="10" y2="50" />
		</pattern>
		<polygon points="0 0 20 0 20 10 0 10" fill="url(#p)" stroke="none" />
	</svg>`, Config{})

	// the second line is outside of the shape
	require.Len(t, exporter.records, 1)
	assertPoints(t, [][]svgpath.Point{pts(0, 5, 20, 5)}, polylines(t, exporter.records[0].Path))
}

func TestPatternDashes(t *testing.T) {
	exporter, _, _ := process(t, `
	<svg xmlns="http://www.w3.org/2000/svg">
		<pattern id="p" width="10" height="10" patternUnits="userSpaceOnUse">
			<line x1="0" y1="5" x2="10" y2="5" stroke-dasharray="2" />
		</pattern>
		<rect width="10" height="10" fill="url(#p)" stroke="none" transform="scale(2)" />
	</svg>`, Config{})

	require.Len(t, exporter.records, 1)
	// dashes are scaled with the shape
	assertPoints(t, [][]svgpath.Point{
		pts(0, 10, 4, 10),
		pts(8, 10, 12, 10),
		pts(16, 10, 20, 10),
	}, polylines(t, exporter.records[0].Path))
	assert.Empty(t, exporter.records[0].Dashes)
}

func TestPatternWithStroke(t *testing.T) {
	exporter, _, _ := process(t, `
	<svg xmlns="http://www.w3.org/2000/svg">
		<pattern id="p" width="10" height="10" patternUnits="userSpaceOnUse">
			<line x1="0" y1="5" x2="10" y2="5" />
		</pattern>
		<rect width="10" height="10" fill="url(#p)" />
	</svg>`, Config{})

	// the fill comes first, then the outline
	require.Len(t, exporter.records, 2)
	assertPoints(t, [][]svgpath.Point{pts(0, 5, 10, 5)}, polylines(t, exporter.records[0].Path))
	assert.Equal(t, svgpath.Close{}, exporter.records[1].Path[len(exporter.records[1].Path)-1])
}

func TestPatternCycle(t *testing.T) {
	exporter, logs, _ := process(t, `
	<svg xmlns="http://www.w3.org/2000/svg">
		<pattern id="p" width="10" height="10" patternUnits="userSpaceOnUse">
			<path d="M 1 5 L 9 5" fill="url(#p)" />
		</pattern>
		<rect width="10" height="10" fill="url(#p)" stroke="none" />
	</svg>`, Config{})

	assert.True(t, logs.Contains("cyclic pattern reference"))
	require.Len(t, exporter.records, 1)
	assertPoints(t, [][]svgpath.Point{pts(1, 5, 9, 5)}, polylines(t, exporter.records[0].Path))
}

func TestPatternDepth(t *testing.T) {
	content := `
	<svg xmlns="http://www.w3.org/2000/svg">
		<pattern id="outer" width="10" height="10" patternUnits="userSpaceOnUse">
			<rect x="1" y="1" width="8" height="8" fill="url(#inner)" stroke="none" />
		</pattern>
		<pattern id="inner" width="10" height="10" patternUnits="userSpaceOnUse">
			<line x1="0" y1="5" x2="10" y2="5" />
		</pattern>
		<rect width="10" height="10" fill="url(#outer)" stroke="none" />
	</svg>`

	exporter, logs, _ := process(t, content, Config{})
	assert.Zero(t, logs.Count(slog.LevelWarn))
	require.Len(t, exporter.records, 1)
	// clipped by the inner rectangle
	assertPoints(t, [][]svgpath.Point{pts(1, 5, 9, 5)}, polylines(t, exporter.records[0].Path))

	exporter, logs, _ = process(t, content, Config{MaxPatternDepth: 1})
	assert.True(t, logs.Contains("pattern nesting too deep"))
	assert.Empty(t, exporter.records)
}

func TestPatternLimits(t *testing.T) {
	exporter, logs, _ := process(t, strings.Replace(hatching, "%s", "user", 1), Config{MaxPatternTiles: 2})
	assert.True(t, logs.Contains("too many pattern tiles"))
	assert.Empty(t, exporter.records)

	exporter, _, _ = process(t, `
	<svg xmlns="http://www.w3.org/2000/svg">
		<pattern id="p" width="0" height="10" patternUnits="userSpaceOnUse">
			<line x1="0" y1="5" x2="10" y2="5" />
		</pattern>
		<rect width="10" height="10" fill="url(#p)" stroke="none" />
	</svg>`, Config{})
	assert.Empty(t, exporter.records)
}

func TestPatternReferences(t *testing.T) {
	exporter, logs, _ := process(t, `
	<svg xmlns="http://www.w3.org/2000/svg">
		<linearGradient id="g" />
		<rect width="10" height="10" fill="url(#g)" />
		<rect width="10" height="10" fill="url(#missing)" />
	</svg>`, Config{})

	assert.Equal(t, 1, logs.Count(slog.LevelWarn))
	assert.True(t, logs.Contains("unsupported paint server"))
	assert.Len(t, exporter.records, 2)
}

func TestNestedViewport(t *testing.T) {
	exporter, _, root := process(t, `
	<svg xmlns="http://www.w3.org/2000/svg" width="200" height="100" viewBox="0 0 20 10">
		<svg x="10" y="0" width="10" height="10" viewBox="0 0 1 1" preserveAspectRatio="none">
			<line x1="0" y1="0" x2="1" y2="1" />
		</svg>
		<rect width="50%" height="1" />
	</svg>`, Config{})

	assert.Equal(t, svgpath.Bounds{W: 200, H: 100}, root.Bounds())
	require.Len(t, exporter.records, 2)
	assertPoints(t, [][]svgpath.Point{pts(100, 0, 200, 100)}, polylines(t, exporter.records[0].Path))
	// percentages resolve against the viewBox
	rect := polylines(t, exporter.records[1].Path[:len(exporter.records[1].Path)-1])
	assertPoints(t, [][]svgpath.Point{pts(0, 0, 100, 0, 100, 10, 0, 10)}, rect)
}
