package svgplotter

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/benoitkugler/svgcut/svgconvert"
	"github.com/benoitkugler/svgcut/svgdraw"
	"github.com/benoitkugler/svgcut/svgpath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 24px is 6.35mm, that is 127 plotter units
const unit = 24

func segment(x0, y0, x1, y1 float64) svgpath.Path {
	var p svgpath.Path
	p.Start(svgpath.Point{X: x0 * unit, Y: y0 * unit})
	p.Line(svgpath.Point{X: x1 * unit, Y: y1 * unit})
	return p
}

func readable(s string) string { return strings.ReplaceAll(s, "\x03", ";") }

func TestWriterCommands(t *testing.T) {
	var buf bytes.Buffer
	pw := NewWriter(&buf, svgpath.Bounds{W: 4 * unit, H: 4 * unit}, 0)
	pw.Plot(svgpath.DashedPath{Path: segment(0, 0, 2, 1), InverseTransform: svgpath.Identity})
	// continues from the pen position
	pw.Plot(svgpath.DashedPath{Path: segment(2, 1, 2, 3), InverseTransform: svgpath.Identity})
	pw.Plot(svgpath.DashedPath{Path: segment(1, 1, 1, 1), InverseTransform: svgpath.Identity})
	require.NoError(t, pw.Flush())

	assert.Equal(t, "M0,0;D127,254;D381,254;", readable(buf.String()))
}

func TestWriterDashes(t *testing.T) {
	var buf bytes.Buffer
	err := WriteRecords(&buf, []svgpath.DashedPath{
		{Path: segment(0, 0, 3, 0), Dashes: svgpath.DashArray{unit}, InverseTransform: svgpath.Identity},
		// dashes are given in source units
		{Path: segment(0, 1, 3, 1), Dashes: svgpath.DashArray{unit / 2}, InverseTransform: svgpath.Identity.Scale(0.5, 0.5)},
	}, svgpath.Bounds{}, 0)
	require.NoError(t, err)
	assert.Equal(t, "M0,0;D0,127;M0,254;D0,381;M127,0;D127,127;M127,254;D127,381;", readable(buf.String()))
}

func TestWriterOffset(t *testing.T) {
	var buf bytes.Buffer
	err := WriteRecords(&buf, []svgpath.DashedPath{
		{Path: segment(1, 1, 2, 1), InverseTransform: svgpath.Identity},
	}, svgpath.Bounds{X: unit, Y: unit, W: unit, H: unit}, 0)
	require.NoError(t, err)
	assert.Equal(t, "M0,0;D0,127;", readable(buf.String()))
}

func TestWriterCurves(t *testing.T) {
	var p svgpath.Path
	p.Start(svgpath.Point{})
	p.CubeBezier(svgpath.Point{Y: 96}, svgpath.Point{X: 96, Y: 96}, svgpath.Point{X: 96})
	var fine, coarse bytes.Buffer
	require.NoError(t, WriteRecords(&fine, []svgpath.DashedPath{{Path: p, InverseTransform: svgpath.Identity}}, svgpath.Bounds{}, 0.01))
	require.NoError(t, WriteRecords(&coarse, []svgpath.DashedPath{{Path: p, InverseTransform: svgpath.Identity}}, svgpath.Bounds{}, 5))

	assert.Greater(t, strings.Count(fine.String(), "D"), strings.Count(coarse.String(), "D"))
	assert.True(t, strings.HasSuffix(readable(fine.String()), "D0,508;"))
}

type failingWriter struct{ calls int }

var errDisk = errors.New("disk full")

func (f *failingWriter) Write([]byte) (int, error) {
	f.calls++
	return 0, errDisk
}

func TestWriterStickyError(t *testing.T) {
	fw := &failingWriter{}
	pw := NewWriter(fw, svgpath.Bounds{}, 0)
	pw.Plot(svgpath.DashedPath{Path: segment(0, 0, 1, 1), InverseTransform: svgpath.Identity})
	assert.True(t, errors.Is(pw.Flush(), errDisk))

	pw.Plot(svgpath.DashedPath{Path: segment(1, 1, 2, 2), InverseTransform: svgpath.Identity})
	assert.True(t, errors.Is(pw.Flush(), errDisk))
	assert.Equal(t, 1, fw.calls)
}

func TestConvertToPlotter(t *testing.T) {
	var rec svgdraw.Recorder
	bounds, err := svgconvert.Convert(strings.NewReader(`<svg xmlns="http://www.w3.org/2000/svg" width="10mm" height="10mm" viewBox="0 0 10 10">
		<line x1="0" y1="5" x2="10" y2="5" />
	</svg>`), &rec)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteRecords(&buf, rec.Records, bounds, 0))
	assert.Equal(t, "M100,0;D100,200;", readable(buf.String()))
}
