package svgcontext

import (
	"log/slog"

	"github.com/benoitkugler/svgcut/logging"
	"github.com/benoitkugler/svgcut/svgpath"
)

const (
	// DefaultMaxPatternDepth is the number of nested pattern fills
	// processed before giving up.
	DefaultMaxPatternDepth = 8
	// DefaultMaxPatternTiles bounds the number of tiles a single
	// pattern fill may produce.
	DefaultMaxPatternTiles = 10000
	// DefaultFlatness is the tolerance, in document units, used when
	// curves are approximated by segments.
	DefaultFlatness = 0.1
)

// Config groups the settings shared by all the contexts
// of one document traversal.
type Config struct {
	// Logger receives the warnings about unsupported values.
	// If nil, logging.Logger() is used.
	Logger *slog.Logger

	// DefaultViewport is used to resolve the percentages of
	// the root <svg> element.
	DefaultViewport svgpath.Bounds

	MaxPatternDepth int
	MaxPatternTiles int
	Flatness        float64
}

// DefaultConfig returns the settings used when none are provided :
// a 100 x 100 viewport and the default limits.
func DefaultConfig() Config {
	return Config{
		DefaultViewport: svgpath.Bounds{W: 100, H: 100},
		MaxPatternDepth: DefaultMaxPatternDepth,
		MaxPatternTiles: DefaultMaxPatternTiles,
		Flatness:        DefaultFlatness,
	}
}

// withDefaults replaces the zero fields by their default value
func (cfg Config) withDefaults() Config {
	def := DefaultConfig()
	cfg.Logger = logging.OrDefault(cfg.Logger)
	if cfg.DefaultViewport.W <= 0 || cfg.DefaultViewport.H <= 0 {
		cfg.DefaultViewport = def.DefaultViewport
	}
	if cfg.MaxPatternDepth <= 0 {
		cfg.MaxPatternDepth = def.MaxPatternDepth
	}
	if cfg.MaxPatternTiles <= 0 {
		cfg.MaxPatternTiles = def.MaxPatternTiles
	}
	if cfg.Flatness <= 0 {
		cfg.Flatness = def.Flatness
	}
	return cfg
}
