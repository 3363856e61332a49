package main

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	URLs []string `arg:"" optional:"" name:"url" help:"Source page URLs. Falls back to the built-in list when omitted."`

	Out      string  `short:"o" env:"GIGARIP_OUT" help:"Output directory for assembled images (default: current directory)."`
	Temp     string  `env:"GIGARIP_TMP" help:"Working directory for tiles and row strips (default: system temp)."`
	TileHost string  `default:"${tile_host}" help:"Tile host base URL."`
	MaxZoom  int     `default:"10" help:"Upper bound for zoom probing."`
	Rate     float64 `default:"8" help:"Maximum fetches per second (0 disables rate limiting)."`
	Workers  int     `default:"1" help:"Within-row concurrent fetches (1 = strictly sequential)."`
	Verbose  bool    `short:"v" help:"Enable debug logging."`
	NoTag    bool    `help:"Skip writing the metadata sidecar."`
	NoReveal bool    `help:"Do not open the finished image."`
}

// defaultSources is the fallback list processed when no URLs are given.
var defaultSources = []string{
	"https://artsandculture.google.com/asset/the-starry-night/bgEuwDxel93-Pg",
	"https://artsandculture.google.com/asset/the-great-wave-off-kanagawa/uQFSDFhVcZsbWg",
}
