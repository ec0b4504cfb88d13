package cmd

import (
	"net/url"

	"github.com/go-spatial/eomaps/config"
	cmdconfig "github.com/go-spatial/eomaps/cmd/eomaps-grid/config"
	"github.com/spf13/cobra"
)

var (
	// Flags
	configFile string
	dpi        float64 = config.DefaultDPI
)

func init() {
	Root.PersistentFlags().StringVar(&configFile, "config", "config.toml", "config file to use")
	Root.PersistentFlags().Float64Var(&dpi, "dpi", config.DefaultDPI, "dpi to draw the map at")
	Root.AddCommand(SVG, GeoJSON, Server)
}

// Root is the main cobra command
var Root = &cobra.Command{
	Use:   "eomaps-grid",
	Short: "eomaps-grid draws graticules and their labels",
	Long: `Draws the meridians and parallels of a map, and labels the
points where they leave the map boundary. Maps are described in a
toml config file and drawn as svg or exported as GeoJSON.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// loadConfig reads the config file and builds the map it describes.
func loadConfig(cmd *cobra.Command) (config.Config, *cmdconfig.Map, error) {
	aURL, err := url.Parse(configFile)
	if err != nil {
		return config.Config{}, nil, ErrExitWith{
			Err:       err,
			Msg:       "invalid config location",
			ExitCode:  1,
			ShowUsage: true,
		}
	}
	conf, err := config.LoadAndValidate(aURL)
	if err != nil {
		return conf, nil, ErrExitWith{
			Err:      err,
			Msg:      "error loading config",
			ExitCode: 1,
		}
	}
	m, err := cmdconfig.Load(conf, dpi, cmd.Flag("dpi").Changed)
	if err != nil {
		return conf, nil, ErrExitWith{
			Err:      err,
			Msg:      "error building map",
			ExitCode: 2,
		}
	}
	return conf, m, nil
}
