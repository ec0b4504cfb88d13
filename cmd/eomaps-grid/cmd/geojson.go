package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

// GeoJSON writes the grid lines as a FeatureCollection
var GeoJSON = &cobra.Command{
	Use:   "geojson",
	Short: "export the grid lines as GeoJSON",
	RunE:  geojsonCmdRunE,
}

func init() {
	GeoJSON.Flags().StringVarP(&output, "output", "o", "", "file to write the GeoJSON to, stdout if empty")
}

func geojsonCmdRunE(cmd *cobra.Command, args []string) error {
	_, m, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	defer m.Close()

	fc, err := m.GeoJSON()
	if err != nil {
		return ErrExitWith{
			Err:      err,
			Msg:      "error computing grid lines",
			ExitCode: 2,
		}
	}
	w, err := outputWriter(cmd)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(fc); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}
