package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-spatial/geom"
	"github.com/spf13/cobra"
)

var (
	// SVG draws the map to a file or stdout
	SVG = &cobra.Command{
		Use:   "svg",
		Short: "draw the map as an svg document",
		RunE:  svgCmdRunE,
	}

	output string
	extent string
)

func init() {
	SVG.Flags().StringVarP(&output, "output", "o", "", "file to write the svg to, stdout if empty")
	SVG.Flags().StringVar(&extent, "extent", "", "minlon,minlat,maxlon,maxlat to draw instead of the configured extent")
}

func outputWriter(cmd *cobra.Command) (io.WriteCloser, error) {
	if output == "" || output == "-" {
		return nopCloser{cmd.OutOrStdout()}, nil
	}
	f, err := os.Create(output)
	if err != nil {
		return nil, ErrExitWith{
			Err:      err,
			Msg:      "error creating output file",
			ExitCode: 3,
		}
	}
	return f, nil
}

func parseExtent(s string) (e geom.Extent, err error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return e, fmt.Errorf("extent needs four values, got %v", len(parts))
	}
	for i, p := range parts {
		e[i], err = strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return e, err
		}
	}
	return e, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func svgCmdRunE(cmd *cobra.Command, args []string) error {
	_, m, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	defer m.Close()

	if cmd.Flag("extent").Changed {
		e, err := parseExtent(extent)
		if err != nil {
			return ErrExitWith{
				Err:       err,
				Msg:       "invalid extent flag",
				ExitCode:  1,
				ShowUsage: true,
			}
		}
		if err := m.SetExtent(e); err != nil {
			return ErrExitWith{
				Err:      err,
				Msg:      "invalid extent",
				ExitCode: 1,
			}
		}
	}

	w, err := outputWriter(cmd)
	if err != nil {
		return err
	}
	if err := m.DrawSVG(w); err != nil {
		w.Close()
		return ErrExitWith{
			Err:      err,
			Msg:      "error drawing map",
			ExitCode: 2,
		}
	}
	return w.Close()
}
