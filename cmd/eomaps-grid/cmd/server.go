package cmd

import (
	"fmt"
	"net/http"

	"github.com/dimfeld/httptreemux"
	"github.com/go-spatial/eomaps/server"
	"github.com/prometheus/common/log"
	"github.com/spf13/cobra"
)

var (
	// Server is the command to start up the api server
	Server = &cobra.Command{
		Use:     "serve",
		Short:   "serve the map over http",
		Aliases: []string{"server"},
		Long:    `Serve the map over http. The map is served as /grid.svg and /grid.geojson, other extents under /grid/:lonmin/:lonmax/:latmin/:latmax/svg`,
		RunE:    serverCmdRunE,
	}

	// port that server should start up on, but default we will use :8080
	port = ":8080"
)

func init() {
	Server.Flags().StringVar(&port, "port", ":8080", "port to start the server on")
}

func serverCmdRunE(cmd *cobra.Command, args []string) error {
	conf, m, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	defer m.Close()

	// Shadow port and then check to see if it changed and the config
	// has a value we should use instead
	port := port
	if !cmd.Flag("port").Changed && conf.Webserver.Port != "" {
		port = conf.Webserver.Port
	}

	srv := &server.Server{
		Hostname: conf.Webserver.HostName,
		Port:     port,
		Headers:  conf.Webserver.Headers,
		Map:      m,
	}

	router := httptreemux.New()
	srv.RegisterRoutes(router)

	log.Infof("serving %v grids", len(m.Grids))
	fmt.Fprintf(cmd.OutOrStdout(), "starting up server on %v\n", port)
	err = http.ListenAndServe(srv.Port, router)
	switch err {
	case nil:
		fmt.Fprintf(cmd.OutOrStderr(), "shutting down")
		return nil
	case http.ErrServerClosed:
		fmt.Fprintf(cmd.OutOrStderr(), "http server closed")
		return nil
	default:
		return ErrExitWith{
			Err:      err,
			Msg:      "Failed to start up server",
			ExitCode: 1,
		}
	}
}
