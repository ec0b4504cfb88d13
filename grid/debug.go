package grid

import (
	"os"
	"strconv"

	"github.com/prometheus/common/log"
)

var debug bool

func init() {
	debug, _ = strconv.ParseBool(os.Getenv("EOMAPS_DEBUG"))
	if debug {
		log.Infof("grid debug is on")
	}
}
