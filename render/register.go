package render

import (
	"sort"
	"strings"
	"sync"

	"github.com/go-spatial/tegola/dict"
)

// InitFunc initializes a Projector given a config map.
// The InitFunc should validate the config map, and report
// any errors.
type InitFunc func(dict.Dicter) (Projector, error)

var projectionsLock sync.RWMutex
var projections map[string]InitFunc

// RegisterProjection is called by the init functions of the projections
func RegisterProjection(name string, init InitFunc) error {
	projectionsLock.Lock()
	defer projectionsLock.Unlock()

	name = strings.ToLower(name)
	if projections == nil {
		projections = make(map[string]InitFunc)
	}
	if _, ok := projections[name]; ok {
		return ErrProjectionExists(name)
	}
	projections[name] = init
	return nil
}

// Projections returns the names of the registered projections
func Projections() (p []string) {
	projectionsLock.RLock()
	p = make([]string, 0, len(projections))
	for k := range projections {
		p = append(p, k)
	}
	projectionsLock.RUnlock()
	sort.Strings(p)
	return p
}

// ProjectionFor returns a configured projection of the given name. A nil
// config uses the projection's defaults.
func ProjectionFor(name string, config dict.Dicter) (Projector, error) {
	projectionsLock.RLock()
	defer projectionsLock.RUnlock()
	if projections == nil {
		return nil, ErrNoProjectionsRegistered
	}
	init, ok := projections[strings.ToLower(name)]
	if !ok {
		return nil, ErrUnknownProjection(name)
	}
	if config == nil {
		config = dict.Dict{}
	}
	return init(config)
}
