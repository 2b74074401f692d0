package constraint

import (
	"errors"
	"fmt"

	"svw.info/maxrun/internal/domain"
)

var (
	ErrUnsupportedTopology = errors.New("max consecutive constraint only supports cartesian topologies")
	ErrNotInitialized      = errors.New("constraint checked before Init")
)

// UnsupportedTopologyError is returned by Init for non-cartesian grids.
type UnsupportedTopologyError struct {
	Kind domain.TopologyKind
}

func (e *UnsupportedTopologyError) Error() string {
	return fmt.Sprintf("%v (got %s)", ErrUnsupportedTopology, e.Kind)
}

func (e *UnsupportedTopologyError) Is(target error) bool {
	return target == ErrUnsupportedTopology
}
