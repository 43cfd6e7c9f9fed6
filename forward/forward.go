// Package forward is an explicit placeholder for forward-bisimulation
// minimization, the counterpart operation original_source/bisim.cpp
// declares (forward_minim) but leaves with an empty body. Go has no
// equivalent of silently returning from an empty function, so the stub
// says so.
package forward

import (
	"github.com/arborist-go/tabisim/automaton"
	"github.com/arborist-go/tabisim/partition"
	"github.com/pkg/errors"
)

// ErrNotImplemented is returned by Minimize unconditionally.
var ErrNotImplemented = errors.New("forward: forward bisimulation is not implemented")

// Minimize always fails with ErrNotImplemented. It exists so callers that
// dispatch on a minimization direction (backward vs. forward) have a
// symmetric API to call, rather than a direction that simply doesn't
// compile.
func Minimize(a *automaton.Automaton) (*partition.Partition, error) {
	return nil, ErrNotImplemented
}
