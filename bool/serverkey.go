package bool

import (
	"fmt"
	"sync"

	"github.com/latticefhe/mpctfhe/pbs"
)

// ServerKey bundles everything an evaluator needs to run gates: the
// bootstrapping evaluation key set and the ring/decomposer parameters it
// was generated under.
type ServerKey struct {
	Evaluator *Evaluator
}

var (
	globalMu  sync.RWMutex
	globalKey *ServerKey
)

// InstallServerKey installs sk as the process-wide server key, a thin
// mutex-guarded cell so that gate evaluation call sites (and derived
// packages like fheuint8) do not need to thread an Evaluator through every
// call. A later call replaces the previously installed key.
func InstallServerKey(sk *ServerKey) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalKey = sk
}

// CurrentServerKey returns the installed server key, or an error if none
// has been installed.
func CurrentServerKey() (*ServerKey, error) {
	globalMu.RLock()
	defer globalMu.RUnlock()
	if globalKey == nil {
		return nil, fmt.Errorf("bool: no server key installed; call InstallServerKey first")
	}
	return globalKey, nil
}

// NewServerKey builds a ServerKey from a bootstrapping evaluation key set.
func NewServerKey(ev *pbs.Evaluator) *ServerKey {
	return &ServerKey{Evaluator: NewEvaluator(ev)}
}
