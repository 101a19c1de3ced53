package explorer

import (
	"time"

	"github.com/cwbudde/algo-sigexplore/dsp/filter/bank"
)

// Observer receives recomputation events. Implementations must be cheap;
// they run synchronously inside Recompute.
type Observer interface {
	// ObserveRecompute reports one Recompute call, successful or not.
	ObserveRecompute(path bank.Path, d time.Duration, err error)
	// ObserveNoise reports a noise lookup; hit is true when the cached
	// vector was reused.
	ObserveNoise(hit bool)
}

type nopObserver struct{}

func (nopObserver) ObserveRecompute(bank.Path, time.Duration, error) {}
func (nopObserver) ObserveNoise(bool)                                {}
