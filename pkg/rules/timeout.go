package rules

import (
	"fmt"
	"sync"
	"time"
)

// EvalTimeout is the hard limit for a single script evaluation.
const EvalTimeout = 5 * time.Second

// evalResult passes an evaluation outcome through the timeout channel.
type evalResult struct {
	decision Decision
	errors   []EvalError
	err      error
}

// waitWithTimeout waits for a result from ch, but returns a timeout
// error if the evaluation exceeds EvalTimeout. The generation counter
// discards stale results from superseded evaluations.
//
// On timeout, the goroutine may still be running; the generation check
// ensures its result is discarded when it eventually completes.
func waitWithTimeout(
	ch <-chan evalResult,
	gen uint64,
	mu *sync.Mutex,
	currentGen *uint64,
) (Decision, []EvalError, error) {
	timer := time.NewTimer(EvalTimeout)
	defer timer.Stop()

	select {
	case res := <-ch:
		mu.Lock()
		current := *currentGen
		mu.Unlock()

		if gen != current {
			return Decision{}, nil, fmt.Errorf("evaluation superseded by newer request")
		}
		return res.decision, res.errors, res.err

	case <-timer.C:
		return Decision{}, nil, fmt.Errorf("evaluation timed out after %s", EvalTimeout)
	}
}
