// Package rules evaluates user-supplied Lisp rule scripts against each
// equipment element before sleeve placement. A script can inspect the
// equipment context and skip the placement or override the matcher
// tolerance and the diameter clearance. Scripts run in a sandboxed
// zygomys environment with a hard evaluation timeout.
package rules

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	zygo "github.com/glycerine/zygomys/zygo"
)

// Context is the equipment snapshot a rule script can inspect.
type Context struct {
	EquipmentName    string
	SleeveDiameterMM float64
	HostCount        int
	// HostCategory is the category of the first intersecting host
	// (walls sort before beams), empty when nothing intersects.
	HostCategory string
}

// Decision is what a script decided for one equipment element. Nil
// pointers mean "no override".
type Decision struct {
	Skip        bool
	Reason      string
	ToleranceFt *float64
	ClearanceMM *float64
}

// EvalError represents a non-fatal error in a rule script, such as a
// parse error or a runtime error in user code.
type EvalError struct {
	Line    int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Engine evaluates rule scripts. It is safe for concurrent use; each
// call to Evaluate creates a fresh sandboxed environment so one
// element's evaluation can never leak state into the next.
type Engine struct {
	mu         sync.Mutex
	generation uint64
}

// NewEngine creates a new Engine instance.
func NewEngine() *Engine {
	return &Engine{}
}

// Evaluate runs source against ctx and reports what the script decided.
//
// Return semantics:
//   - On success: decision + nil errors + nil error
//   - On parse/eval failure: zero decision + eval errors + nil error
//   - On fatal failure (timeout, panic): zero decision + nil + error
//
// An empty source is a valid script that decides nothing.
func (e *Engine) Evaluate(source string, ctx Context) (Decision, []EvalError, error) {
	e.mu.Lock()
	e.generation++
	gen := e.generation
	e.mu.Unlock()

	ch := make(chan evalResult, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- evalResult{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
		}()

		d, evalErrs := evaluate(source, ctx)
		ch <- evalResult{decision: d, errors: evalErrs}
	}()

	return waitWithTimeout(ch, gen, &e.mu, &e.generation)
}

// evaluate performs the actual zygomys evaluation in a fresh sandbox.
func evaluate(source string, ctx Context) (Decision, []EvalError) {
	var d Decision
	if strings.TrimSpace(source) == "" {
		return d, nil
	}

	// Sandbox mode keeps user code away from the filesystem and syscalls.
	env := zygo.NewZlispSandbox()
	defer env.Stop()

	registerBuiltins(env, ctx, &d)

	if err := env.LoadString(preprocessSource(source)); err != nil {
		return Decision{}, parseZygomysError(err)
	}
	if _, err := env.Run(); err != nil {
		return Decision{}, parseZygomysError(err)
	}
	return d, nil
}

// linePattern matches zygomys error messages that include "Error on line N: ..."
var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

// linePatternShort matches simpler "line N: ..." patterns.
var linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)

// parseZygomysError converts a zygomys error into one or more EvalError
// values, extracting line numbers where the message carries them.
func parseZygomysError(err error) []EvalError {
	msg := err.Error()

	if m := linePattern.FindStringSubmatch(msg); m != nil {
		line, _ := strconv.Atoi(m[1])
		return []EvalError{{Line: line, Message: strings.TrimSpace(m[2])}}
	}
	if m := linePatternShort.FindStringSubmatch(msg); m != nil {
		line, _ := strconv.Atoi(m[1])
		return []EvalError{{Line: line, Message: strings.TrimSpace(m[2])}}
	}
	return []EvalError{{Message: strings.TrimSpace(msg)}}
}
