package counting

import (
	"fmt"

	"github.com/vnykmshr/gridflow/pkg/grid"
	"github.com/vnykmshr/gridflow/pkg/partition"
	"github.com/vnykmshr/gridflow/pkg/scheduling/tilepool"
)

// State is a step of the per-run lifecycle.
type State int

const (
	// StateInit is the state of a freshly created run.
	StateInit State = iota

	// StatePartitioned means assignments (or the tile pool) are ready.
	StatePartitioned

	// StateRunning means workers have been started.
	StateRunning

	// StateJoined means every worker has returned.
	StateJoined

	// StateDone means the result was read. It is terminal.
	StateDone
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StatePartitioned:
		return "partitioned"
	case StateRunning:
		return "running"
	case StateJoined:
		return "joined"
	case StateDone:
		return "done"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// run is the context of one Count call. It is shared by reference with
// every worker; only acc and the dispenser are mutated concurrently.
type run struct {
	config Config
	grid   *grid.Grid
	geom   grid.Geometry
	acc    Accumulator
	state  State

	bands     []grid.Region
	ranges    []partition.Range
	dispenser tilepool.Dispenser
}

func newRun(config Config, g *grid.Grid) *run {
	r := &run{config: config, grid: g, state: StateInit}
	if config.OnStateChange != nil {
		config.OnStateChange(StateInit)
	}
	return r
}

// advance moves to the next state. Skipping or repeating a state is a
// programming error.
func (r *run) advance(next State) {
	if next != r.state+1 {
		panic(fmt.Sprintf("counting: invalid transition %s -> %s", r.state, next))
	}
	r.state = next
	if r.config.OnStateChange != nil {
		r.config.OnStateChange(next)
	}
}
