// Package solver exposes the common capability set every MAPF algorithm in
// this repository implements (spec.md §9 "Polymorphism across solvers"),
// plus the shared timing/seeding/options base each embeds.
package solver

import (
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/elektrokombinacija/mapf-solver/internal/grid"
	"github.com/elektrokombinacija/mapf-solver/internal/mapf"
)

// Solver is the capability set every algorithm in this package exposes.
// No inheritance is needed: tagged dispatch (cmd/mapf's command table)
// suffices, per spec.md §9.
type Solver interface {
	Name() string
	SetVerbose(bool)
	Solve(p *grid.Problem) error
	Succeed() bool
	Solution() mapf.Plan
}

// Base is the shared timing/seeding/options/result-reporting
// infrastructure spec.md §2's "Solver base" row names. Every concrete
// solver embeds *Base and owns it exclusively: no process-wide RNG or
// clock singletons (spec.md §9).
type Base struct {
	Seed        uint64
	MaxCompTime time.Duration
	Verbose     bool

	Rng    *rand.Rand
	Logger *log.Logger

	startedAt     time.Time
	solved        bool
	plan          mapf.Plan
	exploredNodes int
}

// NewBase constructs a Base with a seeded RNG and a quiet-by-default
// logger (verbosity is opt-in, per SPEC_FULL.md's ambient logging stack).
func NewBase(seed uint64, maxCompTimeMS int) *Base {
	logger := log.New(log.NewWithOptions(nil, log.Options{}).StandardLog().Writer())
	logger.SetLevel(log.WarnLevel)
	return &Base{
		Seed:        seed,
		MaxCompTime: time.Duration(maxCompTimeMS) * time.Millisecond,
		Rng:         rand.New(rand.NewSource(int64(seed))),
		Logger:      logger,
	}
}

// SetVerbose raises or lowers the embedded logger's level.
func (b *Base) SetVerbose(v bool) {
	b.Verbose = v
	if v {
		b.Logger.SetLevel(log.InfoLevel)
	} else {
		b.Logger.SetLevel(log.WarnLevel)
	}
}

// StartClock marks the beginning of a Solve call; OverCompTime reports
// elapsed time against it.
func (b *Base) StartClock() {
	b.startedAt = time.Now()
}

// OverCompTime is the cooperative cancellation check spec.md §5 requires
// at every high-level iteration and low-level expansion.
func (b *Base) OverCompTime() bool {
	return b.MaxCompTime > 0 && time.Since(b.startedAt) > b.MaxCompTime
}

// ElapsedTime returns time since StartClock.
func (b *Base) ElapsedTime() time.Duration {
	return time.Since(b.startedAt)
}

// MarkSolved records the final result. plan is copied out of any
// internal search state before the owning solver's tree is discarded
// (spec.md §5's "scoped acquisition tied to the solver object's lifetime").
func (b *Base) MarkSolved(plan mapf.Plan) {
	b.solved = true
	b.plan = plan
}

// Succeed reports whether Solve found a valid plan.
func (b *Base) Succeed() bool { return b.solved }

// Solution returns the plan found by Solve, or nil if Succeed() is false.
func (b *Base) Solution() mapf.Plan { return b.plan }

// NodeExpanded increments the high-level-node counter and reports whether
// it now exceeds the solver's node cap (0 = unbounded), so up to cap nodes
// are expanded.
func (b *Base) NodeExpanded(cap int) bool {
	b.exploredNodes++
	return cap > 0 && b.exploredNodes > cap
}

// ExploredNodes returns the number of high-level nodes expanded so far.
func (b *Base) ExploredNodes() int { return b.exploredNodes }
