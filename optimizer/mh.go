package optimizer

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/archfloor/doorplan"
	"github.com/archfloor/doorplan/door"
	"github.com/archfloor/doorplan/halfedge"
)

// SamplePoints draws n points uniformly from the unit square and keeps
// only those that fall within a live face of mesh, grounded on
// e_multi_doors.py's make_sample_points (rejection sampling against
// `fp.is_inside`, here `mesh.LocatePoint(p) >= 0`). The floor plan is
// assumed normalized to [0,1]^2 by the OBJ loader, per spec.md §6.
func SamplePoints(mesh *halfedge.Mesh, n int, rng *rand.Rand) []geom.Point {
	points := make([]geom.Point, 0, n)
	for len(points) < n {
		p := geom.NewPoint(rng.Float64(), rng.Float64())
		if mesh.LocatePoint(p) >= 0 {
			points = append(points, p)
		}
	}
	return points
}

type bestState struct {
	edge  int
	ratio float64
}

// Optimizer runs the Metropolis-Hastings search over a door system's
// positions, grounded on original_source/o_optimizer.py's MHOptimizer.
type Optimizer struct {
	mesh    *halfedge.Mesh
	system  *door.System
	doors   []*door.Door
	samples []geom.Point
	rng     *rand.Rand

	temperature float64
	sigma       float64

	started bool

	// Losses records the accepted score at every accepted step, for
	// callers that want to plot convergence (o_optimizer.py's losses log).
	Losses []float64

	prevScore float64
	bestScore float64
	best      map[*door.Door]bestState
}

// New constructs an Optimizer bound to a door system and mesh. samples
// is the fixed batch of sample points the objective is evaluated over
// each step; sigma is the standard deviation of each proposed door
// move; temperature is the MH acceptance temperature T.
func New(mesh *halfedge.Mesh, sys *door.System, samples []geom.Point, temperature, sigma float64, rng *rand.Rand) *Optimizer {
	return &Optimizer{
		mesh:        mesh,
		system:      sys,
		doors:       sys.Doors(),
		samples:     samples,
		rng:         rng,
		temperature: temperature,
		sigma:       sigma,
		best:        make(map[*door.Door]bestState),
	}
}

// Init evaluates the starting objective and seeds the best-so-far
// state, grounded on MHOptimizer.init.
func (o *Optimizer) Init() {
	o.started = true
	o.Losses = nil
	o.prevScore = Objective(o.mesh, o.system, o.doors, o.samples)
	o.updateBest(o.prevScore)
}

// Step proposes one random move per optimizable door, evaluates the new
// objective, and accepts or rejects it by the Metropolis criterion,
// annealing the temperature afterward either way, grounded on
// MHOptimizer.step.
func (o *Optimizer) Step() error {
	for _, d := range o.doors {
		if !d.Active || !d.NeedOptimization {
			continue
		}
		delta := o.rng.NormFloat64() * o.sigma
		if err := o.system.Step(d, delta); err != nil {
			return fmt.Errorf("optimizer: propose: %w", err)
		}
	}

	newScore := Objective(o.mesh, o.system, o.doors, o.samples)
	df := newScore - o.prevScore
	alpha := math.Exp(-df / o.temperature)

	if o.rng.Float64() < alpha {
		o.prevScore = newScore
		o.Losses = append(o.Losses, newScore)
		if newScore < o.bestScore {
			o.updateBest(newScore)
		}
	} else {
		for _, d := range o.doors {
			if !d.Active || !d.NeedOptimization {
				continue
			}
			if err := o.system.Reject(d); err != nil {
				return fmt.Errorf("optimizer: reject: %w", err)
			}
		}
	}

	o.temperature *= 0.99
	return nil
}

// End restores every door to its best-so-far (edge, ratio), grounded on
// MHOptimizer.end.
func (o *Optimizer) End() error {
	if !o.started {
		return fmt.Errorf("optimizer: not started")
	}
	for _, d := range o.doors {
		state, ok := o.best[d]
		if !ok {
			continue
		}
		if err := o.system.LoadManually(d, state.edge, state.ratio); err != nil {
			return err
		}
	}
	o.started = false
	return nil
}

// Run drives Step for a fixed number of iterations and then calls End,
// grounded on MHOptimizer.run. Callers that want to observe progress
// between iterations (e.g. to drive a UI) should call Step/End
// directly instead.
func (o *Optimizer) Run(steps int) error {
	for i := 0; i < steps; i++ {
		if err := o.Step(); err != nil {
			return err
		}
	}
	return o.End()
}

// BestScore returns the best objective value observed since Init.
func (o *Optimizer) BestScore() float64 { return o.bestScore }

// PrevScore returns the most recently accepted objective value.
func (o *Optimizer) PrevScore() float64 { return o.prevScore }

func (o *Optimizer) updateBest(score float64) {
	o.bestScore = score
	for _, d := range o.doors {
		edge, ratio := d.GetState()
		o.best[d] = bestState{edge: edge, ratio: ratio}
	}
}
