package main

import (
	"context"
	"math/rand/v2"
	"runtime"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/plus3/scenedit/command"
	"github.com/plus3/scenedit/editor"
	"github.com/plus3/scenedit/scene"
)

// Options controls a benchmark run. The run stops after Ops operations or
// when Duration elapses, whichever comes first. Zero disables either limit.
type Options struct {
	Ops       int
	Duration  time.Duration
	Entities  int
	Capacity  int
	DragSteps int
	Seed      uint64
	Rewind    bool
	GCMetrics bool
}

type opKind int

const (
	opDrag opKind = iota
	opCreate
	opCreateChild
	opDestroy
	opDuplicate
	opUndoRedo
	opCount
)

var opNames = [opCount]string{
	opDrag:        "drag",
	opCreate:      "create",
	opCreateChild: "create-child",
	opDestroy:     "destroy",
	opDuplicate:   "duplicate",
	opUndoRedo:    "undo-redo",
}

// weights must sum to 100.
var opWeights = [opCount]int{
	opDrag:        40,
	opCreate:      12,
	opCreateChild: 12,
	opDestroy:     10,
	opDuplicate:   8,
	opUndoRedo:    18,
}

type bench struct {
	opts   Options
	rng    *rand.Rand
	sess   *editor.Session
	report *Report
	stats  [opCount]*Stats
}

// Run drives a fresh editor session with randomized commands and reports
// how long each kind of operation took.
func Run(ctx context.Context, opts Options, logger zerolog.Logger) (*Report, error) {
	cfg := editor.DefaultConfig()
	cfg.HistoryCapacity = opts.Capacity
	cfg.SceneName = "Bench"

	b := &bench{
		opts: opts,
		rng:  rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15)),
		sess: editor.NewSession(cfg, logger),
		report: &Report{
			Options:  opts,
			Capacity: opts.Capacity,
		},
	}
	defer b.sess.Shutdown()
	if b.report.Capacity <= 0 {
		b.report.Capacity = b.sess.History().Capacity()
	}
	for i := range b.stats {
		b.stats[i] = &Stats{Name: opNames[i]}
	}

	if err := b.populate(); err != nil {
		return nil, err
	}

	if opts.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Duration)
		defer cancel()
	}

	runtime.ReadMemStats(&b.report.MemStatsStart)
	start := time.Now()

Loop:
	for opts.Ops <= 0 || b.report.Operations < opts.Ops {
		select {
		case <-ctx.Done():
			break Loop
		default:
		}

		kind := b.pick()
		opStart := time.Now()
		err := b.step(kind)
		b.stats[kind].Samples = append(b.stats[kind].Samples, time.Since(opStart))
		b.report.Operations++
		if err != nil {
			b.report.Failures++
			logger.Debug().Err(err).Str("op", opNames[kind]).Msg("operation failed")
		}
	}

	b.report.TotalTime = time.Since(start)
	runtime.ReadMemStats(&b.report.MemStatsEnd)

	b.report.HistoryLen = b.sess.History().Len()
	b.report.Cursor = b.sess.History().Cursor()
	b.report.FinalEntities = b.sess.Scene().Len()
	b.report.Archetypes = b.sess.Scene().Storage().CollectStats().ArchetypeCount

	for _, s := range b.stats {
		s.Finalize()
		if len(s.Samples) > 0 {
			b.report.Ops = append(b.report.Ops, s)
		}
	}

	if opts.Rewind {
		b.rewind()
	}
	return b.report, nil
}

// populate builds the starting scene through commands, then forgets them so
// a rewind ends at the populated scene rather than an empty one.
func (b *bench) populate() error {
	for i := 0; i < b.opts.Entities; i++ {
		if _, err := b.sess.CreateEntity(""); err != nil {
			return eris.Wrap(err, "populate scene")
		}
	}
	b.sess.History().Reset()
	b.sess.Scene().ClearDirty()
	b.report.InitialEntities = b.sess.Scene().Len()
	return nil
}

func (b *bench) pick() opKind {
	n := b.rng.IntN(100)
	for kind, w := range opWeights {
		if n < w {
			return opKind(kind)
		}
		n -= w
	}
	return opDrag
}

// target returns a random live entity, or false for an empty scene.
func (b *bench) target() (scene.UUID, bool) {
	entities := b.sess.Scene().Entities()
	if len(entities) == 0 {
		return 0, false
	}
	return entities[b.rng.IntN(len(entities))].UUID(), true
}

func (b *bench) step(kind opKind) error {
	switch kind {
	case opCreate:
		_, err := b.sess.CreateEntity("")
		return err
	case opUndoRedo:
		return b.undoRedo()
	}

	id, ok := b.target()
	if !ok {
		_, err := b.sess.CreateEntity("")
		return err
	}

	switch kind {
	case opDrag:
		return b.drag(id)
	case opCreateChild:
		_, err := b.sess.CreateChild(id, "")
		return err
	case opDestroy:
		return b.sess.Destroy(id)
	case opDuplicate:
		_, err := b.sess.Duplicate(id)
		return err
	}
	return nil
}

// drag mimics a slider held for DragSteps frames: every step merges into one entry.
func (b *bench) drag(id scene.UUID) error {
	field := command.Translation(id)
	pos := mgl32.Vec3{b.rng.Float32(), b.rng.Float32(), b.rng.Float32()}
	steps := max(b.opts.DragSteps, 1)
	for i := 0; i < steps; i++ {
		pos = pos.Add(mgl32.Vec3{0.1, 0, 0})
		if err := editor.Set(b.sess, field, pos); err != nil {
			return err
		}
	}
	b.sess.EndEdit()
	b.report.DragSteps += steps
	return nil
}

func (b *bench) undoRedo() error {
	undos := b.rng.IntN(5) + 1
	for i := 0; i < undos; i++ {
		if err := b.sess.Undo(); err != nil {
			return err
		}
	}
	redos := b.rng.IntN(undos + 1)
	for i := 0; i < redos; i++ {
		if err := b.sess.Redo(); err != nil {
			return err
		}
	}
	b.report.Undos += undos
	b.report.Redos += redos
	return nil
}

// rewind undoes every recorded command.
func (b *bench) rewind() {
	h := b.sess.History()
	start := time.Now()
	for h.CanUndo() {
		if err := b.sess.Undo(); err != nil {
			b.report.Failures++
			break
		}
	}
	b.report.RewindTime = time.Since(start)
	b.report.Rewound = true
	b.report.RewoundEntities = b.sess.Scene().Len()
}
