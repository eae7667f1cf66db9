package main

import (
	"io"
	"runtime"
	"text/template"
	"time"
)

type Report struct {
	Options  Options
	Capacity int

	Operations      int
	Failures        int
	DragSteps       int
	Undos           int
	Redos           int
	InitialEntities int
	FinalEntities   int
	Archetypes      int
	HistoryLen      int
	Cursor          int
	TotalTime       time.Duration
	Ops             []*Stats

	Rewound         bool
	RewoundEntities int
	RewindTime      time.Duration

	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats
}

type Stats struct {
	Name    string
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# History Benchmark Report

## Configuration
- **Seed:** {{.Options.Seed}}
- **Initial Entities:** {{.InitialEntities}}
- **History Capacity:** {{.Capacity}}
- **Drag Steps:** {{.Options.DragSteps}}

## Results
- **Operations:** {{.Operations}} ({{.Failures}} failed)
- **Total Time:** {{.TotalTime}}
- **Drag Steps Merged:** {{.DragSteps}}
- **Undo / Redo:** {{.Undos}} / {{.Redos}}
- **History:** {{.HistoryLen}} entries, cursor at {{.Cursor}}
- **Final Entities:** {{.FinalEntities}} in {{.Archetypes}} archetypes

## Operation Timings
| Operation | Count | Avg | Min | Max |
|-----------|-------|-----|-----|-----|
{{- range .Ops}}
| {{.Name}} | {{len .Samples}} | {{.Avg}} | {{.Min}} | {{.Max}} |
{{- end}}
{{if .Rewound}}
## Rewind
- **Entities After Rewind:** {{.RewoundEntities}}
- **Rewind Time:** {{.RewindTime}}
{{end}}
## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{if .Options.GCMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
{{end}}`

	fm := template.FuncMap{
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
