package spiral

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

type Profiler struct {
	Scopes     map[string]time.Duration
	StartTimes map[string]time.Time
	Counts     map[string]int
	Order      []string
}

func NewProfiler() *Profiler {
	return &Profiler{
		Scopes:     make(map[string]time.Duration),
		StartTimes: make(map[string]time.Time),
		Counts:     make(map[string]int),
		Order:      make([]string, 0),
	}
}

func (p *Profiler) track(name string) {
	for _, n := range p.Order {
		if n == name {
			return
		}
	}
	p.Order = append(p.Order, name)
}

func (p *Profiler) BeginScope(name string) {
	p.beginScopeAt(name, time.Now())
}

func (p *Profiler) beginScopeAt(name string, now time.Time) {
	p.StartTimes[name] = now
	p.track(name)
}

func (p *Profiler) EndScope(name string) {
	p.endScopeAt(name, time.Now())
}

func (p *Profiler) endScopeAt(name string, now time.Time) {
	if start, ok := p.StartTimes[name]; ok {
		p.Scopes[name] = now.Sub(start)
		delete(p.StartTimes, name)
	}
}

// SetScope records a duration measured elsewhere.
func (p *Profiler) SetScope(name string, d time.Duration) {
	p.Scopes[name] = d
	p.track(name)
}

func (p *Profiler) SetCount(name string, count int) {
	p.Counts[name] = count
}

func (p *Profiler) Reset() {
	// Keep Order, reset times
	for k := range p.Scopes {
		p.Scopes[k] = 0
	}
}

func (p *Profiler) StatsString() string {
	var sb strings.Builder

	sb.WriteString("Timings (CPU):\n")
	for _, name := range p.Order {
		ms := float64(p.Scopes[name].Microseconds()) / 1000.0
		sb.WriteString(fmt.Sprintf("  %-15s: %.2f ms\n", name, ms))
	}

	sb.WriteString("Stats:\n")
	keys := make([]string, 0, len(p.Counts))
	for k := range p.Counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		sb.WriteString(fmt.Sprintf("  %-15s: %d\n", k, p.Counts[k]))
	}

	return sb.String()
}

// ProfilerModule times each frame and the render stages and logs a report
// at debug level every ReportEvery. Install it after GalaxyModule.
type ProfilerModule struct {
	ReportEvery time.Duration
}

type profilerReport struct {
	every   time.Duration
	elapsed time.Duration
}

func (mod ProfilerModule) Install(app *App, cmd *Commands) {
	every := mod.ReportEvery
	if every <= 0 {
		every = 5 * time.Second
	}
	cmd.AddResources(NewProfiler(), &profilerReport{every: every})

	app.UseSystem(System(func(p *Profiler) { p.BeginScope("frame") }).InStage(Prelude).RunAlways())
	app.UseSystem(System(func(p *Profiler) { p.BeginScope("render") }).InStage(PreRender).RunAlways())
	app.UseSystem(System(func(p *Profiler) { p.EndScope("render") }).InStage(PostRender).RunAlways())
	app.UseSystem(System(profilerFrameEndSystem).InStage(Finale).RunAlways())
}

func profilerFrameEndSystem(p *Profiler, report *profilerReport, galaxyState *GalaxyState, t *Time, cmd *Commands) {
	p.EndScope("frame")

	snap := galaxyState.Current()
	p.SetScope("generate", snap.Elapsed)
	p.SetCount("stars", snap.Count())
	p.SetCount("galaxy version", int(snap.Version))

	report.elapsed += t.Dt
	if report.elapsed < report.every {
		return
	}
	report.elapsed = 0
	cmd.Logger().Debugf("Frame report:\n%s", p.StatsString())
	p.Reset()
}
