// Package profile provides optional runtime profiling for the demoengine
// tools.
//
// It integrates [github.com/pkg/profile] behind the "pprof" build tag.
// When built without the tag (the default), all operations are no-ops
// with zero runtime overhead.
//
// The supported modes when built with the tag are allocs, block, clock,
// cpu, goroutine, heap, mem, mutex, thread, and trace. Use [Modes] to
// retrieve the list programmatically.
//
//	p := profile.Config(func() (string, string, bool) {
//	    return "cpu", "/tmp/profiles", false
//	})
//	defer p.Start().Stop()
//
// Profile files are written to the configured directory with names
// matching the profiling mode (cpu.pprof, mem.pprof, and so on) and are
// analyzed with go tool pprof.
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
