// Package profile provides optional runtime profiling for bmk.
//
// Profiling is compiled in only with the "pprof" build tag and uses
// [github.com/pkg/profile]. Without the tag every [Profiler] is a no-op and
// [Modes] is empty.
//
//	p := profile.Profiler{Mode: "cpu", Path: "/tmp/bmk"}
//	defer p.Start().Stop()
//
// Supported modes are allocs, block, clock, cpu, goroutine, heap, mem,
// mutex, thread and trace. Profile files are written to Path with names
// matching the mode (cpu.pprof, mem.pprof, ...) and are read with
// go tool pprof:
//
//	go build -tags pprof ./...
//	bmk --pprof-mode cpu --pprof-dir ./prof
//	go tool pprof -http=: ./prof/cpu.pprof
//
// Building with the tag also registers the [net/http/pprof] handlers.
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
