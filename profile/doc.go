// Package profile starts optional runtime profiling through
// [github.com/pkg/profile].
//
// Profiling is compiled in only with the "pprof" build tag:
//
//	go build -tags pprof .
//	manifest --pprof-mode cpu parse Cargo.toml
//
// Without the tag, [Modes] is empty and [Profiler.Start] returns a no-op
// [Stopper]. With it, the net/http/pprof handlers are also registered on
// [net/http.DefaultServeMux].
//
// Profiles are written to the configured directory under the name of the
// mode (cpu.pprof, mem.pprof, and so on) and can be inspected with
//
//	go tool pprof -http=: cpu.pprof
package profile
