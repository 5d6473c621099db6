// Package profile writes pprof profiles of a single fzf-keys run.
//
// Profiling is off unless one of the hidden --cpu-profile or --heap-profile
// flags names an output file. It exists to investigate slow parses of large
// configs:
//
//	fzf-keys --cpu-profile=cpu.prof --niri-config=big.kdl >/dev/null
//	go tool pprof cpu.prof
package profile
