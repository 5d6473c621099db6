package profile

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/spf13/pflag"
)

// Flags holds CLI flag names, allowing callers to customize flag names while
// keeping sensible defaults via [NewConfig].
type Flags struct {
	CPU  string
	Heap string
}

// Config holds profile output paths. Empty paths disable the profile.
type Config struct {
	Flags Flags
	CPU   string
	Heap  string
}

// NewConfig returns a new [Config] with default flag names and profiling
// disabled.
func NewConfig() *Config {
	return &Config{
		Flags: Flags{
			CPU:  "cpu-profile",
			Heap: "heap-profile",
		},
	}
}

// RegisterFlags adds hidden profiling flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.CPU, c.Flags.CPU, "", "write a CPU profile to file")
	flags.StringVar(&c.Heap, c.Flags.Heap, "", "write a heap profile to file")

	for _, name := range []string{c.Flags.CPU, c.Flags.Heap} {
		// MarkHidden only fails for unknown flags.
		_ = flags.MarkHidden(name)
	}
}

// Session is a running profile. Create one with [Config.Start].
type Session struct {
	cpu  *os.File
	heap string
}

// Start begins CPU profiling if enabled. The returned [Session] must be
// stopped to flush the profiles.
func (c *Config) Start() (*Session, error) {
	s := &Session{heap: c.Heap}

	if c.CPU == "" {
		return s, nil
	}

	f, err := os.Create(c.CPU)
	if err != nil {
		return nil, fmt.Errorf("create cpu profile: %w", err)
	}

	err = pprof.StartCPUProfile(f)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("start cpu profile: %w", err), f.Close())
	}

	s.cpu = f

	return s, nil
}

// Stop ends CPU profiling and writes the heap profile, if enabled.
func (s *Session) Stop() error {
	var errs []error

	if s.cpu != nil {
		pprof.StopCPUProfile()

		err := s.cpu.Close()
		if err != nil {
			errs = append(errs, fmt.Errorf("close cpu profile: %w", err))
		}

		s.cpu = nil
	}

	if s.heap != "" {
		err := writeHeap(s.heap)
		if err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func writeHeap(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create heap profile: %w", err)
	}

	defer func() {
		closeErr := f.Close()
		if err == nil && closeErr != nil {
			err = fmt.Errorf("close heap profile: %w", closeErr)
		}
	}()

	// Collect garbage so the profile reflects live objects.
	runtime.GC()

	err = pprof.WriteHeapProfile(f)
	if err != nil {
		return fmt.Errorf("write heap profile: %w", err)
	}

	return nil
}
