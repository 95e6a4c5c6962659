package csprg

import "sync"

var (
	systemOnce sync.Once
	systemGen  *Generator
	systemErr  error
)

// System returns the process-wide Generator, lazily constructed and
// reseeded from OS entropy on first use. Per spec.md's concurrency model,
// independent callers wanting their own generator should use New rather
// than share this one — System exists for callers (the CLI, one-off
// library calls) that just want "some randomness" without managing a
// Generator's lifetime themselves.
func System() (*Generator, error) {
	systemOnce.Do(func() {
		systemGen, systemErr = New(OS, false)
	})
	return systemGen, systemErr
}
