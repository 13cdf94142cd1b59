package menv

import (
	"fmt"
	"maps"
	"os"
	"sync"
	"sync/atomic"
)

// Environment is where exported values are written.
type Environment interface {
	LookupEnv(key string) (string, bool)
	Setenv(key, value string) error
}

// OSEnvironment is the process environment.
type OSEnvironment struct{}

// LookupEnv wraps os.LookupEnv.
func (OSEnvironment) LookupEnv(key string) (string, bool) {
	return os.LookupEnv(key)
}

// Setenv wraps os.Setenv.
func (OSEnvironment) Setenv(key, value string) error {
	err := os.Setenv(key, value)
	if err != nil {
		return fmt.Errorf("setting %s: %w", key, err)
	}

	return nil
}

// MapEnvironment is an in-memory Environment, safe for concurrent use.
type MapEnvironment struct {
	mu   sync.RWMutex
	vars map[string]string
}

// NewMapEnvironment returns a MapEnvironment seeded with a copy of vars.
func NewMapEnvironment(vars map[string]string) *MapEnvironment {
	seeded := make(map[string]string, len(vars))
	maps.Copy(seeded, vars)

	return &MapEnvironment{vars: seeded}
}

// LookupEnv returns the variable named key.
func (e *MapEnvironment) LookupEnv(key string) (string, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	value, ok := e.vars[key]

	return value, ok
}

// Setenv sets the variable named key.
func (e *MapEnvironment) Setenv(key, value string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.vars[key] = value

	return nil
}

// Map returns a copy of all variables.
func (e *MapEnvironment) Map() map[string]string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return maps.Clone(e.vars)
}

// Attacher receives every successful Load result.
type Attacher interface {
	Attach(res *Result)
}

// Holder is an Attacher that keeps the latest result.
type Holder struct {
	current atomic.Pointer[Result]
}

// Attach stores res as the current result.
func (h *Holder) Attach(res *Result) {
	h.current.Store(res)
}

// Current returns the latest attached result, or nil.
func (h *Holder) Current() *Result {
	return h.current.Load()
}

func export(res *Result, env Environment, override bool) error {
	environ := res.Environ()

	for _, key := range res.Parsed.Keys() {
		if !override {
			_, exists := env.LookupEnv(key)
			if exists {
				continue
			}
		}

		err := env.Setenv(key, environ[key])
		if err != nil {
			return fmt.Errorf("exporting %s: %w", key, err)
		}
	}

	return nil
}
