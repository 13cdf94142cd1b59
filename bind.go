package menv

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Bind fills the env-tagged fields of target from the result instead of the
// process environment.
//
//	type Config struct {
//		Port int    `env:"PORT" envDefault:"3000"`
//		URL  string `env:"URL,required"`
//	}
func (r *Result) Bind(target any) error {
	err := env.ParseWithOptions(target, env.Options{Environment: r.Environ()})
	if err != nil {
		return fmt.Errorf("binding result: %w", err)
	}

	return nil
}

// BindAs is Bind returning a new T.
func BindAs[T any](res *Result) (T, error) {
	target, err := env.ParseAsWithOptions[T](env.Options{Environment: res.Environ()})
	if err != nil {
		return target, fmt.Errorf("binding result: %w", err)
	}

	return target, nil
}
