// Package clock supplies time to services so calculations stay deterministic
// under test. The engine never reads the wall clock directly.
package clock

import (
	"time"

	"go.uber.org/fx"
)

type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// NewSystemClock returns a UTC wall clock.
func NewSystemClock() Clock { return systemClock{} }

var Module = fx.Module("clock",
	fx.Provide(NewSystemClock),
)
