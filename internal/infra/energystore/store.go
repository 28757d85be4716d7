// Package energystore implements the domain repositories over the five
// store relations, backed by Postgres or by memory for tests/dev.
package energystore

import (
	"github.com/campuswatt/campus-energy/internal/domain/dashboard"
	"github.com/campuswatt/campus-energy/internal/domain/forecast"
	"github.com/campuswatt/campus-energy/internal/domain/seeder"
)

// Store is the union of the per-domain repository contracts; both backends
// satisfy all three.
type Store interface {
	forecast.Repository
	dashboard.Repository
	seeder.Repository
}
