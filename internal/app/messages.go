package app

import (
	"time"

	"github.com/jwulff/strata/internal/catalog"
)

// CatalogLoadedMsg carries a freshly loaded periods/events snapshot.
type CatalogLoadedMsg struct {
	Catalog *catalog.Catalog
	Source  string
}

// CatalogErrorMsg is sent when a catalog cannot be loaded or attached.
type CatalogErrorMsg struct {
	Err error
}

// MotionTickMsg drives the indicator motion. Ticks from a superseded
// motion are ignored.
type MotionTickMsg struct {
	Generation uint64
	At         time.Time
}

// ClearTransientErrorMsg clears a transient error after a timeout.
type ClearTransientErrorMsg struct{}
