package weather

import "context"

// Source abstracts the active backend: either the public weather API or the
// prediction backend. A Source only moves bytes; parsing is Normalize's job.
type Source interface {
	Name() string
	Kind() PayloadKind
	Fetch(ctx context.Context, loc Location) (RawPayload, error)
}

// Invalidator is implemented by caching sources so an explicit retry can
// bypass a cached payload.
type Invalidator interface {
	Invalidate(loc Location)
}

// Locator resolves a city name to a Location with coordinates.
type Locator interface {
	Locate(ctx context.Context, city string) (Location, error)
}
