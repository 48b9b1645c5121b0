package selectable

import "gridsel/internal/domain"

// Version is the store version reported to extensions
const Version = "0.22.1"

// Item is a wrapped handle for one registered cell
type Item struct {
	Pos      domain.Pos
	Selected bool
}

// Option configures a Store
type Option func(*Store)

// WithVersion overrides the version the store reports
func WithVersion(v string) Option {
	return func(s *Store) {
		if v != "" {
			s.version = v
		}
	}
}
