// Package lifecycle holds shared constants for component startup and shutdown.
package lifecycle

import "time"

// DefaultTimeout bounds lifecycle hooks like server shutdown and DB pings.
const DefaultTimeout = 10 * time.Second
