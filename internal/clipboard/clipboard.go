// Package clipboard writes text to a clipboard. System talks to the host
// clipboard through the platform's command-line tool; Memory records writes
// in-process for batch runs and tests.
package clipboard

import "errors"

// ErrUnavailable is returned when no clipboard tool can be found on the
// host.
var ErrUnavailable = errors.New("no clipboard tool available")
