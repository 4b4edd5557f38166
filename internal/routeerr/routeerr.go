// Package routeerr defines the closed set of error kinds used across the
// core (§7). Kinds are distinguished by sentinel wrapping, matched with
// errors.Is/errors.As, following the teacher's errors.Is(err, pgx.ErrNoRows)
// idiom rather than a third-party errors package.
package routeerr

import "fmt"

// Sentinel kinds. Wrap with fmt.Errorf("...: %w", KindX) to attach context.
var (
	// ErrInvalidInput marks an unknown city, malformed coordinate, or
	// out-of-range enum. Propagated to the caller (§7).
	ErrInvalidInput = fmt.Errorf("invalid input")

	// ErrRoutingServiceUnavailable marks a transient external failure from
	// C7; the caller substitutes synthesized fallback geometry.
	ErrRoutingServiceUnavailable = fmt.Errorf("routing service unavailable")

	// ErrNoRoute marks an upstream routing-service response with no usable
	// route (distinct from a transport-level failure). The search entry point
	// also returns it when no strategy produces a route.
	ErrNoRoute = fmt.Errorf("no route from routing service")

	// ErrInvalidSegment marks a §3 segment invariant violation. Caught
	// within a strategy; the next strategy runs.
	ErrInvalidSegment = fmt.Errorf("invalid segment")

	// ErrInvalidRoute marks a §3 route invariant violation at assembly time.
	ErrInvalidRoute = fmt.Errorf("invalid route")

	// ErrUnknownCity marks a city identifier absent from the catalog, a
	// specialization of ErrInvalidInput used by the search entry point.
	ErrUnknownCity = fmt.Errorf("%w: unknown city", ErrInvalidInput)
)

// Wrap attaches context to a sentinel kind while keeping it matchable with
// errors.Is.
func Wrap(kind error, format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, kind)...)
}
