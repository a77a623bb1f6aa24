// Package domain defines the core value types for the MindFuel daily
// quotes service.
//
// Types in this package are pure value objects with no behavior beyond
// validation, no database dependencies, and no transport concerns. They are
// the shared language between the delivery service, the store, and the
// mail transports.
//
// Rules for this package:
//   - No imports from other internal/ packages
//   - No *sql.DB, no http.Request, no context.Context in struct fields
//   - JSON/DB tags are allowed (they're metadata, not behavior)
//   - Constants and enums belong here
package domain
