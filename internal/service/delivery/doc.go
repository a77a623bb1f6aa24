// Package delivery implements the daily quote delivery run.
//
// The orchestrator drives the whole job: ensure storage schema, fetch the
// quote of the day, dispatch to the daily tier (and the weekly tier on
// Mondays), record one outcome per recipient, and always finish with a
// summary email to the administrator. All business decisions live here; the
// quote client, the mail transports, and the Postgres store are thin I/O
// collaborators behind the interfaces in repository.go.
package delivery
