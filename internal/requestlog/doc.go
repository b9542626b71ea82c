// Package requestlog persists a record of gateway activity: every HTTP
// exchange and every tool invocation. The SQLite implementation is the
// production backend; Nop serves configurations with logging disabled
// and tests that don't care about persistence.
package requestlog
