// Package tools implements the gateway's tool surface: the registry of
// tool descriptors with their JSON schemas, the handlers behind each
// tool, and the executor that validates arguments and runs calls.
//
// Handlers never return Go errors. Every failure a caller can provoke
// (bad arguments, unknown timezones, expression errors, command
// failures) is reported inside the Result payload so the transport can
// deliver it as a successful tool response.
package tools
