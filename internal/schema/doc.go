// Package schema validates inbound trees against declared entity schemas and
// enforces declared response shapes on outbound values.
//
// Schemas and the enum Registry are built once at startup and are immutable
// afterwards; Validator and Enforcer keep no state of their own, so all of
// them can be shared freely between concurrent requests.
package schema
