// Package services implements the driving ports on top of the driven
// ones. Services own the caller-side concerns the storage layer does
// not: input validation, id generation, and timestamp defaulting for
// locally created records. Storage-side concerns, including every sync
// state transition, stay in the repositories.
//
// # Import Rules
//
// Services import domain and ports only. They never import an adapter
// package; the composition root wires concrete adapters in.
package services
