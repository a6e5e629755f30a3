// Package services defines shared helpers consumed by the bridge operations
// and their transports.
//
// Key responsibilities:
//   - Context helpers that stamp correlation identifiers and the transport
//     name for logging.
//   - Structured error markers plus the Wrap helper so failures keep a
//     classifiable kind until they are flattened at the remote-call boundary.
package services
