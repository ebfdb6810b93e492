// Package wire encodes and decodes the binary protobuf payloads exchanged
// with the sync service. Message descriptors are assembled at runtime, so no
// code generation step is involved.
package wire
