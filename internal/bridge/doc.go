// Package bridge serves the remote invocation protocol over websocket.
//
// The protocol is text-framed JSON: every frame is a Message with a type,
// an optional correlation id, a timestamp, and a type-specific payload.
// On connect the server sends a listing of every known operation. Execute
// messages run through the execution engine with the server's configured
// defaults filling whatever the payload leaves out, and answer with a
// result frame mirroring the execution outcome or an error frame. Pings
// are answered with pongs echoing the id.
package bridge
