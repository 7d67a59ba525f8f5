// Package form walks a fixed schedule of event fields and asks the user
// for every value that is still missing.
//
// Values that are already present are never overwritten. Optional fields
// are asked once; mandatory fields are asked again until a non-empty
// answer arrives, the attempt limit is reached, the context is cancelled
// or input ends.
//
// Input is read through a LineReader. NewScannerReader works on any
// io.Reader; NewTerminalReader adds line editing when stdin is a TTY.
package form
