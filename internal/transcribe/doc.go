// Package transcribe turns a local audio file into text.
//
// The Transcriber interface is the only thing the pipeline depends on.
// AssemblyAI is the production implementation; it uploads the file,
// waits for the transcript to finish and reports a failed transcript
// as an *Error carrying the service's status and message.
package transcribe
