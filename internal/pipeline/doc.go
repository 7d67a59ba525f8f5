// Package pipeline drives one voicecal run from audio file to calendar event.
//
// A run moves through fixed states:
//
//	Transcribing → Extracting → Completing → Building → Submitting → Listing → Done
//
// and stops in Failed at the first fatal error. Every stage depends on a
// narrow interface so tests can replace transcription, prompting and the
// calendar with fakes. Dry-run mode stops after Building.
package pipeline
