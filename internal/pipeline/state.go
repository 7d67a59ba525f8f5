package pipeline

// State is a step of a run.
type State string

const (
	StateTranscribing State = "transcribing"
	StateExtracting   State = "extracting"
	StateCompleting   State = "completing"
	StateBuilding     State = "building"
	StateSubmitting   State = "submitting"
	StateListing      State = "listing"
	StateDone         State = "done"
	StateFailed       State = "failed"
)
