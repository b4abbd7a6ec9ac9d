package widget

// Phase is the translation phase of the widget.
type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseComposing Phase = "composing"
	PhasePending   Phase = "pending"
	PhaseSettled   Phase = "settled"
	PhaseError     Phase = "error"
)

// State is an immutable snapshot of the widget.
type State struct {
	Input  string
	Output string
	Source string
	Target string
	Phase  Phase

	Speaking  bool
	Listening bool

	// Seq is the sequence number of the latest dispatched translation.
	Seq uint64
	// Revision increases with every change; consumers can drop older snapshots.
	Revision uint64
}
