package fluxbot

// Control is the signal every handler and service returns; it decides
// whether later registrations still run for the current event.
type Control int

const (
	// Continue passes the event on to the next registration.
	Continue Control = iota

	// Skip means this registration had nothing to contribute (criteria
	// not met, lookup failed). The pipeline still proceeds; the value is
	// distinct from Continue only in intent. Handler bodies should
	// `return fluxbot.Skip` as soon as a fallible sub-expression fails.
	Skip

	// Block stops the pipeline: no later registration runs for this event.
	Block
)

func (c Control) String() string {
	switch c {
	case Continue:
		return "continue"
	case Skip:
		return "skip"
	case Block:
		return "block"
	default:
		return "unknown"
	}
}
