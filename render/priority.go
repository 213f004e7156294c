package render

// Priority determines render order. Lower values render first
type Priority int

const (
	PriorityBackdrop Priority = iota
	PriorityField
	PriorityPrompt
	PriorityStatus
	PriorityDebug
)
