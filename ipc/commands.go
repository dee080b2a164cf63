package ipc

// MoveCommand asks the host to walk an agent to a position.
type MoveCommand struct {
	Agent uint64  `json:"agent"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Z     float64 `json:"z"`
}

// InteractCommand asks the host to perform the capture or defend act.
type InteractCommand struct {
	Agent uint64 `json:"agent"`
	Point int    `json:"point"`
}

// CommandsMessage is the reply to a tick. Both lists are sorted by agent.
type CommandsMessage struct {
	Instance  uint32            `json:"instance"`
	Moves     []MoveCommand     `json:"moves"`
	Interacts []InteractCommand `json:"interacts,omitempty"`
}
