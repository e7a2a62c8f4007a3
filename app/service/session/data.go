package session

import (
	_ "embed"
	"strings"
)

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is a single role-tagged message of a dialog. The system turn is
// synthesized per request and never stored.
type Turn struct {
	Role    Role
	Content string
}

//go:embed persona_default.txt
var defaultPersona string

// DefaultPersona is the system prompt used for users without a persona override.
func DefaultPersona() string {
	return strings.TrimSpace(defaultPersona)
}

type state struct {
	persona string
	history []Turn
}
