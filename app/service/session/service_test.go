package session

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryIsBounded(t *testing.T) {
	store := NewStore(2)

	for i := 0; i < 7; i++ {
		if i%2 == 0 {
			store.AppendUser(1, fmt.Sprintf("msg %d", i))
		} else {
			store.AppendAssistant(1, fmt.Sprintf("msg %d", i))
		}
	}

	history := store.History(1)
	require.Len(t, history, 4)

	// the most recent turns survive, in original order
	for i, turn := range history {
		assert.Equal(t, fmt.Sprintf("msg %d", i+3), turn.Content)
	}
}

func TestHistoryShorterThanBoundIsKeptWhole(t *testing.T) {
	store := NewStore(8)

	store.AppendUser(1, "hello")
	store.AppendAssistant(1, "hi")

	history := store.History(1)
	require.Len(t, history, 2)
	assert.Equal(t, Turn{Role: RoleUser, Content: "hello"}, history[0])
	assert.Equal(t, Turn{Role: RoleAssistant, Content: "hi"}, history[1])
}

func TestPersonaDefault(t *testing.T) {
	store := NewStore(8)

	assert.Equal(t, DefaultPersona(), store.Persona(1))
	assert.NotEmpty(t, DefaultPersona())
}

func TestSetPersonaKeepsHistory(t *testing.T) {
	store := NewStore(8)

	store.AppendUser(1, "hello")
	store.SetPersona(1, "a pirate")

	assert.Equal(t, "a pirate", store.Persona(1))
	assert.Len(t, store.History(1), 1)
}

func TestResetClearsEverything(t *testing.T) {
	store := NewStore(8)

	store.SetPersona(1, "a pirate")
	store.AppendUser(1, "hello")
	store.AppendAssistant(1, "arr")

	store.Reset(1)

	assert.Equal(t, DefaultPersona(), store.Persona(1))
	assert.Empty(t, store.History(1))
}

func TestResetIsIdempotent(t *testing.T) {
	store := NewStore(8)

	store.AppendUser(1, "hello")

	store.Reset(1)
	store.Reset(1)

	assert.Equal(t, DefaultPersona(), store.Persona(1))
	assert.Empty(t, store.History(1))
}

func TestUsersAreIsolated(t *testing.T) {
	store := NewStore(8)

	store.AppendUser(1, "from one")
	store.SetPersona(2, "a poet")

	assert.Empty(t, store.History(2))
	assert.Equal(t, DefaultPersona(), store.Persona(1))
	require.Len(t, store.History(1), 1)
}
