package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthenticated(t *testing.T) {
	state := NewSessionState()
	assert.False(t, state.Authenticated())

	state.GuestMode = true
	assert.True(t, state.Authenticated())

	state = NewSessionState()
	state.User = &User{ID: "123", Email: "a@b.c"}
	assert.True(t, state.Authenticated())
}

func TestChatOrderSurvivesRemoval(t *testing.T) {
	state := NewSessionState()
	state.AddChat(&ChatThread{ChatID: "a"})
	state.AddChat(&ChatThread{ChatID: "b"})
	state.AddChat(&ChatThread{ChatID: "c"})

	require.True(t, state.RemoveChat("b"))
	assert.False(t, state.RemoveChat("b"))

	chats := state.OrderedChats()
	require.Len(t, chats, 2)
	assert.Equal(t, "a", chats[0].ChatID)
	assert.Equal(t, "c", chats[1].ChatID)
}

func TestResetClearsEverything(t *testing.T) {
	state := NewSessionState()
	state.User = &User{ID: "123"}
	state.GuestMode = true
	state.AddChat(&ChatThread{ChatID: "a"})

	state.Reset()

	assert.Nil(t, state.User)
	assert.False(t, state.GuestMode)
	assert.Empty(t, state.Chats)
	assert.Empty(t, state.ChatOrder)
	assert.False(t, state.Authenticated())
}
