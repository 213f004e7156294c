package render

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/lixenwraith/echoji/prompt"
)

type staticPrompt prompt.State

func (s staticPrompt) State() prompt.State { return prompt.State(s) }

func rowText(buf *Buffer, y int) string {
	w, _ := buf.Size()
	var sb strings.Builder
	for x := 0; x < w; x++ {
		sb.WriteRune(buf.Get(x, y).Rune)
	}
	return sb.String()
}

func TestPromptRenderer_Placeholder(t *testing.T) {
	buf := NewBuffer(80, 10)
	r := &PromptRenderer{Source: staticPrompt{}}
	r.Render(Context{}, buf)
	row := rowText(buf, 7)
	assert.Contains(t, row, prompt.Placeholder)
	assert.Contains(t, row, "Release")
}

func TestPromptRenderer_TypedTextKeepsTail(t *testing.T) {
	buf := NewBuffer(30, 5)
	long := strings.Repeat("a", 40) + "END"
	r := &PromptRenderer{Source: staticPrompt{Text: long}}
	r.Render(Context{}, buf)
	row := rowText(buf, 2)
	assert.Contains(t, row, "END")
	assert.NotContains(t, row, prompt.Placeholder)
}

func TestPromptRenderer_Ack(t *testing.T) {
	buf := NewBuffer(80, 10)
	r := &PromptRenderer{Source: staticPrompt{Acked: true, AckAge: time.Second}}
	r.Render(Context{}, buf)
	row := rowText(buf, 7)
	assert.Contains(t, row, prompt.AckMessage)
	assert.NotContains(t, row, "Release")
}

func TestPromptRenderer_Visibility(t *testing.T) {
	r := &PromptRenderer{}
	assert.False(t, r.IsVisible())
	r.Source = staticPrompt{}
	assert.True(t, r.IsVisible())
	r.SetVisible(false)
	assert.False(t, r.IsVisible())
}

func TestPromptRenderer_TinyScreen(t *testing.T) {
	buf := NewBuffer(5, 2)
	r := &PromptRenderer{Source: staticPrompt{Text: "x"}}
	assert.NotPanics(t, func() { r.Render(Context{}, buf) })
}

func TestPromptRenderer_ButtonAt(t *testing.T) {
	buf := NewBuffer(80, 10)
	r := &PromptRenderer{Source: staticPrompt{}}
	r.Render(Context{}, buf)
	x := strings.Index(rowText(buf, 7), "Release")
	assert.Greater(t, x, 0)

	assert.True(t, r.ButtonAt(80, 10, x, 7))
	assert.True(t, r.ButtonAt(80, 10, x-1, 7))
	assert.False(t, r.ButtonAt(80, 10, 10, 7))
	assert.False(t, r.ButtonAt(80, 10, x, 6))

	r.Source = staticPrompt{Acked: true}
	assert.False(t, r.ButtonAt(80, 10, x, 7))
}
