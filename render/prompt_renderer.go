package render

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/lixenwraith/echoji/prompt"
)

const (
	promptMaxWidth = 64
	promptFadeIn   = 500 * time.Millisecond
	promptButton   = " Release "
)

// PromptSource supplies the form state each frame
type PromptSource interface {
	State() prompt.State
}

// PromptRenderer draws the input line or the acknowledgment near the bottom of the screen
type PromptRenderer struct {
	Source PromptSource
	hidden bool
}

// SetVisible toggles the prompt
func (r *PromptRenderer) SetVisible(v bool) {
	r.hidden = !v
}

// IsVisible implements VisibilityToggle
func (r *PromptRenderer) IsVisible() bool {
	return !r.hidden && r.Source != nil
}

// Render implements Renderer
func (r *PromptRenderer) Render(ctx Context, buf *Buffer) {
	w, h := buf.Size()
	if w < 8 || h < 3 {
		return
	}
	st := r.Source.State()
	y := h - 3
	width := min(promptMaxWidth, w-4)
	x0 := (w - width) / 2

	if st.Acked {
		t := min(1, float64(st.AckAge)/float64(promptFadeIn))
		fg := BlendLab(buf.Get(w/2, y).Bg, ColorText, 0.8*t)
		msg := prompt.AckMessage
		buf.SetString((w-utf8.RuneCountInString(msg))/2, y, msg, fg)
		return
	}

	button := utf8.RuneCountInString(promptButton)
	if width < button+4 {
		return
	}
	for x := x0; x < x0+width; x++ {
		buf.Set(x, y, ' ', ColorText, ColorAccent, BlendAlphaBg, 0.3)
	}

	room := width - button - 2
	text, fg := st.Text, ColorText
	if text == "" {
		text, fg = prompt.Placeholder, Scale(ColorText, 0.4)
	}
	// Keep the caret end of long input visible
	runes := []rune(text)
	if len(runes) > room-1 {
		runes = runes[len(runes)-(room-1):]
	}
	n := buf.SetString(x0+1, y, string(runes), fg)
	if st.Text != "" {
		buf.SetFg(x0+1+min(n, room-1), y, '▏', ColorText)
	}

	bx := x0 + width - button - 1
	bfg, bbg := ColorBackground, ColorText
	if strings.TrimSpace(st.Text) == "" {
		bbg = Scale(ColorText, 0.5)
	}
	for i, ch := range []rune(promptButton) {
		buf.Set(bx+i, y, ch, bfg, bbg, BlendReplace, 1)
	}
}

// ButtonAt reports whether cell (x, y) lies on the release button of a w by h screen
func (r *PromptRenderer) ButtonAt(w, h, x, y int) bool {
	if !r.IsVisible() || w < 8 || h < 3 || y != h-3 {
		return false
	}
	if r.Source.State().Acked {
		return false
	}
	width := min(promptMaxWidth, w-4)
	button := utf8.RuneCountInString(promptButton)
	if width < button+4 {
		return false
	}
	bx := (w-width)/2 + width - button - 1
	return x >= bx && x < bx+button
}
