package layers

import (
	"testing"

	"github.com/stretchr/testify/require"
	tview "github.com/xqrs/tview-pull"
)

func TestLayersVisibility(t *testing.T) {
	t.Parallel()

	changes := 0
	l := New().SetChangedFunc(func() { changes++ })
	hint := tview.NewText("hint")
	loading := tview.NewText("loading")
	l.AddLayer(hint, WithName("hint"), WithResize(true)).
		AddLayer(loading, WithName("loading"), WithResize(true), WithVisible(false))

	require.Equal(t, 2, l.GetLayerCount())
	require.Equal(t, []string{"loading", "hint"}, l.GetLayerNames(false))
	require.Equal(t, []string{"hint"}, l.GetLayerNames(true))
	name, item := l.GetFrontLayer()
	require.Equal(t, "hint", name)
	require.Same(t, hint, item)

	changes = 0
	l.ShowOnly("loading")
	require.True(t, l.GetVisible("loading"))
	require.False(t, l.GetVisible("hint"))
	require.Equal(t, 1, changes)

	l.ShowOnly("loading")
	require.Equal(t, 1, changes)

	l.ShowLayer("hint").SendToFront("hint")
	require.Equal(t, []string{"hint", "loading"}, l.GetLayerNames(true))

	l.RemoveLayer("hint")
	require.False(t, l.HasLayer("hint"))
	require.Nil(t, l.GetLayer("hint"))
	require.Same(t, loading, l.GetLayer("loading"))
}

func TestLayersReplaceByName(t *testing.T) {
	t.Parallel()

	l := New()
	first := tview.NewText("first")
	second := tview.NewText("second")
	l.AddLayer(first, WithName("x")).AddLayer(second, WithName("x"))
	require.Equal(t, 1, l.GetLayerCount())
	require.Same(t, second, l.GetLayer("x"))
}

func TestLayersDraw(t *testing.T) {
	t.Parallel()

	l := New().
		AddLayer(tview.NewText("back"), WithName("back"), WithResize(true)).
		AddLayer(tview.NewText("front"), WithName("front"), WithResize(true))
	l.SetRect(0, 0, 10, 2)
	screen := tview.NewCaptureScreen(10, 2)
	l.Draw(screen)
	require.Equal(t, "front", screen.Line(0))

	l.HideLayer("front")
	require.True(t, l.IsDirty())
	l.Draw(screen)
	require.Equal(t, "back", screen.Line(0))

	l.MarkClean()
	require.False(t, l.IsDirty())
}

func TestLayersFocusFollowsFront(t *testing.T) {
	t.Parallel()

	back := tview.NewText("back")
	front := tview.NewText("front")
	l := New().
		AddLayer(back, WithName("back")).
		AddLayer(front, WithName("front"))

	var focused tview.Primitive
	var delegate func(p tview.Primitive)
	delegate = func(p tview.Primitive) {
		if focused != nil {
			focused.Blur()
		}
		focused = p
		p.Focus(delegate)
	}
	l.Focus(delegate)
	require.Same(t, front, focused)
	require.True(t, l.HasFocus())

	l.HideLayer("front")
	require.Same(t, back, focused)
	require.True(t, back.HasFocus())
	require.False(t, front.HasFocus())
}
