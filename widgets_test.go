package tview

import (
	"testing"

	"github.com/gdamore/tcell/v3"
	"github.com/stretchr/testify/require"
)

func TestBoxBorders(t *testing.T) {
	t.Parallel()

	screen := NewCaptureScreen(4, 3)
	box := NewBox().SetBorders(BordersAll)
	box.SetRect(0, 0, 4, 3)
	box.Draw(screen)

	h, v := BoxDrawingsLightHorizontal, BoxDrawingsLightVertical
	require.Equal(t, []string{
		BoxDrawingsLightDownAndRight + h + h + BoxDrawingsLightDownAndLeft,
		v + "  " + v,
		BoxDrawingsLightUpAndRight + h + h + BoxDrawingsLightUpAndLeft,
	}, screen.Lines())

	x, y, width, height := box.GetInnerRect()
	require.Equal(t, []int{1, 1, 2, 1}, []int{x, y, width, height})

	box.SetBorderSet(BorderSetRound()).SetBorders(BordersTop | BordersLeft)
	box.Draw(screen)
	require.Equal(t, BoxDrawingsLightArcDownAndRight+h+h, screen.Line(0))
	require.True(t, box.GetBorders().Has(BordersTop))
	require.False(t, box.GetBorders().Has(BordersTop|BordersBottom))
}

func TestBoxPaddingAndTitle(t *testing.T) {
	t.Parallel()

	box := NewBox().SetBorderPadding(1, 2, 3, 4)
	box.SetRect(0, 0, 20, 10)
	top, bottom, left, right := box.GetBorderPadding()
	require.Equal(t, []int{1, 2, 3, 4}, []int{top, bottom, left, right})
	x, y, width, height := box.GetInnerRect()
	require.Equal(t, []int{3, 1, 13, 7}, []int{x, y, width, height})

	box.SetBorderPadding(0, 0, 0, 0).SetTitle("Items")
	x, y, width, height = box.GetInnerRect()
	require.Equal(t, []int{0, 1, 20, 9}, []int{x, y, width, height})

	screen := NewCaptureScreen(20, 2)
	box.SetRect(0, 0, 20, 2)
	box.Draw(screen)
	require.Equal(t, "        Items", screen.Line(0))
}

func TestBoxDirtyTracking(t *testing.T) {
	t.Parallel()

	box := NewBox()
	require.True(t, box.IsDirty())
	box.MarkClean()
	require.False(t, box.IsDirty())

	box.SetRect(0, 0, 15, 10)
	require.False(t, box.IsDirty())
	box.SetRect(1, 0, 15, 10)
	require.True(t, box.IsDirty())
}

func TestBoxFocus(t *testing.T) {
	t.Parallel()

	focused, blurred := 0, 0
	box := NewBox().
		SetFocusFunc(func() { focused++ }).
		SetBlurFunc(func() { blurred++ })

	box.Focus(nil)
	require.True(t, box.HasFocus())
	box.Blur()
	require.False(t, box.HasFocus())
	require.Equal(t, 1, focused)
	require.Equal(t, 1, blurred)
}

func TestSpinner(t *testing.T) {
	t.Parallel()

	s := NewSpinner("Loading")
	require.Equal(t, SpinnerFrames[0], s.Frame())
	for range SpinnerFrames {
		s.Step()
	}
	require.Equal(t, SpinnerFrames[0], s.Frame())

	s.SetFrames([]string{"a", "b"}).Step()
	require.Equal(t, "b", s.Frame())
	s.Reset()
	require.Equal(t, "a", s.Frame())

	screen := NewCaptureScreen(11, 3)
	s.SetRect(0, 0, 11, 3)
	s.Draw(screen)
	require.Equal(t, []string{"", " a Loading", ""}, screen.Lines())

	s.SetFrames(nil)
	require.Equal(t, SpinnerFrames[0], s.Frame())
}

func TestButtonActivate(t *testing.T) {
	t.Parallel()

	pressed := 0
	b := NewButton("Load").SetSelectedFunc(func() Command {
		pressed++
		return QuitCommand{}
	})
	require.Equal(t, BatchCommand{QuitCommand{}, RedrawCommand{}}, b.Activate())
	require.Equal(t, 1, pressed)

	b.SetDisabled(true)
	require.Nil(t, b.Activate())
	require.Equal(t, 1, pressed)

	_, _, width, height := b.GetRect()
	require.Equal(t, 8, width)
	require.Equal(t, 1, height)

	screen := NewCaptureScreen(8, 1)
	b.Draw(screen)
	require.Equal(t, "  Load", screen.Line(0))
}

func TestCommands(t *testing.T) {
	t.Parallel()

	require.Nil(t, AppendCommand(nil, nil))
	require.Equal(t, RedrawCommand{}, AppendCommand(nil, RedrawCommand{}))
	require.Equal(t, QuitCommand{}, AppendCommand(QuitCommand{}, nil))
	require.Equal(t,
		BatchCommand{QuitCommand{}, RedrawCommand{}, ConsumeEventCommand{}},
		AppendCommand(BatchCommand{QuitCommand{}, RedrawCommand{}}, ConsumeEventCommand{}),
	)

	require.Nil(t, Batch())
	require.Nil(t, Batch(nil, nil))
	require.Equal(t, RedrawCommand{}, Batch(nil, RedrawCommand{}))
	require.Equal(t, BatchCommand{RedrawCommand{}, QuitCommand{}}, Batch(RedrawCommand{}, nil, QuitCommand{}))
}

func TestClipScreen(t *testing.T) {
	t.Parallel()

	screen := NewCaptureScreen(6, 3)
	clip := NewClipScreen(screen, 1, 1, 3, 1)
	PrintSimple(clip, "abcdef", 0, 1)
	PrintSimple(clip, "zzz", 0, 0)
	require.Equal(t, []string{"", " bcd", ""}, screen.Lines())

	clip.ShowCursor(2, 1)
	x, y := screen.Cursor()
	require.Equal(t, []int{2, 1}, []int{x, y})
	clip.ShowCursor(5, 1)
	x, y = screen.Cursor()
	require.Equal(t, []int{-1, -1}, []int{x, y})
}

func TestCaptureScreen(t *testing.T) {
	t.Parallel()

	screen := NewCaptureScreen(4, 2)
	style := tcell.StyleDefault.Bold(true)
	screen.PutStrStyled(1, 0, "ab世", style)
	require.Equal(t, " ab", screen.Line(0))
	require.Equal(t, style, screen.Style(1, 0))

	screen.PutStrStyled(2, 1, "世", style)
	require.Equal(t, "  世", screen.Line(1))
	require.Equal(t, " ab\n  世", screen.String())

	screen.Clear()
	require.Equal(t, []string{"", ""}, screen.Lines())
	require.Empty(t, screen.Line(5))
}
