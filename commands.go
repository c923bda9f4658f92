package tview

// Command is a side effect requested by a primitive while it handles input.
// The Application event loop executes commands after the handler returns.
type Command any

// BatchCommand groups multiple commands into a single command.
type BatchCommand []Command

// AppendCommand appends next to current and returns the merged command.
// Nested BatchCommand values are flattened.
func AppendCommand(current Command, next Command) Command {
	if next == nil {
		return current
	}
	if current == nil {
		return next
	}

	var batch BatchCommand
	for _, c := range []Command{current, next} {
		if nested, ok := c.(BatchCommand); ok {
			batch = append(batch, nested...)
		} else {
			batch = append(batch, c)
		}
	}
	return batch
}

// Batch merges commands, dropping nil ones. It returns nil if nothing is left.
func Batch(cmds ...Command) Command {
	var merged Command
	for _, cmd := range cmds {
		merged = AppendCommand(merged, cmd)
	}
	return merged
}

// SetFocusCommand moves the keyboard focus to Target.
type SetFocusCommand struct {
	Target Primitive
}

// RedrawCommand requests a redraw at the end of the current event.
type RedrawCommand struct{}

// QuitCommand requests stopping the application event loop.
type QuitCommand struct{}

// SetTitleCommand requests updating the terminal title.
type SetTitleCommand string

// ConsumeEventCommand stops further propagation of the current input event.
type ConsumeEventCommand struct{}
