package tui

import "github.com/liliang-cn/docchat/internal/dispatch"

// Messages delivered back into the update loop by async commands. All
// remote work happens inside tea.Cmd closures; the single update loop is
// the only writer of view state.

type catalogRefreshedMsg struct {
	err error
}

type uploadFinishedMsg struct {
	filename string
	err      error
}

type deleteFinishedMsg struct {
	name string
	err  error
}

type queryFinishedMsg struct {
	result dispatch.Result
}
