package tui

import (
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

// writeClipboard is replaced in tests; headless machines have no clipboard.
var writeClipboard = clipboard.WriteAll

// clipboardCopyMsg is sent after a clipboard copy operation.
type clipboardCopyMsg struct {
	id      string
	content string
	err     error
}

// copyToClipboard copies the share text of item id to the system clipboard.
// Returns a tea.Cmd that will send a clipboardCopyMsg when complete.
func copyToClipboard(id, text string) tea.Cmd {
	return func() tea.Msg {
		return clipboardCopyMsg{id: id, content: text, err: writeClipboard(text)}
	}
}
