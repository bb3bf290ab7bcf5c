package view

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrJamesThe3rd/vyaparx/internal/store"
)

// View is the interface that all TUI screens implement.
type View interface {
	tea.Model
	Title() string
	ShortHelp() string
}

// CommonModel is embedded by all views.
type CommonModel struct {
	Width  int
	Height int
}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

// StateMsg carries a snapshot committed to the store.
type StateMsg struct {
	State store.State
}

// FlashMsg is a one-line status for the footer.
type FlashMsg struct {
	Text string
	Err  error
}
