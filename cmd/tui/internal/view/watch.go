package view

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrJamesThe3rd/vyaparx/internal/store"
)

// Watcher forwards committed snapshots into the program. Only the latest
// snapshot is kept: a slow reader skips intermediate revisions.
type Watcher struct {
	ch     chan store.State
	cancel func()
}

func NewWatcher(st *store.Store) *Watcher {
	w := &Watcher{ch: make(chan store.State, 1)}

	w.cancel = st.Subscribe(func(s store.State) {
		for {
			select {
			case w.ch <- s:
				return
			default:
			}

			select {
			case <-w.ch:
			default:
			}
		}
	})

	return w
}

// Next waits for the following snapshot. Issue it again after every StateMsg.
func (w *Watcher) Next() tea.Cmd {
	return func() tea.Msg {
		s, ok := <-w.ch
		if !ok {
			return nil
		}

		return StateMsg{State: s}
	}
}

func (w *Watcher) Close() {
	w.cancel()
}
