package library

import (
	"time"

	tea "charm.land/bubbletea/v2"
)

// frameInterval paces queued resize/scroll work to roughly one flush per
// display frame.
const frameInterval = 16 * time.Millisecond

type frameMsg struct {
	id  int
	seq int
}

// frameSub is a self-rearming tick. Each Start bumps seq, so a tick that was
// already in flight when Stop ran carries a stale seq and is dropped.
type frameSub struct {
	id      int
	seq     int
	running bool
}

// Start arms the subscription. It returns nil when it is already running.
func (f *frameSub) Start() tea.Cmd {
	if f.running {
		return nil
	}
	f.running = true
	f.seq++
	return f.tick()
}

// Stop disarms the subscription; the pending tick, if any, is ignored.
func (f *frameSub) Stop() {
	f.running = false
	f.seq++
}

func (f frameSub) accepts(m frameMsg) bool {
	return f.running && m.id == f.id && m.seq == f.seq
}

func (f frameSub) tick() tea.Cmd {
	id, seq := f.id, f.seq
	return tea.Tick(frameInterval, func(time.Time) tea.Msg {
		return frameMsg{id: id, seq: seq}
	})
}
