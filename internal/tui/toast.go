package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type toastKind int

const (
	toastInfo toastKind = iota
	toastSuccess
	toastWarn
	toastError
)

type toast struct {
	id   int
	text string
	kind toastKind
}

// toastExpiredMsg retires the toast with id if it is still at the head of the queue.
type toastExpiredMsg struct{ id int }

// toastQueue shows one transient message at a time, in FIFO order. Only the
// head has a running timer; the next one starts when the head expires.
type toastQueue struct {
	ttl   time.Duration
	items []toast
	seq   int
}

func newToastQueue(ttl time.Duration) toastQueue {
	if ttl <= 0 {
		ttl = defaultToastDuration
	}
	return toastQueue{ttl: ttl}
}

func (q *toastQueue) push(text string, kind toastKind) tea.Cmd {
	q.seq++
	q.items = append(q.items, toast{id: q.seq, text: text, kind: kind})
	if len(q.items) == 1 {
		return q.expireAfter(q.items[0].id)
	}
	return nil
}

func (q *toastQueue) expire(id int) tea.Cmd {
	if len(q.items) == 0 || q.items[0].id != id {
		return nil
	}
	q.items = q.items[1:]
	if len(q.items) > 0 {
		return q.expireAfter(q.items[0].id)
	}
	return nil
}

func (q *toastQueue) current() (toast, bool) {
	if len(q.items) == 0 {
		return toast{}, false
	}
	return q.items[0], true
}

func (q *toastQueue) size() int { return len(q.items) }

func (q *toastQueue) expireAfter(id int) tea.Cmd {
	return tea.Tick(q.ttl, func(time.Time) tea.Msg { return toastExpiredMsg{id: id} })
}
