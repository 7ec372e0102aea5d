package prompt

import (
	"context"
	"sync"
	"sync/atomic"
)

// EventKind classifies events on a Link.
type EventKind int

const (
	// EventProgress carries a progress line.
	EventProgress EventKind = iota + 1
	// EventQuestion carries a Request the driver must answer.
	EventQuestion
	// EventDone carries the terminal status; no events follow it.
	EventDone
)

// Event is one item of the ordered orchestrator → driver stream.
type Event struct {
	Kind    EventKind
	Line    string
	Request *Request
	Status  Status
	Reason  string
}

// Link connects one orchestrator run to one driver.
type Link struct {
	events    chan Event
	abandoned chan struct{}
	inFlight  atomic.Bool

	abandonOnce sync.Once
	finishOnce  sync.Once
}

// defaultBuffer lets progress lines queue while the driver is busy with a form.
const defaultBuffer = 64

// NewLink creates a link for a single run.
func NewLink() *Link {
	return &Link{
		events:    make(chan Event, defaultBuffer),
		abandoned: make(chan struct{}),
	}
}

// Events returns the driver's view of the stream. It is closed after EventDone.
func (l *Link) Events() <-chan Event {
	return l.events
}

// Abandon tells the orchestrator the driver will not answer any further
// questions. Pending and future questions resolve with ErrAbandoned.
func (l *Link) Abandon() {
	l.abandonOnce.Do(func() { close(l.abandoned) })
}

// Progress sends a progress line. Lines are never dropped while the driver is
// listening; after Abandon they are discarded.
func (l *Link) Progress(line string) {
	select {
	case l.events <- Event{Kind: EventProgress, Line: line}:
	case <-l.abandoned:
	}
}

// Finish sends the terminal status and closes the stream. Later calls are no-ops.
func (l *Link) Finish(status Status, reason string) {
	l.finishOnce.Do(func() {
		select {
		case l.events <- Event{Kind: EventDone, Status: status, Reason: reason}:
		case <-l.abandoned:
		}
		close(l.events)
	})
}

// Ask sends q and blocks until the driver answers, ctx is done, or the driver abandons the link.
func (l *Link) Ask(ctx context.Context, q Question) (Answer, error) {
	if !l.inFlight.CompareAndSwap(false, true) {
		return Answer{}, ErrQuestionInFlight
	}
	defer l.inFlight.Store(false)

	req := newRequest(q)
	select {
	case l.events <- Event{Kind: EventQuestion, Request: req}:
	case <-ctx.Done():
		return Answer{}, ctx.Err()
	case <-l.abandoned:
		return Answer{}, ErrAbandoned
	}

	select {
	case a := <-req.reply:
		return a, nil
	case <-ctx.Done():
		return Answer{}, ctx.Err()
	case <-l.abandoned:
		return Answer{}, ErrAbandoned
	}
}

// FileExists asks how to resolve an existing destination.
func (l *Link) FileExists(ctx context.Context, q Question) (Choice, error) {
	q.Kind = KindFileExists
	a, err := l.Ask(ctx, q)
	if err != nil {
		return ChoiceCancel, err
	}
	return a.Choice, nil
}

// YesNo asks for consent.
func (l *Link) YesNo(ctx context.Context, q Question) (bool, error) {
	q.Kind = KindYesNo
	a, err := l.Ask(ctx, q)
	if err != nil {
		return false, err
	}
	return a.Yes, nil
}

// FreeText asks for a line of text. ok is false when the driver supplied none.
func (l *Link) FreeText(ctx context.Context, q Question) (string, bool, error) {
	q.Kind = KindFreeText
	a, err := l.Ask(ctx, q)
	if err != nil {
		return "", false, err
	}
	return a.Text, a.HasText, nil
}
