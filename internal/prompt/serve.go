package prompt

import (
	"context"
	"fmt"

	"github.com/felix3322/potplayer-translate-installer/internal/messages"
)

// Driver presents the orchestrator's progress and questions.
// Serve calls its methods from a single goroutine, one at a time.
type Driver interface {
	Progress(line string)
	FileExists(q Question) (Choice, error)
	YesNo(q Question) (bool, error)
	// FreeText returns ok=false when the user supplied no answer.
	FreeText(q Question) (text string, ok bool, err error)
	Finished(status Status, reason string)
}

// Serve pumps the link's events into d until the run finishes.
// When ctx ends or d fails to answer, Serve abandons the link so the
// orchestrator unwinds as cancelled, and returns the cause.
func Serve(ctx context.Context, l *Link, d Driver) (Status, string, error) {
	for {
		select {
		case <-ctx.Done():
			l.Abandon()
			return StatusCancelled, "", ctx.Err()
		case ev, ok := <-l.Events():
			if !ok {
				return StatusCancelled, "", fmt.Errorf(messages.PromptStreamClosed)
			}
			switch ev.Kind {
			case EventProgress:
				d.Progress(ev.Line)
			case EventQuestion:
				if err := answer(ev.Request, d); err != nil {
					l.Abandon()
					return StatusCancelled, "", err
				}
			case EventDone:
				d.Finished(ev.Status, ev.Reason)
				return ev.Status, ev.Reason, nil
			}
		}
	}
}

func answer(req *Request, d Driver) error {
	switch req.Kind {
	case KindFileExists:
		choice, err := d.FileExists(req.Question)
		if err != nil {
			return err
		}
		return req.ReplyChoice(choice)
	case KindYesNo:
		yes, err := d.YesNo(req.Question)
		if err != nil {
			return err
		}
		return req.ReplyBool(yes)
	case KindFreeText:
		text, ok, err := d.FreeText(req.Question)
		if err != nil {
			return err
		}
		if !ok {
			return req.ReplyNone()
		}
		return req.ReplyText(text)
	default:
		return fmt.Errorf(messages.PromptUnknownKindFmt, req.Kind)
	}
}

// DriverFuncs adapts optional callbacks into a Driver. Missing question
// callbacks decline the question.
type DriverFuncs struct {
	ProgressFunc   func(line string)
	FileExistsFunc func(q Question) (Choice, error)
	YesNoFunc      func(q Question) (bool, error)
	FreeTextFunc   func(q Question) (string, bool, error)
	FinishedFunc   func(status Status, reason string)
}

// Progress forwards line to ProgressFunc when set.
func (f DriverFuncs) Progress(line string) {
	if f.ProgressFunc != nil {
		f.ProgressFunc(line)
	}
}

// FileExists forwards to FileExistsFunc or cancels.
func (f DriverFuncs) FileExists(q Question) (Choice, error) {
	if f.FileExistsFunc == nil {
		return ChoiceCancel, nil
	}
	return f.FileExistsFunc(q)
}

// YesNo forwards to YesNoFunc or answers no.
func (f DriverFuncs) YesNo(q Question) (bool, error) {
	if f.YesNoFunc == nil {
		return false, nil
	}
	return f.YesNoFunc(q)
}

// FreeText forwards to FreeTextFunc or supplies no text.
func (f DriverFuncs) FreeText(q Question) (string, bool, error) {
	if f.FreeTextFunc == nil {
		return "", false, nil
	}
	return f.FreeTextFunc(q)
}

// Finished forwards to FinishedFunc when set.
func (f DriverFuncs) Finished(status Status, reason string) {
	if f.FinishedFunc != nil {
		f.FinishedFunc(status, reason)
	}
}
