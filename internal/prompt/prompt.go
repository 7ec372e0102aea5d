// Package prompt implements the request/response protocol between the install
// orchestrator and the driver that presents its questions.
//
// The orchestrator runs in its own goroutine and owns all install state. It
// sends progress lines and questions over a single ordered event stream and
// blocks on a per-question reply channel until the driver answers. At most one
// question is in flight at a time, and each question is answered exactly once.
package prompt

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/felix3322/potplayer-translate-installer/internal/messages"
)

// DoneMarker is the last progress line of every run.
const DoneMarker = "DONE"

// Kind classifies a question.
type Kind int

const (
	// KindFileExists asks how to resolve an existing destination file.
	KindFileExists Kind = iota + 1
	// KindYesNo asks for consent.
	KindYesNo
	// KindFreeText asks for a line of text.
	KindFreeText
)

func (k Kind) String() string {
	switch k {
	case KindFileExists:
		return "file_exists"
	case KindYesNo:
		return "yes_no"
	case KindFreeText:
		return "free_text"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Choice is the answer to a KindFileExists question.
type Choice int

const (
	// ChoiceCancel stops the run.
	ChoiceCancel Choice = iota
	// ChoiceOverwrite replaces the existing file.
	ChoiceOverwrite
	// ChoiceRename installs under a new name.
	ChoiceRename
)

func (c Choice) String() string {
	switch c {
	case ChoiceOverwrite:
		return "overwrite"
	case ChoiceRename:
		return "rename"
	default:
		return "cancel"
	}
}

// ParseChoice converts a choice name as printed by Choice.String.
func ParseChoice(raw string) (Choice, error) {
	for _, c := range []Choice{ChoiceOverwrite, ChoiceRename, ChoiceCancel} {
		if strings.EqualFold(strings.TrimSpace(raw), c.String()) {
			return c, nil
		}
	}
	return ChoiceCancel, fmt.Errorf(messages.PromptChoiceInvalidFmt, raw)
}

// Question is what the orchestrator asks the driver.
type Question struct {
	Kind  Kind
	Title string
	Text  string
	// Path is the conflicting destination for KindFileExists.
	Path string
	// Source is the bundled file about to be installed at Path, when known.
	Source string
	// Preview is a unified diff of Path against the content about to replace
	// it. Empty for binary files.
	Preview string
}

// Answer is the driver's reply. Only the field matching the question kind is meaningful.
type Answer struct {
	Choice  Choice
	Yes     bool
	Text    string
	HasText bool
}

// Status is the terminal state of a run.
type Status int

const (
	// StatusSuccess means every selected variant was installed.
	StatusSuccess Status = iota
	// StatusCancelled means the driver stopped the run.
	StatusCancelled
	// StatusFailed means the run ended on an error.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusCancelled:
		return "cancelled"
	default:
		return "failed"
	}
}

var (
	// ErrAlreadyAnswered is returned when a request is answered twice.
	ErrAlreadyAnswered = errors.New(messages.PromptAlreadyAnswered)
	// ErrAbandoned is returned to the orchestrator when the driver stopped answering.
	ErrAbandoned = errors.New(messages.PromptAbandoned)
	// ErrQuestionInFlight is returned when a second question is asked before the first is answered.
	ErrQuestionInFlight = errors.New(messages.PromptQuestionInFlight)
)

// Request is a question awaiting exactly one answer.
type Request struct {
	Question

	reply chan Answer
	once  sync.Once
}

func newRequest(q Question) *Request {
	return &Request{Question: q, reply: make(chan Answer, 1)}
}

// ReplyChoice answers a KindFileExists question.
func (r *Request) ReplyChoice(c Choice) error {
	if r.Kind != KindFileExists {
		return fmt.Errorf(messages.PromptWrongAnswerKindFmt, "choice", r.Kind)
	}
	return r.deliver(Answer{Choice: c})
}

// ReplyBool answers a KindYesNo question.
func (r *Request) ReplyBool(yes bool) error {
	if r.Kind != KindYesNo {
		return fmt.Errorf(messages.PromptWrongAnswerKindFmt, "bool", r.Kind)
	}
	return r.deliver(Answer{Yes: yes})
}

// ReplyText answers a KindFreeText question.
func (r *Request) ReplyText(text string) error {
	if r.Kind != KindFreeText {
		return fmt.Errorf(messages.PromptWrongAnswerKindFmt, "text", r.Kind)
	}
	return r.deliver(Answer{Text: text, HasText: true})
}

// ReplyNone declines any question: cancel, no, or no text.
func (r *Request) ReplyNone() error {
	return r.deliver(Answer{Choice: ChoiceCancel})
}

func (r *Request) deliver(a Answer) error {
	delivered := false
	r.once.Do(func() {
		r.reply <- a
		delivered = true
	})
	if !delivered {
		return ErrAlreadyAnswered
	}
	return nil
}
