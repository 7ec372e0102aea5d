package prompt

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nextQuestion(t *testing.T, l *Link) *Request {
	t.Helper()
	select {
	case ev := <-l.Events():
		require.Equal(t, EventQuestion, ev.Kind)
		return ev.Request
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for question")
		return nil
	}
}

func TestAskRoundTrip(t *testing.T) {
	l := NewLink()
	result := make(chan Choice, 1)
	go func() {
		choice, err := l.FileExists(context.Background(), Question{Path: "plugin.as"})
		if err != nil {
			result <- -1
			return
		}
		result <- choice
	}()

	req := nextQuestion(t, l)
	assert.Equal(t, KindFileExists, req.Kind)
	assert.Equal(t, "plugin.as", req.Path)
	require.NoError(t, req.ReplyChoice(ChoiceRename))

	assert.Equal(t, ChoiceRename, <-result)
}

func TestReplyExactlyOnce(t *testing.T) {
	req := newRequest(Question{Kind: KindYesNo})
	require.NoError(t, req.ReplyBool(true))
	require.ErrorIs(t, req.ReplyBool(false), ErrAlreadyAnswered)
	require.ErrorIs(t, req.ReplyNone(), ErrAlreadyAnswered)

	a := <-req.reply
	assert.True(t, a.Yes)
}

func TestReplyRejectsWrongKind(t *testing.T) {
	req := newRequest(Question{Kind: KindFreeText})
	require.Error(t, req.ReplyBool(true))
	require.Error(t, req.ReplyChoice(ChoiceOverwrite))
	require.NoError(t, req.ReplyText("renamed"))
}

func TestFreeTextNone(t *testing.T) {
	l := NewLink()
	type res struct {
		text string
		ok   bool
	}
	result := make(chan res, 1)
	go func() {
		text, ok, _ := l.FreeText(context.Background(), Question{})
		result <- res{text, ok}
	}()

	require.NoError(t, nextQuestion(t, l).ReplyNone())
	got := <-result
	assert.False(t, got.ok)
	assert.Empty(t, got.text)
}

func TestSecondQuestionWhileInFlight(t *testing.T) {
	l := NewLink()
	firstDone := make(chan error, 1)
	go func() {
		_, err := l.YesNo(context.Background(), Question{Text: "first"})
		firstDone <- err
	}()
	req := nextQuestion(t, l)

	_, err := l.YesNo(context.Background(), Question{Text: "second"})
	require.ErrorIs(t, err, ErrQuestionInFlight)

	require.NoError(t, req.ReplyBool(true))
	require.NoError(t, <-firstDone)

	// The slot is free again once the first answer arrived.
	go func() {
		_, _ = l.YesNo(context.Background(), Question{Text: "third"})
	}()
	third := nextQuestion(t, l)
	assert.Equal(t, "third", third.Text)
	require.NoError(t, third.ReplyBool(false))
}

func TestAbandonUnblocksAsk(t *testing.T) {
	l := NewLink()
	errs := make(chan error, 1)
	go func() {
		_, err := l.YesNo(context.Background(), Question{})
		errs <- err
	}()
	_ = nextQuestion(t, l)

	l.Abandon()
	l.Abandon()

	require.ErrorIs(t, <-errs, ErrAbandoned)
}

func TestContextCancelUnblocksAsk(t *testing.T) {
	l := NewLink()
	ctx, cancel := context.WithCancel(context.Background())
	errs := make(chan error, 1)
	go func() {
		_, err := l.YesNo(ctx, Question{})
		errs <- err
	}()
	_ = nextQuestion(t, l)

	cancel()
	require.ErrorIs(t, <-errs, context.Canceled)
}

func TestServeDeliversEventsInOrder(t *testing.T) {
	l := NewLink()
	go func() {
		ctx := context.Background()
		l.Progress("copying")
		choice, _ := l.FileExists(ctx, Question{Path: "a.as"})
		if choice == ChoiceRename {
			name, ok, _ := l.FreeText(ctx, Question{Text: "new name"})
			if ok {
				l.Progress("renamed to " + name)
			}
		}
		yes, _ := l.YesNo(ctx, Question{Text: "register?"})
		if yes {
			l.Progress("registered")
		}
		l.Progress(DoneMarker)
		l.Finish(StatusSuccess, "")
	}()

	var seen []string
	driver := DriverFuncs{
		ProgressFunc: func(line string) { seen = append(seen, "progress:"+line) },
		FileExistsFunc: func(q Question) (Choice, error) {
			seen = append(seen, "exists:"+q.Path)
			return ChoiceRename, nil
		},
		FreeTextFunc: func(Question) (string, bool, error) {
			seen = append(seen, "text")
			return "b.as", true, nil
		},
		YesNoFunc: func(Question) (bool, error) {
			seen = append(seen, "yesno")
			return true, nil
		},
		FinishedFunc: func(status Status, _ string) { seen = append(seen, "finished:"+status.String()) },
	}

	status, _, err := Serve(context.Background(), l, driver)
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, status)
	assert.Equal(t, []string{
		"progress:copying",
		"exists:a.as",
		"text",
		"progress:renamed to b.as",
		"yesno",
		"progress:registered",
		"progress:" + DoneMarker,
		"finished:success",
	}, seen)
}

func TestServeDriverErrorAbandons(t *testing.T) {
	l := NewLink()
	askErr := make(chan error, 1)
	go func() {
		_, err := l.YesNo(context.Background(), Question{})
		askErr <- err
		l.Finish(StatusCancelled, "")
	}()

	boom := errors.New("terminal closed")
	_, _, err := Serve(context.Background(), l, DriverFuncs{
		YesNoFunc: func(Question) (bool, error) { return false, boom },
	})
	require.ErrorIs(t, err, boom)
	require.ErrorIs(t, <-askErr, ErrAbandoned)
}

func TestServeContextCancelled(t *testing.T) {
	l := NewLink()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	status, _, err := Serve(ctx, l, DriverFuncs{})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, StatusCancelled, status)

	_, askErr := l.YesNo(context.Background(), Question{})
	require.ErrorIs(t, askErr, ErrAbandoned)
}

func TestDriverFuncsDefaultsDecline(t *testing.T) {
	var d DriverFuncs
	choice, err := d.FileExists(Question{})
	require.NoError(t, err)
	assert.Equal(t, ChoiceCancel, choice)

	yes, err := d.YesNo(Question{})
	require.NoError(t, err)
	assert.False(t, yes)

	_, ok, err := d.FreeText(Question{})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestParseChoice(t *testing.T) {
	for raw, want := range map[string]Choice{
		"overwrite": ChoiceOverwrite,
		" Rename ":  ChoiceRename,
		"CANCEL":    ChoiceCancel,
	} {
		got, err := ParseChoice(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}
	_, err := ParseChoice("skip")
	assert.Error(t, err)
}
