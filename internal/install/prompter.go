package install

import (
	"context"
	"fmt"

	"github.com/felix3322/potplayer-translate-installer/internal/messages"
	"github.com/felix3322/potplayer-translate-installer/internal/prompt"
)

// Prompter asks the driver to resolve conflicts and consent questions.
// *prompt.Link implements it.
type Prompter interface {
	FileExists(ctx context.Context, q prompt.Question) (prompt.Choice, error)
	YesNo(ctx context.Context, q prompt.Question) (bool, error)
	FreeText(ctx context.Context, q prompt.Question) (string, bool, error)
}

// Reporter receives progress lines in order. *prompt.Link implements it.
type Reporter interface {
	Progress(line string)
}

// PromptFileExistsFunc resolves an existing destination.
type PromptFileExistsFunc func(q prompt.Question) (prompt.Choice, error)

// PromptYesNoFunc asks for consent.
type PromptYesNoFunc func(q prompt.Question) (bool, error)

// PromptFreeTextFunc asks for a line of text; ok is false when none was given.
type PromptFreeTextFunc func(q prompt.Question) (string, bool, error)

// PromptFuncs adapts optional prompt callbacks into a Prompter.
type PromptFuncs struct {
	FileExistsFunc PromptFileExistsFunc
	YesNoFunc      PromptYesNoFunc
	FreeTextFunc   PromptFreeTextFunc
}

// FileExists asks how to resolve q.Path.
// Returns an error if no FileExistsFunc is configured.
func (p PromptFuncs) FileExists(_ context.Context, q prompt.Question) (prompt.Choice, error) {
	if p.FileExistsFunc == nil {
		return prompt.ChoiceCancel, fmt.Errorf(messages.InstallFileExistsPromptRequired)
	}
	return p.FileExistsFunc(q)
}

// YesNo asks for consent.
// Returns an error if no YesNoFunc is configured.
func (p PromptFuncs) YesNo(_ context.Context, q prompt.Question) (bool, error) {
	if p.YesNoFunc == nil {
		return false, fmt.Errorf(messages.InstallYesNoPromptRequired)
	}
	return p.YesNoFunc(q)
}

// FreeText asks for a line of text.
// Returns an error if no FreeTextFunc is configured.
func (p PromptFuncs) FreeText(_ context.Context, q prompt.Question) (string, bool, error) {
	if p.FreeTextFunc == nil {
		return "", false, fmt.Errorf(messages.InstallFreeTextPromptRequired)
	}
	return p.FreeTextFunc(q)
}
