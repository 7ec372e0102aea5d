package wizard

import (
	"strings"

	"github.com/felix3322/potplayer-translate-installer/internal/lang"
)

var testTable = mustLoadTable()

func mustLoadTable() *lang.Table {
	t, err := lang.Load()
	if err != nil {
		panic(err)
	}
	return t
}

// fakeUI answers forms by page title (the first line of the form title).
// Unscripted forms keep their current value; unscripted confirms answer yes.
type fakeUI struct {
	selects  map[string][]string
	multi    map[string][][]string
	confirms map[string][]bool
	inputs   map[string][]string
	back     map[string]int
	cancel   string

	calls []string
	notes []string
}

func newFakeUI() *fakeUI {
	return &fakeUI{
		selects:  map[string][]string{},
		multi:    map[string][][]string{},
		confirms: map[string][]bool{},
		inputs:   map[string][]string{},
		back:     map[string]int{},
	}
}

func firstLine(title string) string {
	line, _, _ := strings.Cut(title, "\n")
	return line
}

func (u *fakeUI) enter(title string) (string, error) {
	key := firstLine(title)
	u.calls = append(u.calls, key)
	if key == u.cancel {
		return key, errWizardCancelled
	}
	if u.back[key] > 0 {
		u.back[key]--
		return key, errWizardBack
	}
	return key, nil
}

func (u *fakeUI) count(title string) int {
	n := 0
	for _, c := range u.calls {
		if c == title {
			n++
		}
	}
	return n
}

func (u *fakeUI) Select(title string, options []Option, current *string) error {
	key, err := u.enter(title)
	if err != nil {
		return err
	}
	if queue := u.selects[key]; len(queue) > 0 {
		*current = queue[0]
		u.selects[key] = queue[1:]
	}
	return nil
}

func (u *fakeUI) MultiSelect(title string, options []Option, selected *[]string) error {
	key, err := u.enter(title)
	if err != nil {
		return err
	}
	if queue := u.multi[key]; len(queue) > 0 {
		*selected = queue[0]
		u.multi[key] = queue[1:]
	}
	return nil
}

func (u *fakeUI) Confirm(title string, value *bool) error {
	key, err := u.enter(title)
	if err != nil {
		return err
	}
	*value = true
	if queue := u.confirms[key]; len(queue) > 0 {
		*value = queue[0]
		u.confirms[key] = queue[1:]
	}
	return nil
}

func (u *fakeUI) Input(title string, value *string) error {
	key, err := u.enter(title)
	if err != nil {
		return err
	}
	if queue := u.inputs[key]; len(queue) > 0 {
		*value = queue[0]
		u.inputs[key] = queue[1:]
	}
	return nil
}

func (u *fakeUI) SecretInput(title string, value *string) error {
	return u.Input(title, value)
}

func (u *fakeUI) Note(title string, body string) error {
	if _, err := u.enter(title); err != nil {
		return err
	}
	u.notes = append(u.notes, body)
	return nil
}
