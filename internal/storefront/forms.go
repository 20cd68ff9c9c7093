package storefront

import (
	"net/url"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/phenrril/bfguitars/internal/query"
)

type FormKind int

const (
	FormDIY FormKind = iota
	FormFeedback
)

func (k FormKind) String() string {
	if k == FormFeedback {
		return "feedback"
	}
	return "diy"
}

var formFields = map[FormKind][]string{
	FormDIY:      {query.FieldType, query.FieldNeck, query.FieldBody, query.FieldColor, query.FieldEngrave, query.FieldEngraveText},
	FormFeedback: {query.FieldName, query.FieldFeedback},
}

// Form is one submission form. After a successful post it hides, shows the
// server's confirmation and resets itself once the delay has passed.
type Form struct {
	mu    sync.Mutex
	kind  FormKind
	sched Scheduler
	delay time.Duration

	values      url.Values
	hidden      bool
	message     string
	engraveText bool
}

func NewForm(kind FormKind, sched Scheduler, delay time.Duration) *Form {
	if sched == nil {
		sched = wallClock{}
	}
	return &Form{kind: kind, sched: sched, delay: delay, values: url.Values{}}
}

func (f *Form) Kind() FormKind { return f.kind }

// FormFields lists a form's fields in display order.
func FormFields(kind FormKind) []string { return slices.Clone(formFields[kind]) }

func (f *Form) Fields() []string { return FormFields(f.kind) }

// Set stores a field value. Choosing engrave=1 reveals the engraving text
// field and makes it required; any other choice hides it.
func (f *Form) Set(field, value string) error {
	if !slices.Contains(formFields[f.kind], field) {
		return ErrUnknownField
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values.Set(field, value)
	if field == query.FieldEngrave {
		f.engraveText = value == "1"
	}
	return nil
}

// Missing lists required fields that are still blank, in form order.
func (f *Form) Missing() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, field := range formFields[f.kind] {
		if field == query.FieldEngraveText && !f.engraveText {
			continue
		}
		if strings.TrimSpace(f.values.Get(field)) == "" {
			out = append(out, field)
		}
	}
	return out
}

// Values is what gets posted. A hidden engraving text field is not sent.
func (f *Form) Values() url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := url.Values{}
	for k, v := range f.values {
		if k == query.FieldEngraveText && !f.engraveText {
			continue
		}
		out[k] = slices.Clone(v)
	}
	return out
}

func (f *Form) succeeded(message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hidden = true
	f.message = message
	f.sched.AfterFunc(f.delay, f.reset)
}

func (f *Form) reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values = url.Values{}
	f.engraveText = false
	f.hidden = false
	f.message = ""
}

type FormState struct {
	Kind             FormKind
	Values           url.Values
	Hidden           bool
	Message          string
	EngraveTextShown bool
}

func (f *Form) State() FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	vals := url.Values{}
	for k, v := range f.values {
		vals[k] = slices.Clone(v)
	}
	return FormState{Kind: f.kind, Values: vals, Hidden: f.hidden, Message: f.message, EngraveTextShown: f.engraveText}
}
