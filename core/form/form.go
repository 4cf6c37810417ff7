// Package form is the modal form controller shared by every create/edit flow.
package form

import (
	"fmt"
	"sync"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/sge/core"
)

type Mode int

const (
	ModeClosed Mode = iota
	ModeCreating
	ModeEditing
)

func (m Mode) String() string {
	switch m {
	case ModeCreating:
		return "creating"
	case ModeEditing:
		return "editing"
	default:
		return "closed"
	}
}

// State is the modal state. ID is set only in ModeEditing.
type State struct {
	Mode Mode
	ID   int
}

var (
	ErrClosed       = errors.New("form is closed")
	ErrUnknownField = errors.New("unknown form field")
)

type cleaner interface {
	Clean()
}

// Form holds the values of a modal form. Values always belong to the record of
// the current State: every transition resets them first.
type Form[V any] struct {
	mu         sync.RWMutex
	state      State
	values     V
	parseErrs  map[string]string
	errs       map[string]string
	defaults   func() V
	fields     map[string]Field[V]
	order      []string
	validate   *validator.Validate
	translator ut.Translator
	messages   map[string]string
}

// New builds a closed form. defaults returns the values of a blank form.
func New[V any](validate *validator.Validate, translator ut.Translator, defaults func() V, fields ...Field[V]) *Form[V] {
	f := &Form[V]{
		defaults:   defaults,
		fields:     make(map[string]Field[V], len(fields)),
		validate:   validate,
		translator: translator,
		parseErrs:  map[string]string{},
		errs:       map[string]string{},
	}
	for _, fld := range fields {
		f.fields[fld.name] = fld
		f.order = append(f.order, fld.name)
	}
	f.values = defaults()
	return f
}

// WithMessages overrides validation texts, keyed by "field.tag" or "field".
func (f *Form[V]) WithMessages(messages map[string]string) *Form[V] {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = messages
	return f
}

func (f *Form[V]) reset() {
	f.values = f.defaults()
	f.parseErrs = map[string]string{}
	f.errs = map[string]string{}
}

func (f *Form[V]) OpenNew() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reset()
	f.state = State{Mode: ModeCreating}
}

// OpenEdit targets record id, populating the form from values.
func (f *Form[V]) OpenEdit(id int, values V) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reset()
	f.state = State{Mode: ModeEditing, ID: id}
	f.values = values
}

func (f *Form[V]) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reset()
	f.state = State{}
}

func (f *Form[V]) State() State {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.state
}

func (f *Form[V]) IsOpen() bool {
	return f.State().Mode != ModeClosed
}

// Set parses raw into the named field. A parse failure is kept as that field's error.
func (f *Form[V]) Set(name, raw string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state.Mode == ModeClosed {
		return ErrClosed
	}
	fld, ok := f.fields[name]
	if !ok {
		return errors.Wrapf(ErrUnknownField, "%q", name)
	}
	delete(f.errs, name)
	if err := fld.parse(&f.values, raw); err != nil {
		f.parseErrs[name] = err.Error()
		f.errs[name] = err.Error()
		return core.NewValidationError(nil, core.FieldError{Field: name, Error: err.Error()})
	}
	delete(f.parseErrs, name)
	return nil
}

// Get renders the named field's current value.
func (f *Form[V]) Get(name string) string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	fld, ok := f.fields[name]
	if !ok {
		return ""
	}
	return fld.format(&f.values)
}

// Fields returns the field names in declaration order.
func (f *Form[V]) Fields() []string {
	return append([]string(nil), f.order...)
}

// Update edits the values in place.
func (f *Form[V]) Update(fn func(v *V)) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state.Mode == ModeClosed {
		return ErrClosed
	}
	fn(&f.values)
	return nil
}

func (f *Form[V]) Values() V {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.values
}

// Validate cleans and validates the values, returning them when they are valid.
// Field errors are kept until the next Set, Validate or transition.
func (f *Form[V]) Validate() (V, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state.Mode == ModeClosed {
		var zero V
		return zero, ErrClosed
	}
	f.errs = make(map[string]string, len(f.parseErrs))
	if len(f.parseErrs) > 0 {
		for name, msg := range f.parseErrs {
			f.errs[name] = msg
		}
		return f.values, f.pendingParseErrors()
	}

	if c, ok := interface{}(&f.values).(cleaner); ok {
		c.Clean()
	}
	err := core.ValidateStruct(f.validate, f.translator, f.values, f.messages)
	if err == nil {
		return f.values, nil
	}
	if vErr, ok := errors.Cause(err).(*core.ValidationError); ok {
		for _, fe := range vErr.Fields {
			f.errs[fe.Field] = fe.Error
		}
	}
	return f.values, err
}

func (f *Form[V]) pendingParseErrors() error {
	flds := make([]core.FieldError, 0, len(f.parseErrs))
	for name, msg := range f.parseErrs {
		flds = append(flds, core.FieldError{Field: name, Error: msg})
	}
	return core.NewValidationError(nil, flds...)
}

// Errors returns the field errors of the last Set or Validate.
func (f *Form[V]) Errors() map[string]string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	errs := make(map[string]string, len(f.errs))
	for k, v := range f.errs {
		errs[k] = v
	}
	return errs
}

func (s State) String() string {
	if s.Mode == ModeEditing {
		return fmt.Sprintf("editing(%d)", s.ID)
	}
	return s.Mode.String()
}
