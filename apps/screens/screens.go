// Package screens holds one headless controller per back-office page. Each
// controller owns its cached queries, modal form, draft state and mutations;
// front-ends only render what the controllers expose.
package screens

import (
	"context"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/sge/core"
	"github.com/trezcool/sge/core/form"
	"github.com/trezcool/sge/core/mutation"
	"github.com/trezcool/sge/core/query"
)

var (
	// ErrDeclined is returned when the user does not confirm a deletion. Nothing is sent.
	ErrDeclined = errors.New("operação cancelada")
	// ErrNoSelection is returned by actions that need a parent selection first.
	ErrNoSelection = errors.New("nenhum item selecionado")
)

// Cache keys shared across screens.
var (
	KeySchools   = query.Key{"escolas"}
	KeySubjects  = query.Key{"disciplinas"}
	KeyZoning    = query.Key{"zoneamento"}
	KeyQueue     = query.Key{"fila"}
	KeyClasses   = query.Key{"turmas"}
	KeyStudents  = query.Key{"alunos-lista"}
	KeyDashboard = query.Key{"dashboard-stats"}
	KeyYears     = query.Key{"anos-letivos"}
	KeyRosters   = query.Key{"alunos"}
	KeyEvals     = query.Key{"avaliacoes"}
	KeyGrades    = query.Key{"notas"}
	KeyPlans     = query.Key{"planos"}
	KeyCouncils  = query.Key{"conselho"}
	KeyOverviews = query.Key{"portal"}
)

const (
	saveFailedTitle   = "Erro ao salvar"
	removeFailedTitle = "Erro ao excluir"
)

func childKey(prefix query.Key, id int) query.Key {
	return append(append(query.Key(nil), prefix...), itoa(id))
}

func KeyAcademicYears(schoolID int) query.Key { return childKey(KeyYears, schoolID) }
func KeyRoster(classID int) query.Key         { return childKey(KeyRosters, classID) }
func KeyEvaluations(classID int) query.Key    { return childKey(KeyEvals, classID) }
func KeyGradeList(evaluationID int) query.Key { return childKey(KeyGrades, evaluationID) }
func KeyLessonPlans(classID int) query.Key    { return childKey(KeyPlans, classID) }
func KeyCouncil(classID int) query.Key        { return childKey(KeyCouncils, classID) }
func KeyOverview(studentID int) query.Key     { return childKey(KeyOverviews, studentID) }

// Confirmer asks the user to confirm a destructive action.
type Confirmer interface {
	Confirm(prompt string) bool
}

type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// Env carries the services every screen shares.
type Env struct {
	Client     *query.Client
	Notifier   core.Notifier
	Logger     core.Logger
	Validate   *validator.Validate
	Translator ut.Translator
	Confirm    Confirmer
}

func newMutation[In, Out any](env Env, fn func(ctx context.Context, in In) (Out, error)) *mutation.Mutation[In, Out] {
	return mutation.New(env.Client, env.Notifier, env.Logger, fn)
}

// refetch reloads the queries a mutation invalidated. A failure stays visible on the query state.
func refetch(ctx context.Context, logger core.Logger, loads ...func(ctx context.Context) error) {
	for _, load := range loads {
		if err := load(ctx); err != nil && !errors.Is(err, query.ErrSuperseded) {
			logger.Warn("refetch failed", err)
		}
	}
}

func loader[T any](fn func(ctx context.Context) (T, error)) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		_, err := fn(ctx)
		return err
	}
}

func dependentLoader[P comparable, T any](d *query.Dependent[P, T]) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		_, err := d.Refetch(ctx, false)
		return err
	}
}

type edit[In any] struct {
	ID int
	In In
}

// removal is a deletion together with the list its record was shown in.
type removal struct {
	ID    int
	Owner query.Key
}

type crudConfig[In, Out any] struct {
	create func(ctx context.Context, in In) (Out, error)
	update func(ctx context.Context, id int, in In) (Out, error)
	remove func(ctx context.Context, id int) error
	// owner is the list of a screen without a parent selection. Screens with one
	// set ownerOf, the list a record is written to, and current, the list a
	// deletion starts from.
	owner   query.Key
	ownerOf func(in In) query.Key
	current func() query.Key
	saved   string
	removed string
	prompt  string
	reload  []func(ctx context.Context) error
}

// crud wires a modal form to the mutations that create, update and delete its records.
type crud[In, Out any] struct {
	env     Env
	form    *form.Form[In]
	create  *mutation.Mutation[In, Out]
	update  *mutation.Mutation[edit[In], Out]
	remove  *mutation.Mutation[removal, struct{}]
	current func() query.Key
	prompt  string
	reloads []func(ctx context.Context) error
}

func newCrud[In, Out any](env Env, f *form.Form[In], cfg crudConfig[In, Out]) *crud[In, Out] {
	ownerOf, current := cfg.ownerOf, cfg.current
	if ownerOf == nil {
		ownerOf = func(In) query.Key { return cfg.owner }
	}
	if current == nil {
		current = func() query.Key { return cfg.owner }
	}
	c := &crud[In, Out]{env: env, form: f, current: current, prompt: cfg.prompt, reloads: cfg.reload}
	closeForm := func(Out) { f.Close() }

	c.create = newMutation(env, cfg.create).
		InvalidatesFunc(ownerOf).
		SuccessMessage(cfg.saved).
		ErrorTitle(saveFailedTitle).
		OnSuccess(closeForm)
	if cfg.update != nil {
		c.update = newMutation(env, func(ctx context.Context, e edit[In]) (Out, error) {
			return cfg.update(ctx, e.ID, e.In)
		}).
			InvalidatesFunc(func(e edit[In]) query.Key { return ownerOf(e.In) }).
			SuccessMessage(cfg.saved).
			ErrorTitle(saveFailedTitle).
			OnSuccess(closeForm)
	}
	if cfg.remove != nil {
		c.remove = newMutation(env, func(ctx context.Context, r removal) (struct{}, error) {
			return struct{}{}, cfg.remove(ctx, r.ID)
		}).
			InvalidatesFunc(func(r removal) query.Key { return r.Owner }).
			SuccessMessage(cfg.removed).
			ErrorTitle(removeFailedTitle)
	}
	return c
}

// submit validates the form and sends it as a create or an update, depending on its state.
func (c *crud[In, Out]) submit(ctx context.Context) (Out, error) {
	var out Out
	st := c.form.State()
	in, err := c.form.Validate()
	if err != nil {
		return out, err
	}

	switch {
	case st.Mode == form.ModeEditing && c.update != nil:
		out, err = c.update.Run(ctx, edit[In]{ID: st.ID, In: in})
	case st.Mode == form.ModeCreating:
		out, err = c.create.Run(ctx, in)
	default:
		return out, form.ErrClosed
	}
	if err != nil {
		return out, err
	}
	refetch(ctx, c.env.Logger, c.reloads...)
	return out, nil
}

// delete asks for confirmation, then removes record id.
func (c *crud[In, Out]) delete(ctx context.Context, id int) error {
	owner := c.current()
	if !c.env.Confirm.Confirm(c.prompt) {
		return ErrDeclined
	}
	if _, err := c.remove.Run(ctx, removal{ID: id, Owner: owner}); err != nil {
		return err
	}
	refetch(ctx, c.env.Logger, c.reloads...)
	return nil
}

func (c *crud[In, Out]) pending() bool {
	if c.create.Pending() {
		return true
	}
	if c.update != nil && c.update.Pending() {
		return true
	}
	return c.remove != nil && c.remove.Pending()
}
