package screens

import (
	"context"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/sge/core/academic"
	"github.com/trezcool/sge/core/form"
	"github.com/trezcool/sge/core/pedagogical"
	"github.com/trezcool/sge/core/people"
	"github.com/trezcool/sge/core/query"
)

// Queue is the enrollment waiting list.
type Queue struct {
	list     *query.List[[]academic.QueueEntry]
	students *query.List[[]people.Student]
	schools  *query.List[[]pedagogical.School]
	crud     *crud[academic.QueueEntryInput, academic.QueueEntry]
}

func NewQueue(env Env, repo academic.Repository, peopleRepo people.Repository, pedagogicalRepo pedagogical.Repository) *Queue {
	q := &Queue{
		list:     query.NewList(env.Client, KeyQueue, repo.ListQueue),
		students: query.NewList(env.Client, KeyStudents, peopleRepo.ListStudents),
		schools:  query.NewList(env.Client, KeySchools, pedagogicalRepo.ListSchools),
	}
	f := form.New(env.Validate, env.Translator,
		func() academic.QueueEntryInput { return academic.QueueEntryInput{} },
		form.IDField("aluno_id", func(v *academic.QueueEntryInput) *int { return &v.StudentID }),
		form.OptionalIDField("escola_id", func(v *academic.QueueEntryInput) *null.Int { return &v.SchoolID }),
	).WithMessages(map[string]string{"aluno_id": "Selecione um aluno"})
	q.crud = newCrud(env, f, crudConfig[academic.QueueEntryInput, academic.QueueEntry]{
		create:  repo.Enqueue,
		remove:  repo.Dequeue,
		owner:   KeyQueue,
		saved:   "Aluno adicionado à fila!",
		removed: "Removido da fila!",
		prompt:  "Remover da fila?",
		reload:  []func(ctx context.Context) error{loader(q.list.Load)},
	})
	return q
}

func (q *Queue) Load(ctx context.Context) ([]academic.QueueEntry, error) { return q.list.Load(ctx) }
func (q *Queue) View() query.State[[]academic.QueueEntry]                { return q.list.View() }
func (q *Queue) Form() *form.Form[academic.QueueEntryInput]              { return q.crud.form }

func (q *Queue) Schools(ctx context.Context) ([]pedagogical.School, error) {
	return q.schools.Load(ctx)
}

// SearchStudents loads the student select's options, ranked by similarity to term.
func (q *Queue) SearchStudents(ctx context.Context, term string) ([]people.Student, error) {
	students, err := q.students.Load(ctx)
	if err != nil {
		return nil, err
	}
	return people.Search(students, term), nil
}

func (q *Queue) New()    { q.crud.form.OpenNew() }
func (q *Queue) Cancel() { q.crud.form.Close() }

func (q *Queue) Submit(ctx context.Context) (academic.QueueEntry, error) { return q.crud.submit(ctx) }
func (q *Queue) Delete(ctx context.Context, id int) error                { return q.crud.delete(ctx, id) }
