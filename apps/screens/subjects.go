package screens

import (
	"context"

	"github.com/trezcool/sge/core/form"
	"github.com/trezcool/sge/core/pedagogical"
	"github.com/trezcool/sge/core/query"
)

type Subjects struct {
	list *query.List[[]pedagogical.Subject]
	crud *crud[pedagogical.SubjectInput, pedagogical.Subject]
}

func NewSubjects(env Env, repo pedagogical.Repository) *Subjects {
	s := &Subjects{list: query.NewList(env.Client, KeySubjects, repo.ListSubjects)}
	f := form.New(env.Validate, env.Translator,
		func() pedagogical.SubjectInput { return pedagogical.SubjectInput{} },
		form.TextField("nome", func(v *pedagogical.SubjectInput) *string { return &v.Name }),
		form.TextField("codigo", func(v *pedagogical.SubjectInput) *string { return &v.Code }),
	)
	s.crud = newCrud(env, f, crudConfig[pedagogical.SubjectInput, pedagogical.Subject]{
		create:  repo.CreateSubject,
		update:  repo.UpdateSubject,
		remove:  repo.DeleteSubject,
		owner:   KeySubjects,
		saved:   "Disciplina salva com sucesso!",
		removed: "Disciplina excluída!",
		prompt:  "Excluir?",
		reload:  []func(ctx context.Context) error{loader(s.list.Load)},
	})
	return s
}

func (s *Subjects) Load(ctx context.Context) ([]pedagogical.Subject, error) { return s.list.Load(ctx) }
func (s *Subjects) View() query.State[[]pedagogical.Subject]                { return s.list.View() }
func (s *Subjects) Form() *form.Form[pedagogical.SubjectInput]              { return s.crud.form }

func (s *Subjects) New() { s.crud.form.OpenNew() }
func (s *Subjects) Edit(subject pedagogical.Subject) {
	s.crud.form.OpenEdit(subject.ID, subject.AsInput())
}
func (s *Subjects) Cancel() { s.crud.form.Close() }

func (s *Subjects) Submit(ctx context.Context) (pedagogical.Subject, error) {
	return s.crud.submit(ctx)
}
func (s *Subjects) Delete(ctx context.Context, id int) error { return s.crud.delete(ctx, id) }
