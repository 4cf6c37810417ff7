package screens

import (
	"context"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/sge/core/academic"
	"github.com/trezcool/sge/core/diary"
	"github.com/trezcool/sge/core/form"
	"github.com/trezcool/sge/core/query"
)

type LessonPlans struct {
	classes *query.List[[]academic.Class]
	plans   *query.Dependent[int, []diary.LessonPlan]
	crud    *crud[diary.LessonPlanInput, diary.LessonPlan]
}

func NewLessonPlans(env Env, repo diary.Repository, academicRepo academic.Repository) *LessonPlans {
	lp := &LessonPlans{
		classes: query.NewList(env.Client, KeyClasses, academicRepo.ListClasses),
		plans:   query.NewDependent(env.Client, KeyLessonPlans, repo.ListLessonPlans),
	}
	f := form.New(env.Validate, env.Translator,
		func() diary.LessonPlanInput { return diary.LessonPlanInput{} },
		form.IDField("turma_id", func(v *diary.LessonPlanInput) *int { return &v.ClassID }),
		form.DateField("data", func(v *diary.LessonPlanInput) *string { return &v.Date }),
		form.TextField("conteudo", func(v *diary.LessonPlanInput) *string { return &v.Content }),
		form.OptionalTextField("metodologia", func(v *diary.LessonPlanInput) *null.String { return &v.Methodology }),
		form.OptionalTextField("tarefa_casa", func(v *diary.LessonPlanInput) *null.String { return &v.Homework }),
	)
	lp.crud = newCrud(env, f, crudConfig[diary.LessonPlanInput, diary.LessonPlan]{
		create:  repo.CreateLessonPlan,
		update:  repo.UpdateLessonPlan,
		remove:  repo.DeleteLessonPlan,
		ownerOf: func(in diary.LessonPlanInput) query.Key { return KeyLessonPlans(in.ClassID) },
		current: lp.plans.Key,
		saved:   "Plano salvo!",
		removed: "Plano removido!",
		prompt:  "Excluir plano?",
		reload:  []func(ctx context.Context) error{dependentLoader(lp.plans)},
	})
	lp.plans.OnReset(f.Close)
	return lp
}

func (lp *LessonPlans) Classes(ctx context.Context) ([]academic.Class, error) {
	return lp.classes.Load(ctx)
}

func (lp *LessonPlans) SelectClass(ctx context.Context, classID int) ([]diary.LessonPlan, error) {
	return lp.plans.Select(ctx, classID)
}

func (lp *LessonPlans) Class() (int, bool) { return lp.plans.Parent() }

func (lp *LessonPlans) View() query.State[[]diary.LessonPlan] { return lp.plans.View() }

func (lp *LessonPlans) Form() *form.Form[diary.LessonPlanInput] { return lp.crud.form }

func (lp *LessonPlans) New() error {
	classID, ok := lp.plans.Parent()
	if !ok {
		return ErrNoSelection
	}
	lp.crud.form.OpenNew()
	return lp.crud.form.Update(func(v *diary.LessonPlanInput) { v.ClassID = classID })
}

func (lp *LessonPlans) Edit(plan diary.LessonPlan) { lp.crud.form.OpenEdit(plan.ID, plan.AsInput()) }

func (lp *LessonPlans) Cancel() { lp.crud.form.Close() }

func (lp *LessonPlans) Submit(ctx context.Context) (diary.LessonPlan, error) {
	return lp.crud.submit(ctx)
}

func (lp *LessonPlans) Delete(ctx context.Context, id int) error { return lp.crud.delete(ctx, id) }
