package restrepo

import (
	"context"

	"github.com/trezcool/sge/core/diary"
)

type diaryRepository struct {
	c *Client
}

var _ diary.Repository = (*diaryRepository)(nil)

func NewDiaryRepository(c *Client) diary.Repository {
	return &diaryRepository{c: c}
}

func (repo *diaryRepository) ListEvaluations(ctx context.Context, classID int) ([]diary.Evaluation, error) {
	var evaluations []diary.Evaluation
	err := repo.c.get(ctx, "/diary/turmas/"+itoa(classID)+"/avaliacoes", &evaluations)
	return evaluations, err
}

func (repo *diaryRepository) CreateEvaluation(ctx context.Context, in diary.EvaluationInput) (diary.Evaluation, error) {
	var evaluation diary.Evaluation
	err := repo.c.post(ctx, "/diary/avaliacoes", in, &evaluation)
	return evaluation, err
}

func (repo *diaryRepository) ListGrades(ctx context.Context, evaluationID int) ([]diary.Grade, error) {
	var grades []diary.Grade
	err := repo.c.get(ctx, "/diary/avaliacoes/"+itoa(evaluationID)+"/notas", &grades)
	return grades, err
}

func (repo *diaryRepository) SaveGrades(ctx context.Context, evaluationID int, batch diary.GradeBatch) error {
	return repo.c.post(ctx, "/diary/avaliacoes/"+itoa(evaluationID)+"/notas", batch, nil)
}

func (repo *diaryRepository) ListLessonPlans(ctx context.Context, classID int) ([]diary.LessonPlan, error) {
	var plans []diary.LessonPlan
	err := repo.c.get(ctx, "/diary/turmas/"+itoa(classID)+"/planos", &plans)
	return plans, err
}

func (repo *diaryRepository) CreateLessonPlan(ctx context.Context, in diary.LessonPlanInput) (diary.LessonPlan, error) {
	var plan diary.LessonPlan
	err := repo.c.post(ctx, "/diary/planos", in, &plan)
	return plan, err
}

func (repo *diaryRepository) UpdateLessonPlan(ctx context.Context, id int, in diary.LessonPlanInput) (diary.LessonPlan, error) {
	var plan diary.LessonPlan
	err := repo.c.put(ctx, "/diary/planos/"+itoa(id), in, &plan)
	return plan, err
}

func (repo *diaryRepository) DeleteLessonPlan(ctx context.Context, id int) error {
	return repo.c.remove(ctx, "/diary/planos/"+itoa(id))
}
