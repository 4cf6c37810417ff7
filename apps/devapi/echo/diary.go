package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/sge/core/diary"
	"github.com/trezcool/sge/storage/inmem"
)

type diaryApi struct {
	repo       diary.Repository
	attendance diary.AttendanceRecorder
	v          validation
}

func registerDiaryAPI(g *echo.Group, db *inmemdb.DB, v validation) {
	api := diaryApi{
		repo:       inmemdb.NewDiaryRepository(db),
		attendance: inmemdb.NewAttendanceRecorder(db),
		v:          v,
	}

	dg := g.Group("/diary")
	dg.GET("/turmas/:id/avaliacoes", api.listEvaluations)
	dg.POST("/avaliacoes", api.createEvaluation)
	dg.GET("/avaliacoes/:id/notas", api.listGrades)
	dg.POST("/avaliacoes/:id/notas", api.saveGrades)

	dg.GET("/turmas/:id/planos", api.listLessonPlans)
	dg.POST("/planos", api.createLessonPlan)
	dg.PUT("/planos/:id", api.updateLessonPlan)
	dg.DELETE("/planos/:id", api.deleteLessonPlan)

	dg.POST("/chamadas", api.recordAttendance)
}

// Handlers

func (api *diaryApi) listEvaluations(ctx echo.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	evaluations, err := api.repo.ListEvaluations(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "listing evaluations")
	}
	return ctx.JSON(http.StatusOK, evaluations)
}

func (api *diaryApi) createEvaluation(ctx echo.Context) error {
	var data diary.EvaluationInput
	if err := api.v.bind(ctx, &data, "EvaluationInput"); err != nil {
		return err
	}
	evaluation, err := api.repo.CreateEvaluation(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating evaluation")
	}
	return ctx.JSON(http.StatusCreated, evaluation)
}

func (api *diaryApi) listGrades(ctx echo.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	grades, err := api.repo.ListGrades(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "listing grades")
	}
	return ctx.JSON(http.StatusOK, grades)
}

func (api *diaryApi) saveGrades(ctx echo.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	var data diary.GradeBatch
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to GradeBatch")
	}
	if err := api.repo.SaveGrades(ctx.Request().Context(), id, data); err != nil {
		return errors.Wrap(err, "saving grades")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"success": true})
}

func (api *diaryApi) listLessonPlans(ctx echo.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	plans, err := api.repo.ListLessonPlans(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "listing lesson plans")
	}
	return ctx.JSON(http.StatusOK, plans)
}

func (api *diaryApi) createLessonPlan(ctx echo.Context) error {
	var data diary.LessonPlanInput
	if err := api.v.bind(ctx, &data, "LessonPlanInput"); err != nil {
		return err
	}
	plan, err := api.repo.CreateLessonPlan(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating lesson plan")
	}
	return ctx.JSON(http.StatusCreated, plan)
}

func (api *diaryApi) updateLessonPlan(ctx echo.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	var data diary.LessonPlanInput
	if err := api.v.bind(ctx, &data, "LessonPlanInput"); err != nil {
		return err
	}
	plan, err := api.repo.UpdateLessonPlan(ctx.Request().Context(), id, data)
	if err != nil {
		return errors.Wrap(err, "updating lesson plan")
	}
	return ctx.JSON(http.StatusOK, plan)
}

func (api *diaryApi) deleteLessonPlan(ctx echo.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	if err := api.repo.DeleteLessonPlan(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting lesson plan")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *diaryApi) recordAttendance(ctx echo.Context) error {
	var data diary.AttendanceSheet
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to AttendanceSheet")
	}
	if _, err := api.attendance.RecordAttendance(ctx.Request().Context(), data); err != nil {
		return errors.Wrap(err, "recording attendance")
	}
	return ctx.JSON(http.StatusCreated, echo.Map{"success": true})
}
