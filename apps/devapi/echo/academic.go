package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/sge/core/academic"
	"github.com/trezcool/sge/storage/inmem"
)

type academicApi struct {
	repo academic.Repository
	v    validation
}

func registerAcademicAPI(g *echo.Group, db *inmemdb.DB, v validation) {
	api := academicApi{repo: inmemdb.NewAcademicRepository(db), v: v}

	ag := g.Group("/academic")
	ag.GET("/turmas", api.listClasses)
	ag.GET("/turmas/:id/alunos", api.listEnrollments)
	ag.GET("/turmas/:id/conselho", api.classCouncil)

	ag.GET("/fila", api.listQueue)
	ag.POST("/fila", api.enqueue)
	ag.DELETE("/fila/:id", api.dequeue)
}

// Handlers

func (api *academicApi) listClasses(ctx echo.Context) error {
	classes, err := api.repo.ListClasses(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "listing classes")
	}
	return ctx.JSON(http.StatusOK, classes)
}

func (api *academicApi) listEnrollments(ctx echo.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	enrollments, err := api.repo.ListEnrollments(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "listing enrollments")
	}
	return ctx.JSON(http.StatusOK, enrollments)
}

func (api *academicApi) classCouncil(ctx echo.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	rows, err := api.repo.ClassCouncil(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "building class council")
	}
	return ctx.JSON(http.StatusOK, rows)
}

func (api *academicApi) listQueue(ctx echo.Context) error {
	entries, err := api.repo.ListQueue(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "listing queue")
	}
	return ctx.JSON(http.StatusOK, entries)
}

func (api *academicApi) enqueue(ctx echo.Context) error {
	var data academic.QueueEntryInput
	if err := api.v.bind(ctx, &data, "QueueEntryInput"); err != nil {
		return err
	}
	entry, err := api.repo.Enqueue(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "enqueuing student")
	}
	return ctx.JSON(http.StatusCreated, entry)
}

func (api *academicApi) dequeue(ctx echo.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	if err := api.repo.Dequeue(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "removing queue entry")
	}
	return ctx.NoContent(http.StatusNoContent)
}
