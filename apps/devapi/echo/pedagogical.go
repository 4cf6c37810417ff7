package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/sge/core/pedagogical"
	"github.com/trezcool/sge/storage/inmem"
)

type pedagogicalApi struct {
	repo pedagogical.Repository
	v    validation
}

func registerPedagogicalAPI(g *echo.Group, db *inmemdb.DB, v validation) {
	api := pedagogicalApi{repo: inmemdb.NewPedagogicalRepository(db), v: v}

	pg := g.Group("/pedagogical")
	pg.GET("/escolas", api.listSchools)
	pg.POST("/escolas", api.createSchool)
	pg.PUT("/escolas/:id", api.updateSchool)
	pg.DELETE("/escolas/:id", api.deleteSchool)
	pg.GET("/escolas/:id/anos-letivos", api.listAcademicYears)

	pg.POST("/anos-letivos", api.createAcademicYear)
	pg.PUT("/anos-letivos/:id", api.updateAcademicYear)
	pg.DELETE("/anos-letivos/:id", api.deleteAcademicYear)

	pg.GET("/disciplinas", api.listSubjects)
	pg.POST("/disciplinas", api.createSubject)
	pg.PUT("/disciplinas/:id", api.updateSubject)
	pg.DELETE("/disciplinas/:id", api.deleteSubject)

	pg.GET("/zoneamento", api.listZoningRules)
	pg.POST("/zoneamento", api.createZoningRule)
	pg.DELETE("/zoneamento/:id", api.deleteZoningRule)
}

// Handlers

func (api *pedagogicalApi) listSchools(ctx echo.Context) error {
	schools, err := api.repo.ListSchools(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "listing schools")
	}
	return ctx.JSON(http.StatusOK, schools)
}

func (api *pedagogicalApi) createSchool(ctx echo.Context) error {
	var data pedagogical.SchoolInput
	if err := api.v.bind(ctx, &data, "SchoolInput"); err != nil {
		return err
	}
	school, err := api.repo.CreateSchool(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating school")
	}
	return ctx.JSON(http.StatusCreated, school)
}

func (api *pedagogicalApi) updateSchool(ctx echo.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	var data pedagogical.SchoolInput
	if err := api.v.bind(ctx, &data, "SchoolInput"); err != nil {
		return err
	}
	school, err := api.repo.UpdateSchool(ctx.Request().Context(), id, data)
	if err != nil {
		return errors.Wrap(err, "updating school")
	}
	return ctx.JSON(http.StatusOK, school)
}

func (api *pedagogicalApi) deleteSchool(ctx echo.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	if err := api.repo.DeleteSchool(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting school")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *pedagogicalApi) listAcademicYears(ctx echo.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	years, err := api.repo.ListAcademicYears(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "listing academic years")
	}
	return ctx.JSON(http.StatusOK, years)
}

func (api *pedagogicalApi) createAcademicYear(ctx echo.Context) error {
	var data pedagogical.AcademicYearInput
	if err := api.v.bind(ctx, &data, "AcademicYearInput"); err != nil {
		return err
	}
	year, err := api.repo.CreateAcademicYear(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating academic year")
	}
	return ctx.JSON(http.StatusCreated, year)
}

func (api *pedagogicalApi) updateAcademicYear(ctx echo.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	var data pedagogical.AcademicYearInput
	if err := api.v.bind(ctx, &data, "AcademicYearInput"); err != nil {
		return err
	}
	year, err := api.repo.UpdateAcademicYear(ctx.Request().Context(), id, data)
	if err != nil {
		return errors.Wrap(err, "updating academic year")
	}
	return ctx.JSON(http.StatusOK, year)
}

func (api *pedagogicalApi) deleteAcademicYear(ctx echo.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	if err := api.repo.DeleteAcademicYear(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting academic year")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *pedagogicalApi) listSubjects(ctx echo.Context) error {
	subjects, err := api.repo.ListSubjects(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "listing subjects")
	}
	return ctx.JSON(http.StatusOK, subjects)
}

func (api *pedagogicalApi) createSubject(ctx echo.Context) error {
	var data pedagogical.SubjectInput
	if err := api.v.bind(ctx, &data, "SubjectInput"); err != nil {
		return err
	}
	subject, err := api.repo.CreateSubject(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating subject")
	}
	return ctx.JSON(http.StatusCreated, subject)
}

func (api *pedagogicalApi) updateSubject(ctx echo.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	var data pedagogical.SubjectInput
	if err := api.v.bind(ctx, &data, "SubjectInput"); err != nil {
		return err
	}
	subject, err := api.repo.UpdateSubject(ctx.Request().Context(), id, data)
	if err != nil {
		return errors.Wrap(err, "updating subject")
	}
	return ctx.JSON(http.StatusOK, subject)
}

func (api *pedagogicalApi) deleteSubject(ctx echo.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	if err := api.repo.DeleteSubject(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting subject")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *pedagogicalApi) listZoningRules(ctx echo.Context) error {
	rules, err := api.repo.ListZoningRules(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "listing zoning rules")
	}
	return ctx.JSON(http.StatusOK, rules)
}

func (api *pedagogicalApi) createZoningRule(ctx echo.Context) error {
	var data pedagogical.ZoningRuleInput
	if err := api.v.bind(ctx, &data, "ZoningRuleInput"); err != nil {
		return err
	}
	rule, err := api.repo.CreateZoningRule(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating zoning rule")
	}
	return ctx.JSON(http.StatusCreated, rule)
}

func (api *pedagogicalApi) deleteZoningRule(ctx echo.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	if err := api.repo.DeleteZoningRule(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting zoning rule")
	}
	return ctx.NoContent(http.StatusNoContent)
}
