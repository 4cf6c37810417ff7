package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/sge/core/reports"
	"github.com/trezcool/sge/storage/inmem"
)

type reportsApi struct {
	repo reports.Repository
}

func registerReportsAPI(g *echo.Group, db *inmemdb.DB) {
	api := reportsApi{repo: inmemdb.NewReportsRepository(db)}

	rg := g.Group("/reports")
	rg.GET("/dashboard/stats", api.dashboardStats)
	rg.GET("/educacenso/:kind", api.educacenso)
}

func (api *reportsApi) dashboardStats(ctx echo.Context) error {
	stats, err := api.repo.DashboardStats(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "computing dashboard stats")
	}
	return ctx.JSON(http.StatusOK, stats)
}

func (api *reportsApi) educacenso(ctx echo.Context) error {
	kind := ctx.Param("kind")
	data, err := api.repo.Educacenso(ctx.Request().Context(), kind)
	if err != nil {
		return errors.Wrap(err, "exporting educacenso")
	}
	ctx.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename="+reports.ExportFilename(kind))
	return ctx.Blob(http.StatusOK, "text/csv", data)
}
