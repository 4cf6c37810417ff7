package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/sge/core/people"
	"github.com/trezcool/sge/storage/inmem"
)

type peopleApi struct {
	repo people.Repository
}

func registerPeopleAPI(g *echo.Group, db *inmemdb.DB) {
	api := peopleApi{repo: inmemdb.NewPeopleRepository(db)}
	g.GET("/people/alunos", api.listStudents)
}

func (api *peopleApi) listStudents(ctx echo.Context) error {
	students, err := api.repo.ListStudents(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "listing students")
	}
	return ctx.JSON(http.StatusOK, students)
}
