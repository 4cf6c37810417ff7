package echoapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/sge/core/portal"
	"github.com/trezcool/sge/storage/inmem"
)

type portalApi struct {
	db   *inmemdb.DB
	repo portal.Repository
	v    validation
}

func registerPortalAPI(g *echo.Group, db *inmemdb.DB, v validation) {
	api := portalApi{db: db, repo: inmemdb.NewPortalRepository(db), v: v}

	pg := g.Group("/portal")
	pg.POST("/login", api.login)
	pg.GET("/me", api.me, api.tokenMiddleware())
}

// tokenMiddleware only lets a student read their own data.
func (api *portalApi) tokenMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			auth := ctx.Request().Header.Get(echo.HeaderAuthorization)
			token := strings.TrimPrefix(auth, "Token ")
			if auth == "" || token == auth {
				return errHttpUnauthorized
			}
			studentID, ok := api.db.TokenStudent(token)
			if !ok {
				return errHttpUnauthorized
			}
			if ctx.QueryParam("student_id") != strconv.Itoa(studentID) {
				return errHttpForbidden
			}
			return next(ctx)
		}
	}
}

func (api *portalApi) login(ctx echo.Context) error {
	var data portal.LoginRequest
	if err := api.v.bind(ctx, &data, "LoginRequest"); err != nil {
		return err
	}
	res, err := api.repo.Login(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "logging in")
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *portalApi) me(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.QueryParam("student_id"))
	if err != nil {
		return errHttpNotFound
	}
	overview, err := api.repo.Overview(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "building student overview")
	}
	return ctx.JSON(http.StatusOK, overview)
}
