package echoapi

import (
	"strconv"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/sge/core"
)

type cleaner interface {
	Clean()
}

type validation struct {
	validate   *validator.Validate
	translator ut.Translator
}

// bind decodes the request body into data, cleans and validates it.
func (v validation) bind(ctx echo.Context, data interface{}, what string) error {
	if err := ctx.Bind(data); err != nil {
		return errors.Wrap(err, "binding to "+what)
	}
	if c, ok := data.(cleaner); ok {
		c.Clean()
	}
	return core.ValidateStruct(v.validate, v.translator, data, nil)
}

func paramID(ctx echo.Context, name string) (int, error) {
	id, err := strconv.Atoi(ctx.Param(name))
	if err != nil || id <= 0 {
		return 0, errHttpNotFound
	}
	return id, nil
}
