package pedagogical

import (
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/sge/core"
)

var (
	dateRangeTag  = "daterange"
	dateRangeText = "{0} deve ser posterior à data de início"
)

// InitValidators registers the pedagogical struct validations.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	validate.RegisterStructValidation(academicYearStructValidation, AcademicYearInput{})
	core.RegisterCustomTranslation(validate, translator, dateRangeTag, dateRangeText)
}

// academicYearStructValidation checks that the year does not end before it starts.
func academicYearStructValidation(sl validator.StructLevel) {
	ai, ok := sl.Current().Interface().(AcademicYearInput)
	if !ok {
		return
	}
	start, err := time.Parse(core.DateLayout, ai.StartDate)
	if err != nil {
		return // reported by the field validation
	}
	end, err := time.Parse(core.DateLayout, ai.EndDate)
	if err != nil {
		return
	}
	if end.Before(start) {
		sl.ReportError(ai.EndDate, "data_fim", "EndDate", dateRangeTag, "")
	}
}
