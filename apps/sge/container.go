package main

import (
	"io"
	"log"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/dig"

	"github.com/trezcool/sge/apps/screens"
	"github.com/trezcool/sge/core"
	"github.com/trezcool/sge/core/diary"
	"github.com/trezcool/sge/core/pedagogical"
	"github.com/trezcool/sge/core/query"
	"github.com/trezcool/sge/core/session"
	logsvc "github.com/trezcool/sge/services/logger"
	notifysvc "github.com/trezcool/sge/services/notify"
	restrepo "github.com/trezcool/sge/storage/rest"
)

func newStdLogger(conf *core.Config) *log.Logger {
	return logsvc.NewStdLogger(conf, "SGE : ")
}

func newLogger(conf *core.Config, std *log.Logger) core.Logger {
	logger := logsvc.NewRollbarLogger(std, conf)
	logger.Enable(!conf.Debug)
	return logger
}

func newValidator() (*validator.Validate, ut.Translator) {
	validate, translator := core.NewValidator()
	pedagogical.InitValidators(validate, translator)
	return validate, translator
}

func newAttendanceRecorder(conf *core.Config, c *restrepo.Client, logger core.Logger) diary.AttendanceRecorder {
	return restrepo.NewAttendanceRecorder(c, conf.AttendanceEndpoint, logger)
}

func newSessionStore(conf *core.Config) session.Store {
	return session.NewFileStore(conf.Portal.SessionFile, conf.SecretKey)
}

type envParams struct {
	dig.In
	Client     *query.Client
	Notifier   core.Notifier
	Logger     core.Logger
	Validate   *validator.Validate
	Translator ut.Translator
	Prompter   *prompter
}

func newEnv(p envParams) screens.Env {
	return screens.Env{
		Client:     p.Client,
		Notifier:   p.Notifier,
		Logger:     p.Logger,
		Validate:   p.Validate,
		Translator: p.Translator,
		Confirm:    p.Prompter,
	}
}

// newContainer returns the dependency injection dig.Container of the command line.
// Output, notifications included, goes to out.
func newContainer(out io.Writer) *dig.Container {
	c := dig.New()

	must(c.Provide(func() io.Writer { return out }))
	must(c.Provide(core.NewConfig))
	must(c.Provide(newStdLogger))
	must(c.Provide(newLogger))
	must(c.Provide(newValidator))
	must(c.Provide(query.NewClient))
	must(c.Provide(notifysvc.NewConsoleNotifier))
	must(c.Provide(newPrompter))
	must(c.Provide(newEnv))

	// backend
	must(c.Provide(restrepo.NewClient))
	must(c.Provide(restrepo.NewPedagogicalRepository))
	must(c.Provide(restrepo.NewAcademicRepository))
	must(c.Provide(restrepo.NewDiaryRepository))
	must(c.Provide(restrepo.NewPeopleRepository))
	must(c.Provide(restrepo.NewReportsRepository))
	must(c.Provide(restrepo.NewPortalRepository))
	must(c.Provide(newAttendanceRecorder))
	must(c.Provide(newSessionStore))
	must(c.Provide(session.NewManager))

	// screens
	must(c.Provide(screens.NewSchools))
	must(c.Provide(screens.NewAcademicYears))
	must(c.Provide(screens.NewSubjects))
	must(c.Provide(screens.NewZoning))
	must(c.Provide(screens.NewQueue))
	must(c.Provide(screens.NewDiary))
	must(c.Provide(screens.NewGrades))
	must(c.Provide(screens.NewLessonPlans))
	must(c.Provide(screens.NewCouncil))
	must(c.Provide(screens.NewEducacenso))
	must(c.Provide(screens.NewStudents))
	must(c.Provide(screens.NewDashboard))
	must(c.Provide(screens.NewPedagogicalDashboard))
	must(c.Provide(screens.NewPortal))

	must(c.Provide(newCommandLine))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
