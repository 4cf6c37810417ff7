package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"go.uber.org/dig"
	"golang.org/x/term"

	"github.com/trezcool/sge/apps/screens"
	"github.com/trezcool/sge/core"
	"github.com/trezcool/sge/core/form"
)

var (
	confirmFunc = terminalConfirm // mockable

	errHelp = errors.New("help provided")
)

// terminalConfirm asks prompt on the terminal. Anything but an explicit yes declines,
// and so does a stdin that is not a terminal.
func terminalConfirm(prompt string) bool {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return false
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return false
	}
	defer func() { _ = term.Restore(fd, state) }()

	t := term.NewTerminal(struct {
		io.Reader
		io.Writer
	}{os.Stdin, os.Stdout}, prompt+" [s/N] ")
	answer, err := t.ReadLine()
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "s", "sim", "y", "yes":
		return true
	}
	return false
}

// prompter confirms destructive actions, unless the user already said yes with -y.
type prompter struct {
	assumeYes bool
}

var _ screens.Confirmer = (*prompter)(nil)

func newPrompter() *prompter {
	return &prompter{}
}

func (p *prompter) Confirm(prompt string) bool {
	if p.assumeYes {
		return true
	}
	return confirmFunc(prompt)
}

type commandParams struct {
	dig.In
	Out                  io.Writer
	Prompter             *prompter
	Schools              *screens.Schools
	AcademicYears        *screens.AcademicYears
	Subjects             *screens.Subjects
	Zoning               *screens.Zoning
	Queue                *screens.Queue
	Diary                *screens.Diary
	Grades               *screens.Grades
	LessonPlans          *screens.LessonPlans
	Council              *screens.Council
	Educacenso           *screens.Educacenso
	Students             *screens.Students
	Dashboard            *screens.Dashboard
	PedagogicalDashboard *screens.PedagogicalDashboard
	Portal               *screens.Portal
}

type commandLine struct {
	Out                  io.Writer
	Prompter             *prompter
	Schools              *screens.Schools
	AcademicYears        *screens.AcademicYears
	Subjects             *screens.Subjects
	Zoning               *screens.Zoning
	Queue                *screens.Queue
	Diary                *screens.Diary
	Grades               *screens.Grades
	LessonPlans          *screens.LessonPlans
	Council              *screens.Council
	Educacenso           *screens.Educacenso
	Students             *screens.Students
	Dashboard            *screens.Dashboard
	PedagogicalDashboard *screens.PedagogicalDashboard
	Portal               *screens.Portal
}

func newCommandLine(p commandParams) *commandLine {
	return &commandLine{
		Out:                  p.Out,
		Prompter:             p.Prompter,
		Schools:              p.Schools,
		AcademicYears:        p.AcademicYears,
		Subjects:             p.Subjects,
		Zoning:               p.Zoning,
		Queue:                p.Queue,
		Diary:                p.Diary,
		Grades:               p.Grades,
		LessonPlans:          p.LessonPlans,
		Council:              p.Council,
		Educacenso:           p.Educacenso,
		Students:             p.Students,
		Dashboard:            p.Dashboard,
		PedagogicalDashboard: p.PedagogicalDashboard,
		Portal:               p.Portal,
	}
}

func (cli *commandLine) printUsage() {
	w := cli.Out
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  escolas list|create|update|delete                - schools")
	fmt.Fprintln(w, "  anos list|create|update|delete -escola ID        - academic years of a school")
	fmt.Fprintln(w, "  disciplinas list|create|update|delete            - subjects")
	fmt.Fprintln(w, "  zoneamento list|create|delete                    - zoning rules")
	fmt.Fprintln(w, "  fila list|create|delete                          - vacancy queue")
	fmt.Fprintln(w, "  turmas list                                      - classes")
	fmt.Fprintln(w, "  chamada -turma ID [-ausentes ID,ID]              - take a class's attendance")
	fmt.Fprintln(w, "  avaliacoes list|create -turma ID                 - evaluations of a class")
	fmt.Fprintln(w, "  notas list|save -turma ID -avaliacao ID          - grades of an evaluation")
	fmt.Fprintln(w, "  planos list|create|update|delete -turma ID       - lesson plans of a class")
	fmt.Fprintln(w, "  conselho -turma ID                               - class council report")
	fmt.Fprintln(w, "  educacenso escolas|alunos -o FILE                - download a census export")
	fmt.Fprintln(w, "  alunos list|boletim                              - students")
	fmt.Fprintln(w, "  dashboard                                        - network counters")
	fmt.Fprintln(w, "  pedagogico                                       - students at risk")
	fmt.Fprintln(w, "  portal login|me|logout                           - student portal")
	fmt.Fprintln(w, "Deletions ask for confirmation unless -y is given.")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	ctx := context.Background()
	cmd, rest := args[1], args[2:]
	switch cmd {
	case "escolas":
		return cli.schools(ctx, rest)
	case "anos":
		return cli.academicYears(ctx, rest)
	case "disciplinas":
		return cli.subjects(ctx, rest)
	case "zoneamento":
		return cli.zoning(ctx, rest)
	case "fila":
		return cli.queue(ctx, rest)
	case "turmas":
		return cli.classes(ctx, rest)
	case "chamada":
		return cli.attendance(ctx, rest)
	case "avaliacoes":
		return cli.evaluations(ctx, rest)
	case "notas":
		return cli.grades(ctx, rest)
	case "planos":
		return cli.lessonPlans(ctx, rest)
	case "conselho":
		return cli.council(ctx, rest)
	case "educacenso":
		return cli.educacenso(ctx, rest)
	case "alunos":
		return cli.students(ctx, rest)
	case "dashboard":
		return cli.dashboard(ctx, rest)
	case "pedagogico":
		return cli.pedagogical(ctx, rest)
	case "portal":
		return cli.portal(ctx, rest)
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cli.Out)
	return fs
}

func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return errHelp
		}
		return err
	}
	return nil
}

// action splits "<action> [flags]" and checks the action is one of actions.
func (cli *commandLine) action(cmd string, args []string, actions ...string) (string, []string, error) {
	if len(args) > 0 {
		for _, a := range actions {
			if args[0] == a {
				return a, args[1:], nil
			}
		}
	}
	fmt.Fprintf(cli.Out, "Usage: %s %s [flags]\n", cmd, strings.Join(actions, "|"))
	return "", nil, errHelp
}

// required prints the usage of fs when one of ids was not given.
func required(fs *flag.FlagSet, ids ...*int) error {
	for _, id := range ids {
		if *id <= 0 {
			fs.Usage()
			return errHelp
		}
	}
	return nil
}

// formFlags declares one string flag per form field, named after the field.
func formFlags(fs *flag.FlagSet, fields []string) map[string]*string {
	vals := make(map[string]*string, len(fields))
	for _, name := range fields {
		vals[name] = fs.String(name, "", "form field "+name)
	}
	return vals
}

// fillForm sets the form fields given on the command line. Parse failures stay
// on the form and are reported by its validation.
func fillForm[V any](fs *flag.FlagSet, f *form.Form[V], vals map[string]*string) error {
	var err error
	fs.Visit(func(fl *flag.Flag) {
		v, ok := vals[fl.Name]
		if !ok || err != nil {
			return
		}
		if setErr := f.Set(fl.Name, *v); setErr != nil && !core.IsValidationError(setErr) {
			err = setErr
		}
	})
	return err
}

func (cli *commandLine) table(header ...string) *tabwriter.Writer {
	tw := tabwriter.NewWriter(cli.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	return tw
}

func row(tw *tabwriter.Writer, cols ...interface{}) {
	strs := make([]string, len(cols))
	for i, c := range cols {
		strs[i] = fmt.Sprint(c)
	}
	fmt.Fprintln(tw, strings.Join(strs, "\t"))
}

func orDash(s string, valid bool) string {
	if !valid || s == "" {
		return "-"
	}
	return s
}
