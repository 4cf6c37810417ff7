package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/trezcool/sge/core/academic"
	"github.com/trezcool/sge/core/pedagogical"
)

// findByID returns the item of items whose id is id.
func findByID[T any](items []T, id int, idOf func(T) int) (T, error) {
	for _, it := range items {
		if idOf(it) == id {
			return it, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("%d: no such record", id)
}

// removeFlags declares the flags every delete action takes.
func removeFlags(fs *flag.FlagSet) (id *int, yes *bool) {
	id = fs.Int("id", 0, "ID of the record to delete")
	yes = fs.Bool("y", false, "do not ask for confirmation")
	return id, yes
}

func (cli *commandLine) schools(ctx context.Context, args []string) error {
	action, args, err := cli.action("escolas", args, "list", "create", "update", "delete")
	if err != nil {
		return err
	}
	fs := cli.flagSet("escolas " + action)
	f := cli.Schools.Form()

	switch action {
	case "create":
		vals := formFlags(fs, f.Fields())
		if err := parse(fs, args); err != nil {
			return err
		}
		cli.Schools.New()
		if err := fillForm(fs, f, vals); err != nil {
			return err
		}
		_, err := cli.Schools.Submit(ctx)
		return err

	case "update":
		id := fs.Int("id", 0, "ID of the school")
		vals := formFlags(fs, f.Fields())
		if err := parse(fs, args); err != nil {
			return err
		}
		if err := required(fs, id); err != nil {
			return err
		}
		schools, err := cli.Schools.Load(ctx)
		if err != nil {
			return err
		}
		school, err := findByID(schools, *id, func(s pedagogical.School) int { return s.ID })
		if err != nil {
			return err
		}
		cli.Schools.Edit(school)
		if err := fillForm(fs, f, vals); err != nil {
			return err
		}
		_, err = cli.Schools.Submit(ctx)
		return err

	case "delete":
		id, yes := removeFlags(fs)
		if err := parse(fs, args); err != nil {
			return err
		}
		if err := required(fs, id); err != nil {
			return err
		}
		cli.Prompter.assumeYes = *yes
		return cli.Schools.Delete(ctx, *id)

	default:
		if err := parse(fs, args); err != nil {
			return err
		}
		schools, err := cli.Schools.Load(ctx)
		if err != nil {
			return err
		}
		tw := cli.table("ID", "NOME", "INEP", "ENDEREÇO")
		for _, s := range schools {
			row(tw, s.ID, s.Name, orDash(s.INEP.String, s.INEP.Valid), orDash(s.Address.String, s.Address.Valid))
		}
		return tw.Flush()
	}
}

func (cli *commandLine) academicYears(ctx context.Context, args []string) error {
	action, args, err := cli.action("anos", args, "list", "create", "update", "delete")
	if err != nil {
		return err
	}
	fs := cli.flagSet("anos " + action)
	schoolID := fs.Int("escola", 0, "ID of the school")
	f := cli.AcademicYears.Form()

	var vals map[string]*string
	var id, yes = new(int), new(bool)
	switch action {
	case "create":
		vals = formFlags(fs, f.Fields())
	case "update":
		id = fs.Int("id", 0, "ID of the academic year")
		vals = formFlags(fs, f.Fields())
	case "delete":
		id, yes = removeFlags(fs)
	}
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := required(fs, schoolID); err != nil {
		return err
	}
	years, err := cli.AcademicYears.SelectSchool(ctx, *schoolID)
	if err != nil {
		return err
	}

	switch action {
	case "create":
		if err := cli.AcademicYears.New(); err != nil {
			return err
		}
		if err := fillForm(fs, f, vals); err != nil {
			return err
		}
		_, err := cli.AcademicYears.Submit(ctx)
		return err

	case "update":
		if err := required(fs, id); err != nil {
			return err
		}
		year, err := findByID(years, *id, func(y pedagogical.AcademicYear) int { return y.ID })
		if err != nil {
			return err
		}
		cli.AcademicYears.Edit(year)
		if err := fillForm(fs, f, vals); err != nil {
			return err
		}
		_, err = cli.AcademicYears.Submit(ctx)
		return err

	case "delete":
		if err := required(fs, id); err != nil {
			return err
		}
		cli.Prompter.assumeYes = *yes
		return cli.AcademicYears.Delete(ctx, *id)

	default:
		tw := cli.table("ID", "ANO", "INÍCIO", "FIM", "ATIVO")
		for _, y := range years {
			active := "não"
			if y.Active {
				active = "sim"
			}
			row(tw, y.ID, y.Year, y.StartDate, y.EndDate, active)
		}
		return tw.Flush()
	}
}

func (cli *commandLine) subjects(ctx context.Context, args []string) error {
	action, args, err := cli.action("disciplinas", args, "list", "create", "update", "delete")
	if err != nil {
		return err
	}
	fs := cli.flagSet("disciplinas " + action)
	f := cli.Subjects.Form()

	switch action {
	case "create":
		vals := formFlags(fs, f.Fields())
		if err := parse(fs, args); err != nil {
			return err
		}
		cli.Subjects.New()
		if err := fillForm(fs, f, vals); err != nil {
			return err
		}
		_, err := cli.Subjects.Submit(ctx)
		return err

	case "update":
		id := fs.Int("id", 0, "ID of the subject")
		vals := formFlags(fs, f.Fields())
		if err := parse(fs, args); err != nil {
			return err
		}
		if err := required(fs, id); err != nil {
			return err
		}
		subjects, err := cli.Subjects.Load(ctx)
		if err != nil {
			return err
		}
		subject, err := findByID(subjects, *id, func(s pedagogical.Subject) int { return s.ID })
		if err != nil {
			return err
		}
		cli.Subjects.Edit(subject)
		if err := fillForm(fs, f, vals); err != nil {
			return err
		}
		_, err = cli.Subjects.Submit(ctx)
		return err

	case "delete":
		id, yes := removeFlags(fs)
		if err := parse(fs, args); err != nil {
			return err
		}
		if err := required(fs, id); err != nil {
			return err
		}
		cli.Prompter.assumeYes = *yes
		return cli.Subjects.Delete(ctx, *id)

	default:
		if err := parse(fs, args); err != nil {
			return err
		}
		subjects, err := cli.Subjects.Load(ctx)
		if err != nil {
			return err
		}
		tw := cli.table("ID", "NOME", "CÓDIGO")
		for _, s := range subjects {
			row(tw, s.ID, s.Name, s.Code)
		}
		return tw.Flush()
	}
}

func (cli *commandLine) zoning(ctx context.Context, args []string) error {
	action, args, err := cli.action("zoneamento", args, "list", "create", "delete")
	if err != nil {
		return err
	}
	fs := cli.flagSet("zoneamento " + action)
	f := cli.Zoning.Form()

	switch action {
	case "create":
		vals := formFlags(fs, f.Fields())
		if err := parse(fs, args); err != nil {
			return err
		}
		cli.Zoning.New()
		if err := fillForm(fs, f, vals); err != nil {
			return err
		}
		_, err := cli.Zoning.Submit(ctx)
		return err

	case "delete":
		id, yes := removeFlags(fs)
		if err := parse(fs, args); err != nil {
			return err
		}
		if err := required(fs, id); err != nil {
			return err
		}
		cli.Prompter.assumeYes = *yes
		return cli.Zoning.Delete(ctx, *id)

	default:
		if err := parse(fs, args); err != nil {
			return err
		}
		rules, err := cli.Zoning.Load(ctx)
		if err != nil {
			return err
		}
		tw := cli.table("ID", "BAIRRO", "ESCOLA")
		for _, r := range rules {
			row(tw, r.ID, r.Neighborhood, r.SchoolName)
		}
		return tw.Flush()
	}
}

func (cli *commandLine) queue(ctx context.Context, args []string) error {
	action, args, err := cli.action("fila", args, "list", "create", "delete")
	if err != nil {
		return err
	}
	fs := cli.flagSet("fila " + action)
	f := cli.Queue.Form()

	switch action {
	case "create":
		vals := formFlags(fs, f.Fields())
		search := fs.String("aluno", "", "name of the student, when aluno_id is not known")
		if err := parse(fs, args); err != nil {
			return err
		}
		cli.Queue.New()
		if *search != "" {
			found, err := cli.Queue.SearchStudents(ctx, *search)
			if err != nil {
				return err
			}
			if len(found) == 0 {
				return fmt.Errorf("%q: no such student", *search)
			}
			if err := f.Set("aluno_id", fmt.Sprint(found[0].ID)); err != nil {
				return err
			}
		}
		if err := fillForm(fs, f, vals); err != nil {
			return err
		}
		_, err := cli.Queue.Submit(ctx)
		return err

	case "delete":
		id, yes := removeFlags(fs)
		if err := parse(fs, args); err != nil {
			return err
		}
		if err := required(fs, id); err != nil {
			return err
		}
		cli.Prompter.assumeYes = *yes
		return cli.Queue.Delete(ctx, *id)

	default:
		if err := parse(fs, args); err != nil {
			return err
		}
		entries, err := cli.Queue.Load(ctx)
		if err != nil {
			return err
		}
		tw := cli.table("ID", "ALUNO", "ESCOLA PRETENDIDA", "DATA", "STATUS")
		for _, e := range entries {
			row(tw, e.ID, e.StudentName, e.DesiredSchool(), e.RequestDate, e.Status)
		}
		return tw.Flush()
	}
}

func (cli *commandLine) classes(ctx context.Context, args []string) error {
	if _, args, err := cli.action("turmas", args, "list"); err != nil {
		return err
	} else if err := parse(cli.flagSet("turmas list"), args); err != nil {
		return err
	}
	classes, err := cli.Diary.Classes(ctx)
	if err != nil {
		return err
	}
	return cli.printClasses(classes)
}

func (cli *commandLine) printClasses(classes []academic.Class) error {
	tw := cli.table("ID", "TURMA", "TURNO")
	for _, c := range classes {
		row(tw, c.ID, c.Label(), c.Shift)
	}
	return tw.Flush()
}
