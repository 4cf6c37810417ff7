package main

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/trezcool/sge/apps/screens"
	"github.com/trezcool/sge/core/diary"
)

// idList is a comma separated list of IDs, e.g. "12,13".
type idList []int

func (l *idList) String() string {
	strs := make([]string, len(*l))
	for i, id := range *l {
		strs[i] = strconv.Itoa(id)
	}
	return strings.Join(strs, ",")
}

func (l *idList) Set(s string) error {
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part == "" {
			continue
		}
		id, err := strconv.Atoi(part)
		if err != nil {
			return fmt.Errorf("%q is not an ID", part)
		}
		*l = append(*l, id)
	}
	return nil
}

// gradeValues collects repeated "-nota MATRICULA=VALOR" flags.
type gradeValues map[int]float64

func (g gradeValues) String() string {
	ids := make([]int, 0, len(g))
	for id := range g {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	strs := make([]string, len(ids))
	for i, id := range ids {
		strs[i] = fmt.Sprintf("%d=%g", id, g[id])
	}
	return strings.Join(strs, ",")
}

func (g gradeValues) Set(s string) error {
	k, v, ok := strings.Cut(s, "=")
	if !ok {
		return fmt.Errorf("%q must be of form MATRICULA=VALOR", s)
	}
	id, err := strconv.Atoi(strings.TrimSpace(k))
	if err != nil {
		return fmt.Errorf("%q is not an ID", k)
	}
	value, err := strconv.ParseFloat(strings.Replace(strings.TrimSpace(v), ",", ".", 1), 64)
	if err != nil {
		return fmt.Errorf("%q is not a number", v)
	}
	g[id] = value
	return nil
}

func (cli *commandLine) attendance(ctx context.Context, args []string) error {
	fs := cli.flagSet("chamada")
	classID := fs.Int("turma", 0, "ID of the class")
	var absent idList
	fs.Var(&absent, "ausentes", "comma separated enrollment IDs of the absent students")
	send := fs.Bool("enviar", false, "submit the attendance; without it the sheet is only shown")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := required(fs, classID); err != nil {
		return err
	}

	roster, err := cli.Diary.SelectClass(ctx, *classID)
	if err != nil {
		return err
	}
	for _, id := range absent {
		if err := cli.Diary.SetPresent(id, false); err != nil {
			return fmt.Errorf("%d: not enrolled in this class", id)
		}
	}

	presence := cli.Diary.Presence()
	tw := cli.table("MATRÍCULA", "ALUNO", "PRESENTE")
	for _, e := range roster {
		mark := "sim"
		if !presence[e.ID] {
			mark = "não"
		}
		row(tw, e.ID, e.Name, mark)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if !*send {
		return nil
	}
	_, err = cli.Diary.Submit(ctx)
	return err
}

func (cli *commandLine) evaluations(ctx context.Context, args []string) error {
	action, args, err := cli.action("avaliacoes", args, "list", "create")
	if err != nil {
		return err
	}
	fs := cli.flagSet("avaliacoes " + action)
	classID := fs.Int("turma", 0, "ID of the class")
	f := cli.Grades.EvaluationForm()
	var vals map[string]*string
	if action == "create" {
		vals = formFlags(fs, f.Fields())
	}
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := required(fs, classID); err != nil {
		return err
	}
	evaluations, err := cli.Grades.SelectClass(ctx, *classID)
	if err != nil {
		return err
	}

	if action == "create" {
		if err := cli.Grades.NewEvaluation(); err != nil {
			return err
		}
		if err := fillForm(fs, f, vals); err != nil {
			return err
		}
		_, err := cli.Grades.SubmitEvaluation(ctx)
		return err
	}

	tw := cli.table("ID", "AVALIAÇÃO", "DISCIPLINA", "DATA")
	for _, e := range evaluations {
		row(tw, e.ID, e.Label(), orDash(e.SubjectName.String, e.SubjectName.Valid), e.Date)
	}
	return tw.Flush()
}

func (cli *commandLine) grades(ctx context.Context, args []string) error {
	action, args, err := cli.action("notas", args, "list", "save")
	if err != nil {
		return err
	}
	fs := cli.flagSet("notas " + action)
	classID := fs.Int("turma", 0, "ID of the class")
	evaluationID := fs.Int("avaliacao", 0, "ID of the evaluation")
	values := make(gradeValues)
	if action == "save" {
		fs.Var(values, "nota", "grade of an enrollment, as MATRICULA=VALOR (repeatable)")
	}
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := required(fs, classID, evaluationID); err != nil {
		return err
	}
	if _, err := cli.Grades.SelectClass(ctx, *classID); err != nil {
		return err
	}
	grades, err := cli.Grades.SelectEvaluation(ctx, *evaluationID)
	if errors.Is(err, screens.ErrNoSelection) {
		return fmt.Errorf("%d: no such evaluation in this class", *evaluationID)
	}
	if err != nil {
		return err
	}

	if action == "save" {
		if len(values) == 0 {
			fs.Usage()
			return errHelp
		}
		for id, v := range values {
			if err := cli.Grades.SetGrade(id, v); err != nil {
				return fmt.Errorf("%d: not enrolled in this class", id)
			}
		}
		return cli.Grades.SaveGrades(ctx)
	}

	evaluation, _ := cli.Grades.Evaluation()
	fmt.Fprintln(cli.Out, evaluation.Label())
	tw := cli.table("MATRÍCULA", "ALUNO", "NOTA")
	for _, g := range grades {
		value := "-"
		if g.Value.Valid {
			value = strconv.FormatFloat(g.Value.Float64, 'g', -1, 64)
		}
		row(tw, g.EnrollmentID, g.StudentName, value)
	}
	return tw.Flush()
}

func (cli *commandLine) lessonPlans(ctx context.Context, args []string) error {
	action, args, err := cli.action("planos", args, "list", "create", "update", "delete")
	if err != nil {
		return err
	}
	fs := cli.flagSet("planos " + action)
	classID := fs.Int("turma", 0, "ID of the class")
	f := cli.LessonPlans.Form()

	var vals map[string]*string
	var id, yes = new(int), new(bool)
	switch action {
	case "create":
		vals = formFlags(fs, f.Fields())
	case "update":
		id = fs.Int("id", 0, "ID of the lesson plan")
		vals = formFlags(fs, f.Fields())
	case "delete":
		id, yes = removeFlags(fs)
	}
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := required(fs, classID); err != nil {
		return err
	}
	plans, err := cli.LessonPlans.SelectClass(ctx, *classID)
	if err != nil {
		return err
	}

	switch action {
	case "create":
		if err := cli.LessonPlans.New(); err != nil {
			return err
		}
		if err := fillForm(fs, f, vals); err != nil {
			return err
		}
		_, err := cli.LessonPlans.Submit(ctx)
		return err

	case "update":
		if err := required(fs, id); err != nil {
			return err
		}
		plan, err := findByID(plans, *id, func(p diary.LessonPlan) int { return p.ID })
		if err != nil {
			return err
		}
		cli.LessonPlans.Edit(plan)
		if err := fillForm(fs, f, vals); err != nil {
			return err
		}
		_, err = cli.LessonPlans.Submit(ctx)
		return err

	case "delete":
		if err := required(fs, id); err != nil {
			return err
		}
		cli.Prompter.assumeYes = *yes
		return cli.LessonPlans.Delete(ctx, *id)

	default:
		tw := cli.table("ID", "DATA", "CONTEÚDO", "METODOLOGIA", "TAREFA")
		for _, p := range plans {
			row(tw, p.ID, p.Date, p.Content, orDash(p.Methodology.String, p.Methodology.Valid), orDash(p.Homework.String, p.Homework.Valid))
		}
		return tw.Flush()
	}
}

func (cli *commandLine) council(ctx context.Context, args []string) error {
	fs := cli.flagSet("conselho")
	classID := fs.Int("turma", 0, "ID of the class")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := required(fs, classID); err != nil {
		return err
	}
	rows, err := cli.Council.SelectClass(ctx, *classID)
	if err != nil {
		return err
	}

	subjects := cli.Council.Subjects()
	tw := cli.table(append([]string{"ALUNO"}, subjects...)...)
	for _, r := range rows {
		cols := []interface{}{r.StudentName}
		for _, t := range r.Grades {
			total := strconv.FormatFloat(t.Total, 'g', -1, 64)
			if t.Failing() {
				total += " !"
			}
			cols = append(cols, total)
		}
		row(tw, cols...)
	}
	return tw.Flush()
}
