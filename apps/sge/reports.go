package main

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/trezcool/sge/core/people"
)

func (cli *commandLine) educacenso(ctx context.Context, args []string) error {
	kind, args, err := cli.action("educacenso", args, "escolas", "alunos")
	if err != nil {
		return err
	}
	fs := cli.flagSet("educacenso " + kind)
	out := fs.String("o", "", "file to save the export to (defaults to its suggested name)")
	if err := parse(fs, args); err != nil {
		return err
	}

	var buf bytes.Buffer
	name, err := cli.Educacenso.Download(ctx, kind, &buf)
	if err != nil {
		return err
	}
	path := *out
	if path == "" {
		path = name
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return err
	}
	fmt.Fprintf(cli.Out, "%s salvo em %s\n", name, path)
	return nil
}

func (cli *commandLine) students(ctx context.Context, args []string) error {
	action, args, err := cli.action("alunos", args, "list", "boletim")
	if err != nil {
		return err
	}
	fs := cli.flagSet("alunos " + action)

	if action == "boletim" {
		id := fs.Int("id", 0, "ID of the student")
		if err := parse(fs, args); err != nil {
			return err
		}
		if err := required(fs, id); err != nil {
			return err
		}
		fmt.Fprintln(cli.Out, cli.Students.ReportCardURL(*id))
		return nil
	}

	term := fs.String("busca", "", "search students by name")
	if err := parse(fs, args); err != nil {
		return err
	}
	var found []people.Student
	if *term != "" {
		found, err = cli.Students.Search(ctx, *term)
	} else {
		found, err = cli.Students.Load(ctx)
	}
	if err != nil {
		return err
	}
	tw := cli.table("ID", "NOME", "CPF", "NASCIMENTO")
	for _, s := range found {
		row(tw, s.ID, s.Name, orDash(s.CPF.String, s.CPF.Valid), s.BirthDate)
	}
	return tw.Flush()
}

func (cli *commandLine) dashboard(ctx context.Context, args []string) error {
	if err := parse(cli.flagSet("dashboard"), args); err != nil {
		return err
	}
	counts, err := cli.Dashboard.Load(ctx)
	if err != nil {
		return err
	}
	tw := cli.table("ESCOLAS", "ALUNOS", "PROFESSORES", "TURMAS")
	row(tw, counts.Schools, counts.Students, counts.Teachers, counts.Classes)
	return tw.Flush()
}

func (cli *commandLine) pedagogical(ctx context.Context, args []string) error {
	if err := parse(cli.flagSet("pedagogico"), args); err != nil {
		return err
	}
	if _, err := cli.PedagogicalDashboard.Load(ctx); err != nil {
		return err
	}
	atRisk := cli.PedagogicalDashboard.AtRisk()
	if len(atRisk) == 0 {
		fmt.Fprintln(cli.Out, "Nenhum aluno em risco.")
		return nil
	}
	tw := cli.table("ALUNO", "MOTIVO")
	for _, r := range atRisk {
		row(tw, r.Student, r.Reason)
	}
	return tw.Flush()
}
