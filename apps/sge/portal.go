package main

import (
	"context"
	"fmt"
	"strconv"
)

func (cli *commandLine) portal(ctx context.Context, args []string) error {
	action, args, err := cli.action("portal", args, "login", "me", "logout")
	if err != nil {
		return err
	}
	fs := cli.flagSet("portal " + action)

	switch action {
	case "login":
		cpf := fs.String("cpf", "", "the student's CPF")
		if err := parse(fs, args); err != nil {
			return err
		}
		_, err := cli.Portal.Login(ctx, *cpf)
		return err

	case "logout":
		if err := parse(fs, args); err != nil {
			return err
		}
		return cli.Portal.Logout()

	default:
		if err := parse(fs, args); err != nil {
			return err
		}
		overview, err := cli.Portal.Home(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cli.Out, "%s - %s\n", overview.Name, overview.ClassName())
		a := overview.Attendance
		status := "regular"
		if !a.Sufficient() {
			status = "abaixo do mínimo"
		}
		fmt.Fprintf(cli.Out, "Frequência: %g%% (%d/%d, %s)\n", a.Percentage, a.Present, a.Total, status)

		tw := cli.table("DISCIPLINA", "AVALIAÇÃO", "NOTA")
		for _, g := range overview.Grades {
			value := "-"
			if g.Value.Valid {
				value = strconv.FormatFloat(g.Value.Float64, 'g', -1, 64)
			}
			row(tw, g.Subject, g.Evaluation, value)
		}
		return tw.Flush()
	}
}
