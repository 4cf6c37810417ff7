// Command sge is the back-office command line: every screen of the school
// management system, driven from the terminal against the REST backend.
package main

import (
	"log"
	"os"
)

func main() {
	c := newContainer(os.Stdout)

	var code int
	must(c.Invoke(func(cli *commandLine, logger *log.Logger) {
		if err := cli.run(os.Args); err != nil {
			if err != errHelp {
				logger.Printf("\nerror: %s\n", err)
			}
			code = 1
		}
	}))
	os.Exit(code)
}
