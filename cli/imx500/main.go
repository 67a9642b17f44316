// Package main is the imx500 command itself.
package main

import (
	"log"
	"os"

	imx500cli "go.viam.com/imx500/cli"
)

func main() {
	app := imx500cli.NewApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
