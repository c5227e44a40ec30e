package main

import (
	"flag"

	"github.com/curioswitch/go-build"
	"github.com/goyek/goyek/v2"
	"github.com/goyek/x/boot"
	"github.com/goyek/x/cmd"
)

func main() {
	_ = flag.Lookup("v").Value.Set("true") // Force verbose output
	build.DefineTasks()

	goyek.Define(goyek.Task{
		Name:  "fvec-smoke",
		Usage: "Runs the fvec command against a small budget.",
		Action: func(a *goyek.A) {
			if !cmd.Exec(a, "go run ./cmd/fvec splice 1,2,3,4,5 2 4 10,11,12") {
				return
			}
			cmd.Exec(a, "go run ./cmd/fvec collect 1000 --budget 65536 --json")
		},
	})

	boot.Main()
}
