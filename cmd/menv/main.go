// Command menv inspects and watches layered .menv files.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	menv "github.com/0xalexb/hjarta-menv"
	"github.com/0xalexb/hjarta-menv/cmd/menv/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := commands.Execute(ctx, menv.Version, menv.CompiledAt)

	stop()

	if err != nil {
		os.Exit(1)
	}
}
