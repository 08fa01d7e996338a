package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/AntonioJCosta/sacr/internal/adapters/backendselect"
	"github.com/AntonioJCosta/sacr/internal/adapters/commandanalysis"
	"github.com/AntonioJCosta/sacr/internal/adapters/oscommand"
	"github.com/AntonioJCosta/sacr/internal/core/domain/backend"
	"github.com/AntonioJCosta/sacr/internal/core/services/aliasrun"
	"github.com/AntonioJCosta/sacr/internal/core/services/workspace"
	"github.com/AntonioJCosta/sacr/internal/handlers/cli"
	"github.com/AntonioJCosta/sacr/internal/handlers/ui"
	"github.com/AntonioJCosta/sacr/internal/repositories/settings"
	"github.com/spf13/afero"
)

// Version is set at build time
var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	defaults := backend.StandardDefaults()

	runner := aliasrun.NewService(
		commandanalysis.NewShellAnalyzer(),
		oscommand.NewOSProcessRunner(),
		aliasrun.WithOutput(os.Stdout, os.Stderr),
		aliasrun.WithStartHook(ui.StepAnnouncer(os.Stderr)),
	)

	code := cli.Execute(ctx, cli.Options{
		Version:  Version,
		Selector: backendselect.NewSelector(defaults),
		Executor: runner,
		Cleaner:  workspace.NewService(afero.NewOsFs()),
		Settings: settings.NewLoader(defaults),
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
	}, os.Args[1:])

	stop()
	os.Exit(code)
}
