package main

import (
	"context"
	"os"

	"github.com/nvmd/nvmd/src/cmd"
	"github.com/nvmd/nvmd/src/internal/config"
	"github.com/nvmd/nvmd/src/internal/signal"
	"github.com/nvmd/nvmd/src/internal/tool"
	"github.com/nvmd/nvmd/src/internal/ui"

	// Import migration providers to register them
	_ "github.com/nvmd/nvmd/src/migrations/node/fnm"
	_ "github.com/nvmd/nvmd/src/migrations/node/nvm"
)

func main() {
	os.Exit(run())
}

func run() int {
	guard := signal.Install()
	defer guard.Stop()

	ui.CheckVerboseEnv()

	name := tool.ToolName(os.Args[0])

	cfg, err := config.Load()
	if err != nil {
		ui.Fatal(name, err)
		return 1
	}
	ui.Debug("%s: version %q resolved from %s", name, cfg.Version, cfg.Dir)

	app := cmd.NewApp(cfg)
	cli := func(ctx context.Context, args []string) error {
		return cmd.Execute(ctx, app, args)
	}

	dispatcher := tool.NewDispatcher(cfg, tool.NewRunner(guard), cli)

	code, err := dispatcher.Dispatch(context.Background(), os.Args[0], os.Args[1:])
	if err != nil {
		ui.Fatal(name, err)
		if code == 0 {
			code = 1
		}
	}
	return code
}
