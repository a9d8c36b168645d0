package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" default:"withargs" help:"Play heads-up against the bot in the terminal"`
	Serve    ServeCmd         `cmd:"" help:"Run the HTTP and WebSocket game server"`
	Simulate SimulateCmd      `cmd:"" help:"Measure the bot against scripted opponents"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("pokerbot"),
		kong.Description("Heads-up Texas Hold'em against a bot"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
