package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/amiskov/simple-ledger/pkg/client"
	"github.com/amiskov/simple-ledger/pkg/config"
	"github.com/amiskov/simple-ledger/pkg/ledger"
	"github.com/amiskov/simple-ledger/pkg/logger"
	"github.com/amiskov/simple-ledger/pkg/view"
)

const usage = `Commands:
  <amount>           type an amount and press Enter to deposit it
  deposit <amount>   deposit, e.g. "deposit 1.234,56"
  withdraw <amount>  withdraw
  extract            show the statement
  hide               collapse the statement
  reset              remove every operation
  quit
`

func main() {
	cfg := config.Parse()

	log := logger.Run(cfg.LogLevel)
	defer log.Sync() //nolint:errcheck
	ctx := logger.WithLogger(context.Background(), log)

	scr := view.NewScreen()
	c := client.New(ledger.NewClient(cfg.LedgerAddress, cfg.RequestTimeout), scr, time.Now)

	log.Infof("using ledger at %s", cfg.LedgerAddress)
	_ = c.LoadExtract(ctx)

	fmt.Print(usage)
	render(scr)

	in := bufio.NewScanner(os.Stdin)
	for prompt(); in.Scan(); prompt() {
		cmd := client.ParseCommand(in.Text())
		if cmd.Action == client.ActionQuit {
			return
		}
		if err := c.Dispatch(ctx, cmd); err != nil {
			log.Debugf("command `%s` failed, %v", cmd.Action, err)
		}
		render(scr)
	}
	if err := in.Err(); err != nil {
		log.Errorf("can't read input, %v", err)
	}
}

func prompt() {
	fmt.Print("> ")
}

func render(scr *view.Screen) {
	fmt.Println()
	if err := scr.Render(os.Stdout); err != nil {
		logger.Log(context.Background()).Errorf("can't render screen, %v", err)
	}
}
