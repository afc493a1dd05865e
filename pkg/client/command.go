package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/amiskov/simple-ledger/pkg/extract"
)

type Action string

const (
	ActionInput    Action = "input"
	ActionEnter    Action = "enter"
	ActionDeposit  Action = "deposit"
	ActionWithdraw Action = "withdraw"
	ActionExtract  Action = "extract"
	ActionReset    Action = "reset"
	ActionHide     Action = "hide"
	ActionQuit     Action = "quit"
)

// Command is one user action. Arg, when set, is the amount typed along with it.
type Command struct {
	Action Action
	Arg    string
}

var aliases = map[string]Action{
	"input":     ActionInput,
	"amount":    ActionInput,
	"d":         ActionDeposit,
	"deposit":   ActionDeposit,
	"w":         ActionWithdraw,
	"withdraw":  ActionWithdraw,
	"e":         ActionExtract,
	"extract":   ActionExtract,
	"statement": ActionExtract,
	"reset":     ActionReset,
	"hide":      ActionHide,
	"q":         ActionQuit,
	"quit":      ActionQuit,
	"exit":      ActionQuit,
}

// ParseCommand reads a terminal line. A line that is not a known command is
// taken as an amount typed into the input followed by Enter.
func ParseCommand(line string) Command {
	line = strings.TrimSpace(line)
	if line == "" {
		return Command{Action: ActionEnter}
	}

	word, rest, _ := strings.Cut(line, " ")
	if action, ok := aliases[strings.ToLower(word)]; ok {
		return Command{Action: action, Arg: strings.TrimSpace(rest)}
	}
	return Command{Action: ActionEnter, Arg: line}
}

// Dispatch runs the operation bound to cmd.
func (c *Client) Dispatch(ctx context.Context, cmd Command) error {
	if cmd.Arg != "" && cmd.Action != ActionExtract && cmd.Action != ActionReset && cmd.Action != ActionHide {
		c.view.SetInput(cmd.Arg)
	}

	switch cmd.Action {
	case ActionInput, ActionQuit:
		return nil
	case ActionEnter, ActionDeposit:
		return c.Submit(ctx, extract.Deposit, c.view.Input())
	case ActionWithdraw:
		return c.Submit(ctx, extract.Withdraw, c.view.Input())
	case ActionExtract:
		c.view.OpenStatement()
		return c.LoadExtract(ctx)
	case ActionReset:
		return c.Reset(ctx)
	case ActionHide:
		c.view.CloseStatement()
		return nil
	}
	return fmt.Errorf("client: can't dispatch `%s`, %w", cmd.Action, errUnknownOperation)
}
