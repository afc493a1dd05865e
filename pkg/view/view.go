// Package view is the display surface of the ledger client. The client only
// talks to the View interface; Screen keeps the state in memory and renders
// it to a terminal, which also makes it usable headless in tests.
package view

type Severity string

const (
	OK   Severity = "ok"
	Err  Severity = "err"
	Warn Severity = "warn"
)

type View interface {
	SetBalance(text string)
	SetRemainingWithdrawals(n int)
	SetStatement(lines []string)
	SetStatementNote(text string)
	OpenStatement()
	CloseStatement()

	Input() string
	SetInput(text string)

	ShowMessage(text string, sev Severity)
	HideMessage()
}

// Message is the single status slot. A new message replaces the old one.
type Message struct {
	Text     string
	Severity Severity
	Visible  bool
}
