package view

import (
	"fmt"
	"io"
	"strconv"

	"github.com/amiskov/simple-ledger/pkg/extract"
	"github.com/amiskov/simple-ledger/pkg/money"
)

type Screen struct {
	Balance       string
	Remaining     string
	Amount        string
	StatementOpen bool
	Statement     []string
	StatementNote string
	Message       Message
}

func NewScreen() *Screen {
	return &Screen{
		Balance:   money.Format(0),
		Remaining: strconv.Itoa(extract.MaxWithdrawalsPerDay),
	}
}

func (s *Screen) SetBalance(text string) {
	s.Balance = text
}

func (s *Screen) SetRemainingWithdrawals(n int) {
	s.Remaining = strconv.Itoa(n)
}

func (s *Screen) SetStatement(lines []string) {
	s.Statement = lines
	s.StatementNote = ""
}

func (s *Screen) SetStatementNote(text string) {
	s.Statement = nil
	s.StatementNote = text
}

func (s *Screen) OpenStatement() {
	s.StatementOpen = true
}

func (s *Screen) CloseStatement() {
	s.StatementOpen = false
}

func (s *Screen) Input() string {
	return s.Amount
}

func (s *Screen) SetInput(text string) {
	s.Amount = text
}

func (s *Screen) ShowMessage(text string, sev Severity) {
	s.Message = Message{Text: text, Severity: sev, Visible: true}
}

func (s *Screen) HideMessage() {
	s.Message.Visible = false
}

// Render draws the screen as plain text.
func (s *Screen) Render(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "Balance: %s\nWithdrawals left today: %s\n", s.Balance, s.Remaining); err != nil {
		return err
	}
	if s.Message.Visible {
		if _, err := fmt.Fprintf(w, "[%s] %s\n", s.Message.Severity, s.Message.Text); err != nil {
			return err
		}
	}
	if !s.StatementOpen {
		return nil
	}

	if _, err := fmt.Fprintln(w, "Statement:"); err != nil {
		return err
	}
	if s.StatementNote != "" {
		_, err := fmt.Fprintf(w, "  %s\n", s.StatementNote)
		return err
	}
	for _, line := range s.Statement {
		if _, err := fmt.Fprintf(w, "  - %s\n", line); err != nil {
			return err
		}
	}
	return nil
}
