package chat

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/kiosk404/pokedex/internal/pokectl/cmd/util"
	"github.com/kiosk404/pokedex/pkg/version"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208"))
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("208")).Padding(0, 1)
	userStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	agentStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
)

// printer writes the conversation; answers are rendered as markdown on a
// terminal and passed through verbatim otherwise.
type printer struct {
	out      io.Writer
	width    int
	markdown bool
}

func newPrinter(out io.Writer) *printer {
	return &printer{
		out:      out,
		width:    util.TerminalWidth(out, 80),
		markdown: util.IsTerminal(out),
	}
}

func (p *printer) banner(server string) {
	body := strings.Join([]string{
		titleStyle.Render("PokéData Analyst " + version.Get().GitVersion),
		"",
		"Server: " + server,
		"",
		"Type a question and press Enter.",
		"/clear  start a new conversation",
		"/quit   exit (or Ctrl+D)",
	}, "\n")
	fmt.Fprintln(p.out, boxStyle.Render(body))
	fmt.Fprintln(p.out)
}

func (p *printer) answer(content string) {
	fmt.Fprintln(p.out, agentStyle.Render("pokédex"))
	if p.markdown {
		content = renderMarkdown(content, p.width-4)
	}
	fmt.Fprintln(p.out, content)
	fmt.Fprintln(p.out)
}

func (p *printer) info(msg string) {
	fmt.Fprintln(p.out, dimStyle.Render(msg))
}

func (p *printer) fail(err error) {
	fmt.Fprintln(p.out, errStyle.Render("Error: "+err.Error()))
}

func renderMarkdown(content string, width int) string {
	if width <= 20 {
		width = 76
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content
	}
	rendered, err := r.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(rendered, "\n")
}

// Dialer opens a fresh conversation.
type Dialer func(ctx context.Context) (*Session, error)

// RunInteractive reads questions line by line from in until EOF, /quit or
// ctx is cancelled. Each question waits at most timeout for its answer.
func RunInteractive(ctx context.Context, in io.Reader, out io.Writer, dial Dialer, timeout time.Duration) error {
	p := newPrinter(out)

	session, err := dial(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = session.Close() }()
	p.banner(session.URL())

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		fmt.Fprint(out, userStyle.Render("> "))
		var input string
		select {
		case <-ctx.Done():
			p.info("\nGoodbye!")
			return nil
		case line, ok := <-lines:
			if !ok {
				p.info("\nGoodbye!")
				return nil
			}
			input = strings.TrimSpace(line)
		}

		switch input {
		case "":
			continue
		case "/quit", "/exit":
			p.info("Goodbye!")
			return nil
		case "/clear":
			fresh, err := dial(ctx)
			if err != nil {
				return err
			}
			_ = session.Close()
			session = fresh
			p.info("Conversation cleared.")
			continue
		}

		askCtx, cancel := context.WithTimeout(ctx, timeout)
		answer, err := session.Ask(askCtx, input)
		cancel()
		if err != nil {
			p.fail(err)
			if errors.Is(err, ErrSessionClosed) {
				return err
			}
			continue
		}
		p.answer(answer)
	}
}
