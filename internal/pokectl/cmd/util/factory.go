package util

import (
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/moby/term"
)

// IOStreams are the standard streams a command reads from and writes to.
type IOStreams struct {
	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer
}

// Factory carries the connection settings shared by all pokectl commands.
type Factory struct {
	APIServer   string
	AgentServer string
	Timeout     time.Duration
}

func NewDefaultFactory() *Factory {
	return &Factory{
		APIServer:   envOr("POKEDEX_API_SERVER", "http://localhost:8000"),
		AgentServer: envOr("POKEDEX_AGENT_SERVER", "http://localhost:8001"),
		Timeout:     120 * time.Second,
	}
}

func (f *Factory) HTTPClient() *http.Client {
	return &http.Client{Timeout: f.Timeout}
}

// NormalizeURL adds an http scheme when missing and drops trailing slashes.
func NormalizeURL(addr string) string {
	if !strings.HasPrefix(addr, "http://") && !strings.HasPrefix(addr, "https://") {
		addr = "http://" + addr
	}
	return strings.TrimRight(addr, "/")
}

// TerminalWidth returns the width of w when it is a terminal, otherwise def.
func TerminalWidth(w io.Writer, def int) int {
	fd, isTerm := term.GetFdInfo(w)
	if !isTerm {
		return def
	}
	ws, err := term.GetWinsize(fd)
	if err != nil || ws.Width == 0 {
		return def
	}
	return int(ws.Width)
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	_, isTerm := term.GetFdInfo(w)
	return isTerm
}

// CheckErr prints err in red to stderr and exits non-zero.
func CheckErr(err error) {
	if err == nil {
		return
	}
	msg := err.Error()
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	_, _ = color.New(color.FgRed).Fprint(os.Stderr, "error: "+msg)
	os.Exit(1)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
