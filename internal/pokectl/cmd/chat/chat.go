package chat

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/kiosk404/pokedex/internal/pokectl/cmd/util"
	"github.com/spf13/cobra"
)

var chatExample = heredoc.Doc(`
	# Interactive chat over WebSocket
	pokectl chat

	# Single question through POST /v1/chat
	pokectl chat "Qual é o tipo do pikachu?"

	# Connect to a specific agent
	pokectl chat --agent-server http://localhost:8001`)

type Options struct {
	Timeout time.Duration

	factory *util.Factory
	util.IOStreams
}

func NewOptions(f *util.Factory, streams util.IOStreams) *Options {
	return &Options{Timeout: 2 * time.Minute, factory: f, IOStreams: streams}
}

func NewCmdChat(f *util.Factory, streams util.IOStreams) *cobra.Command {
	o := NewOptions(f, streams)
	cmd := &cobra.Command{
		Use:                   "chat [message]",
		DisableFlagsInUseLine: true,
		Short:                 "Chat with the Pokédex agent",
		Long: heredoc.Doc(`
			Talk to the Pokédex agent served by pokeagent.

			Without arguments, open an interactive session over the WebSocket
			endpoint; the server keeps the conversation for as long as the session
			lasts. With a message argument, ask a single question and print the
			answer.`),
		Example: chatExample,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.Run(cmd.Context(), args)
		},
	}
	cmd.Flags().DurationVar(&o.Timeout, "timeout", o.Timeout, "Maximum time to wait for each answer.")
	return cmd
}

func (o *Options) Run(ctx context.Context, args []string) error {
	server := util.NormalizeURL(o.factory.AgentServer)

	if len(args) > 0 {
		ctx, cancel := context.WithTimeout(ctx, o.Timeout)
		defer cancel()
		answer, err := NewHTTPClient(server, o.factory.HTTPClient()).Ask(ctx, strings.Join(args, " "), nil)
		if err != nil {
			return err
		}
		fmt.Fprintln(o.Out, answer)
		return nil
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	dial := func(ctx context.Context) (*Session, error) { return Dial(ctx, server) }
	return RunInteractive(ctx, o.In, o.Out, dial, o.Timeout)
}
