package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/kiosk404/pokedex/internal/pokectl/cmd/catalog"
	"github.com/kiosk404/pokedex/internal/pokectl/cmd/chat"
	"github.com/kiosk404/pokedex/internal/pokectl/cmd/util"
	"github.com/kiosk404/pokedex/pkg/version"
	"github.com/spf13/cobra"
)

// NewDefaultPokeCtlCommand creates the `pokectl` command with default arguments.
func NewDefaultPokeCtlCommand() *cobra.Command {
	return NewPokeCtlCommand(os.Stdin, os.Stdout, os.Stderr)
}

func NewPokeCtlCommand(in io.Reader, out, errOut io.Writer) *cobra.Command {
	f := util.NewDefaultFactory()
	streams := util.IOStreams{In: in, Out: out, ErrOut: errOut}

	cmds := &cobra.Command{
		Use:   "pokectl",
		Short: "pokectl talks to the Pokédex agent and catalog",
		Long: heredoc.Doc(`
			pokectl is the terminal client of the Pokédex.

			It chats with the agent served by pokeagent and queries the catalog
			served by pokeapi. Server addresses default to the POKEDEX_AGENT_SERVER
			and POKEDEX_API_SERVER environment variables.`),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if v, _ := cmd.Flags().GetBool("version"); v {
				fmt.Fprintln(out, version.Get().String())
				return nil
			}
			return cmd.Help()
		},
	}
	cmds.SetIn(in)
	cmds.SetOut(out)
	cmds.SetErr(errOut)

	flags := cmds.PersistentFlags()
	flags.StringVar(&f.APIServer, "api-server", f.APIServer, "Address of the pokeapi server.")
	flags.StringVar(&f.AgentServer, "agent-server", f.AgentServer, "Address of the pokeagent server.")
	flags.DurationVar(&f.Timeout, "request-timeout", f.Timeout, "Timeout of each HTTP request.")
	cmds.Flags().Bool("version", false, "Print version information and quit.")

	cmds.AddGroup(
		&cobra.Group{ID: "agent", Title: "Agent Commands:"},
		&cobra.Group{ID: "catalog", Title: "Catalog Commands:"},
	)
	add := func(group string, c *cobra.Command) {
		c.GroupID = group
		cmds.AddCommand(c)
	}
	add("agent", chat.NewCmdChat(f, streams))
	add("catalog", catalog.NewCmdGet(f, streams))
	add("catalog", catalog.NewCmdList(f, streams))
	add("catalog", catalog.NewCmdRanking(f, streams))

	return cmds
}
