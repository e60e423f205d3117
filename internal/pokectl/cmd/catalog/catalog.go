package catalog

import (
	"fmt"
	"io"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/kiosk404/pokedex/internal/pokeapi/service/catalog/domain/entity"
	"github.com/kiosk404/pokedex/internal/pokectl/cmd/util"
	"github.com/kiosk404/pokedex/pkg/utils/json"
	"github.com/mitchellh/go-wordwrap"
	"github.com/spf13/cobra"
)

const (
	OutputTable = "table"
	OutputJSON  = "json"
)

// Options are shared by the catalog commands.
type Options struct {
	Output string

	factory *util.Factory
	util.IOStreams
}

func newOptions(f *util.Factory, streams util.IOStreams) *Options {
	return &Options{Output: OutputTable, factory: f, IOStreams: streams}
}

func (o *Options) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.Output, "output", "o", o.Output, "Output format: table or json.")
}

func (o *Options) validate() error {
	if o.Output != OutputTable && o.Output != OutputJSON {
		return fmt.Errorf("unsupported output format %q", o.Output)
	}
	return nil
}

func (o *Options) client() *Client {
	return NewClient(util.NormalizeURL(o.factory.APIServer), o.factory.HTTPClient())
}

func (o *Options) printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(o.Out, string(data))
	return err
}

func NewCmdGet(f *util.Factory, streams util.IOStreams) *cobra.Command {
	o := newOptions(f, streams)
	cmd := &cobra.Command{
		Use:   "get NAME|ID",
		Short: "Show one Pokémon",
		Example: heredoc.Doc(`
			pokectl get pikachu
			pokectl get 25 -o json`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.validate(); err != nil {
				return err
			}
			p, err := o.client().Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if o.Output == OutputJSON {
				return o.printJSON(p)
			}
			printDetail(o.Out, p, util.TerminalWidth(o.Out, 80))
			return nil
		},
	}
	o.addFlags(cmd)
	return cmd
}

func NewCmdList(f *util.Factory, streams util.IOStreams) *cobra.Command {
	o := newOptions(f, streams)
	var typeName string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List Pokémon names, optionally by type",
		Example: heredoc.Doc(`
			pokectl list
			pokectl list --type fire`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := o.validate(); err != nil {
				return err
			}
			names, err := o.client().List(cmd.Context(), typeName)
			if err != nil {
				return err
			}
			if o.Output == OutputJSON {
				return o.printJSON(names)
			}
			if len(names) == 0 {
				fmt.Fprintln(o.Out, "No Pokémon found.")
				return nil
			}
			width := uint(util.TerminalWidth(o.Out, 80))
			fmt.Fprintln(o.Out, wordwrap.WrapString(strings.Join(names, ", "), width))
			fmt.Fprintln(o.Out, color.New(color.Faint).Sprintf("%d Pokémon", len(names)))
			return nil
		},
	}
	cmd.Flags().StringVar(&typeName, "type", typeName, "Only list Pokémon of this type.")
	o.addFlags(cmd)
	return cmd
}

func NewCmdRanking(f *util.Factory, streams util.IOStreams) *cobra.Command {
	o := newOptions(f, streams)
	stat := string(entity.StatAttack)
	limit := 10
	cmd := &cobra.Command{
		Use:   "ranking",
		Short: "Show the top Pokémon by a base stat",
		Long: heredoc.Docf(`
			Show the top Pokémon ordered by a base stat, highest first.

			Valid stats: %s`, strings.Join(entity.StatNames(), ", ")),
		Example: heredoc.Doc(`
			pokectl ranking --stat speed --limit 5`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := o.validate(); err != nil {
				return err
			}
			entries, err := o.client().Ranking(cmd.Context(), stat, limit)
			if err != nil {
				return err
			}
			if o.Output == OutputJSON {
				return o.printJSON(entries)
			}
			printRanking(o.Out, stat, entries)
			return nil
		},
	}
	cmd.Flags().StringVar(&stat, "stat", stat, "Stat to rank by.")
	cmd.Flags().IntVar(&limit, "limit", limit, "Number of entries to show (1-1000).")
	o.addFlags(cmd)
	return cmd
}

func printDetail(w io.Writer, p *entity.PokemonDetail, width int) {
	bold := color.New(color.Bold).SprintFunc()
	fmt.Fprintf(w, "%s #%d\n", bold(strings.ToUpper(p.Name)), p.ID)

	info := uitable.New()
	info.MaxColWidth = uint(width)
	info.AddRow("Types:", strings.Join(p.Types, ", "))
	info.AddRow("Height:", p.Height)
	info.AddRow("Weight:", p.Weight)
	fmt.Fprintln(w, info)
	fmt.Fprintln(w)

	stats := uitable.New()
	stats.AddRow(bold("STAT"), bold("VALUE"))
	values := []int{p.Stats.HP, p.Stats.Attack, p.Stats.Defense, p.Stats.SpecialAttack, p.Stats.SpecialDefense, p.Stats.Speed}
	for i, s := range entity.AllStats {
		stats.AddRow(s.String(), values[i])
	}
	fmt.Fprintln(w, stats)
}

func printRanking(w io.Writer, stat string, entries []*entity.RankEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No Pokémon found.")
		return
	}
	bold := color.New(color.Bold).SprintFunc()
	gold := color.New(color.FgYellow).SprintFunc()

	table := uitable.New()
	table.AddRow(bold("RANK"), bold("NAME"), bold(strings.ToUpper(stat)))
	for _, e := range entries {
		rank := fmt.Sprint(e.Rank)
		if e.Rank == 1 {
			rank = gold(rank)
		}
		table.AddRow(rank, e.Name, e.Value)
	}
	fmt.Fprintln(w, table)
}
