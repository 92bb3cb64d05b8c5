package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pillbox/pkg/pillbox"
)

// codeTables maps command arguments to the tables they print.
var codeTables = map[string]*pillbox.CodeTable{
	"shapes": pillbox.Shapes,
	"colors": pillbox.Colors,
}

// codesCommand creates the codes command.
func (c *CLI) codesCommand() *cobra.Command {
	var byCode bool

	cmd := &cobra.Command{
		Use:   "codes [shapes|colors]",
		Short: "List SPL shape and color codes",
		Long: `List the SPL codes the service uses for pill shapes and colors.

With no argument both tables are printed.`,
		Example: `  pillbox codes
  pillbox codes colors --by-code`,
		ValidArgs: []string{"shapes", "colors"},
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			names := []string{"shapes", "colors"}
			if len(args) == 1 {
				names = args
			}
			for i, name := range names {
				if i > 0 {
					fmt.Fprintln(c.out)
				}
				c.printCodeTable(codeTables[name], byCode)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&byCode, "by-code", false, "sort by code instead of name")
	return cmd
}

func (c *CLI) printCodeTable(t *pillbox.CodeTable, byCode bool) {
	fmt.Fprintln(c.out, StyleTitle.Render(strings.ToUpper(t.Kind()[:1])+t.Kind()[1:]+"s"))
	if byCode {
		for _, code := range t.Codes() {
			name, _ := t.Name(code)
			printKeyValue(c.out, code, name)
		}
		return
	}
	for _, name := range t.Names() {
		code, _ := t.Code(name)
		printKeyValue(c.out, name, code)
	}
}
