package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fpang/polylingo/internal/language"
)

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List supported language codes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "CODE\tLANGUAGE")
		for _, code := range language.Codes() {
			fmt.Fprintf(w, "%s\t%s\n", code, language.Name(code))
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Printf("\n%d languages. Other codes are passed to the model as given.\n", language.Len())
		return nil
	},
}
