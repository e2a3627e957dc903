package main

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"gitlab.com/codejudge.net/internal/adapter/piston"
	"gitlab.com/codejudge.net/internal/core/services/language"
)

var languagesRemote bool

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List supported languages",
	Args:  cobra.NoArgs,
	RunE:  runLanguages,
}

func init() {
	languagesCmd.Flags().BoolVar(&languagesRemote, "check", false, "verify each runtime is installed on the sandbox")
}

func runLanguages(cmd *cobra.Command, args []string) error {
	cfg := executorConfig()
	registry := language.NewDefaultRegistry(cfg.LanguageVersions)

	missing := map[string]bool{}
	if languagesRemote {
		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()
		keys, err := registry.Verify(ctx, piston.NewExecutor(cfg, logger))
		if err != nil {
			return err
		}
		for _, k := range keys {
			missing[k] = true
		}
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "LANGUAGE\tRUNTIME\tVERSION\tALIASES\tSTATUS")
	for _, rt := range registry.Runtimes() {
		status := "-"
		if languagesRemote {
			status = "installed"
			if missing[rt.RuntimeID+"-"+rt.Version] {
				status = "missing"
			}
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%v\t%s\n", rt.Key, rt.RuntimeID, rt.Version, rt.Aliases, status)
	}
	return w.Flush()
}
