package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"mit.edu/dsg/plansig/catalog"
	"mit.edu/dsg/plansig/planner"
	"mit.edu/dsg/plansig/settings"
)

func readPlan(path string) (*planner.PlannedStmt, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "reading plan %s", path)
	}
	return planner.DecodePlannedStmt(data)
}

func newPlanCmd(ctx *cliContext) *cobra.Command {
	return &cobra.Command{
		Use:   "plan <plan.json>",
		Short: "print the signature of a JSON plan document",
		Long: `
Decodes a plan document ("-" reads standard input) and prints its signature.
Index names are resolved through the catalog; unresolved references print
as UNKNOWN.
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, done, err := ctx.open()
			if err != nil {
				return err
			}
			defer done()

			stmt, err := readPlan(args[0])
			if err != nil {
				return err
			}
			sig, err := p.Signer.PlanSignature(stmt)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), sig)
			return nil
		},
	}
}

func newSettingsCmd(ctx *cliContext) *cobra.Command {
	var list bool
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "print the settings signature",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, done, err := ctx.open()
			if err != nil {
				return err
			}
			defer done()

			out := cmd.OutOrStdout()
			if list {
				for _, key := range settings.Keys() {
					s, _ := settings.Lookup(key)
					fmt.Fprintf(out, "%s\t%s\t(default %s)\t%s\n",
						key, s.Encoded(p.Settings), s.EncodedDefault(), s.Description())
				}
				return nil
			}
			fmt.Fprintln(out, p.Signer.SettingsSignature())
			return nil
		},
	}
	cmd.Flags().BoolVar(&list, "list", false, "list every setting with its current value instead")
	return cmd
}

func newKeyCmd(ctx *cliContext) *cobra.Command {
	var fingerprintOnly bool
	cmd := &cobra.Command{
		Use:   "key <query> <plan.json>",
		Short: "print the cache key of running a plan for a query",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, done, err := ctx.open()
			if err != nil {
				return err
			}
			defer done()

			stmt, err := readPlan(args[1])
			if err != nil {
				return err
			}
			key, err := p.Signer.Key(args[0], stmt)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !fingerprintOnly {
				fmt.Fprintln(out, key.String())
			}
			fmt.Fprintf(out, "%016x\n", key.Fingerprint())
			return nil
		},
	}
	cmd.Flags().BoolVar(&fingerprintOnly, "fingerprint", false, "print only the 64-bit fingerprint")
	return cmd
}

func newCatalogCmd(ctx *cliContext) *cobra.Command {
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list tables and their indexes in name order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, done, err := ctx.open()
			if err != nil {
				return err
			}
			defer done()

			out := cmd.OutOrStdout()
			for _, t := range p.Catalog.Tables() {
				fmt.Fprintf(out, "%d\t%s\n", t.Oid, t.Name)
				for _, idx := range t.Indexes {
					fmt.Fprintf(out, "%d\t  %s (%s on %s)\n", idx.Oid, idx.Name, idx.Type, strings.Join(idx.KeySchema, ","))
				}
			}
			return nil
		},
	}

	addTableCmd := &cobra.Command{
		Use:   "add-table <name> <column:type>...",
		Short: "register a table",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			columns := make([]catalog.Column, 0, len(args)-1)
			for _, arg := range args[1:] {
				name, typ, ok := strings.Cut(arg, ":")
				if !ok || name == "" || typ == "" {
					return errors.Newf("column %q: expected <name>:<type>", arg)
				}
				columns = append(columns, catalog.Column{Name: name, Type: typ})
			}

			p, done, err := ctx.open()
			if err != nil {
				return err
			}
			defer done()

			t, err := p.AddTable(args[0], columns)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d\n", t.Oid)
			return nil
		},
	}

	addIndexCmd := &cobra.Command{
		Use:   "add-index <name> <table> <type> <column>...",
		Short: "register an index on a table",
		Args:  cobra.MinimumNArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, done, err := ctx.open()
			if err != nil {
				return err
			}
			defer done()

			idx, err := p.AddIndex(args[0], args[1], args[2], args[3:])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d\n", idx.Oid)
			return nil
		},
	}

	catalogCmd := &cobra.Command{
		Use:   "catalog [command]",
		Short: "inspect and populate the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Usage()
		},
	}
	catalogCmd.AddCommand(listCmd, addTableCmd, addIndexCmd)
	return catalogCmd
}
