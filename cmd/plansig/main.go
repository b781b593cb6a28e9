// Command plansig computes plan and settings signatures from the command line.
//
//	plansig --catalog-dir ./state catalog add-table orders id:int
//	plansig --catalog-dir ./state catalog add-index orders_pkey orders btree id
//	plansig --catalog-dir ./state plan plan.json
//	plansig --settings engine.yaml key "SELECT * FROM orders WHERE id = $1" plan.json
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"mit.edu/dsg/plansig"
)

type cliContext struct {
	catalogDir   string
	settingsFile string
	verbose      bool
}

func newRootCmd() *cobra.Command {
	ctx := &cliContext{}
	root := &cobra.Command{
		Use:           "plansig [command]",
		Short:         "compute deterministic plan and settings signatures",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	f := root.PersistentFlags()
	f.StringVar(&ctx.catalogDir, "catalog-dir", "", "directory holding catalog.json (in-memory catalog if empty)")
	f.StringVar(&ctx.settingsFile, "settings", "", "YAML file of engine settings")
	f.BoolVarP(&ctx.verbose, "verbose", "v", false, "log at debug level to stderr")

	root.AddCommand(
		newPlanCmd(ctx),
		newSettingsCmd(ctx),
		newKeyCmd(ctx),
		newCatalogCmd(ctx),
	)
	return root
}

func (c *cliContext) logger() (*zap.Logger, error) {
	if c.verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}

// open builds the PlanSig the command runs against and returns a function that
// flushes its logger.
func (c *cliContext) open() (*plansig.PlanSig, func(), error) {
	logger, err := c.logger()
	if err != nil {
		return nil, nil, err
	}
	p, err := plansig.NewPlanSig(plansig.Config{
		CatalogDir:   c.catalogDir,
		SettingsFile: c.settingsFile,
	}, logger)
	if err != nil {
		_ = logger.Sync()
		return nil, nil, err
	}
	return p, func() { _ = logger.Sync() }, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
