package plansig

import (
	"os"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	// Imports all sub-components
	"mit.edu/dsg/plansig/catalog"
	"mit.edu/dsg/plansig/settings"
	"mit.edu/dsg/plansig/signature"
)

// PlanSig is the top-level container for the plan signature system.
type PlanSig struct {
	Catalog  *catalog.Catalog
	Provider catalog.PersistenceProvider
	Settings *settings.Values
	Signer   *signature.Signer
	Logger   *zap.Logger
}

// Config selects where PlanSig finds its state. Empty fields fall back to an
// in-memory catalog and default settings.
type Config struct {
	// CatalogDir holds catalog.json. It is created if missing.
	CatalogDir string
	// SettingsFile is a YAML map of setting name to value.
	SettingsFile string
	// IndexNameHook, if set, names indexes ahead of the catalog.
	IndexNameHook signature.IndexNameHook
}

func NewPlanSig(cfg Config, logger *zap.Logger) (*PlanSig, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var provider catalog.PersistenceProvider
	if cfg.CatalogDir != "" {
		if err := os.MkdirAll(cfg.CatalogDir, 0755); err != nil {
			return nil, errors.Wrapf(err, "creating catalog directory %s", cfg.CatalogDir)
		}
		provider = catalog.NewDiskCatalogManager(cfg.CatalogDir)
	} else {
		provider = catalog.NewMemCatalogManager()
	}
	cat, err := catalog.NewCatalog(provider)
	if err != nil {
		return nil, errors.Wrap(err, "loading catalog")
	}

	sv := settings.NewValues()
	if cfg.SettingsFile != "" {
		if err := settings.LoadFile(cfg.SettingsFile, sv); err != nil {
			return nil, err
		}
		logger.Info("loaded settings", zap.String("file", cfg.SettingsFile))
	}

	opts := []signature.Option{signature.WithLogger(logger)}
	if cfg.IndexNameHook != nil {
		opts = append(opts, signature.WithIndexNameHook(cfg.IndexNameHook))
	}

	return &PlanSig{
		Catalog:  cat,
		Provider: provider,
		Settings: sv,
		Signer:   signature.NewSigner(cat, sv, opts...),
		Logger:   logger,
	}, nil
}

// AddTable registers a table and persists the catalog.
func (p *PlanSig) AddTable(name string, columns []catalog.Column) (*catalog.Table, error) {
	return p.Catalog.AddTable(name, columns, p.Provider)
}

// AddIndex registers an index on an existing table and persists the catalog.
func (p *PlanSig) AddIndex(name, table, indexType string, columns []string) (*catalog.Index, error) {
	return p.Catalog.AddIndex(name, table, indexType, columns, p.Provider)
}
