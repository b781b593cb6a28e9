package plansig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"mit.edu/dsg/plansig/catalog"
	"mit.edu/dsg/plansig/common"
	"mit.edu/dsg/plansig/planner"
)

func TestPlanSigEndToEnd(t *testing.T) {
	dir := t.TempDir()
	settingsFile := filepath.Join(dir, "settings.yaml")
	require.NoError(t, os.WriteFile(settingsFile, []byte("work_mem: 8192\nhash_mem_multiplier: 1.5\n"), 0644))

	p, err := NewPlanSig(Config{CatalogDir: filepath.Join(dir, "catalog"), SettingsFile: settingsFile}, nil)
	require.NoError(t, err)

	orders, err := p.AddTable("orders", []catalog.Column{{Name: "id", Type: "int"}})
	require.NoError(t, err)
	idx, err := p.AddIndex("orders_pkey", "orders", "btree", []string{"id"})
	require.NoError(t, err)

	stmt := &planner.PlannedStmt{
		RangeTable: planner.RangeTable{{RelID: orders.Oid, Alias: "o"}},
		Root:       planner.NewIndexScan(1, idx.Oid),
	}
	key, err := p.Signer.Key("SELECT * FROM orders WHERE id = $1", stmt)
	require.NoError(t, err)
	assert.Equal(t, "IndexScan o orders_pkey", key.Plan)
	assert.Equal(t, "16384 1024 8192 1.5 1", key.Settings)

	// The catalog survives a restart, so the signature does too.
	reopened, err := NewPlanSig(Config{CatalogDir: filepath.Join(dir, "catalog"), SettingsFile: settingsFile}, nil)
	require.NoError(t, err)
	again, err := reopened.Signer.Key("SELECT * FROM orders WHERE id = $1", stmt)
	require.NoError(t, err)
	assert.Equal(t, key.Fingerprint(), again.Fingerprint())
}

func TestPlanSigDefaults(t *testing.T) {
	p, err := NewPlanSig(Config{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "16384 1024 4096 2.0 1", p.Signer.SettingsSignature())
	assert.Empty(t, p.Catalog.Tables())
}

func TestPlanSigIndexNameHook(t *testing.T) {
	hook := func(oid common.ObjectID) (string, bool) { return "hypo_1", oid == 500 }
	p, err := NewPlanSig(Config{IndexNameHook: hook}, nil)
	require.NoError(t, err)

	sig, err := p.Signer.PlanSignature(&planner.PlannedStmt{
		RangeTable: planner.RangeTable{{RelID: 1, Alias: "t"}},
		Root:       planner.NewBitmapHeapScan(1, planner.NewBitmapIndexScan(1, 500)),
	})
	require.NoError(t, err)
	assert.Equal(t, "BitmapHeapScan t (BitmapIndexScan t hypo_1)", sig)
}

func TestPlanSigBadSettingsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("work_mem: 1\n"), 0644))

	_, err := NewPlanSig(Config{SettingsFile: path}, nil)
	require.Error(t, err)
	assert.True(t, common.IsCode(err, common.InvalidSettingError))
}
