package catalog

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"mit.edu/dsg/plansig/common"
)

func makeTestCatalog(t *testing.T) (*Catalog, *MemCatalogManager) {
	provider := NewMemCatalogManager()
	c, err := NewCatalog(provider)
	require.NoError(t, err)

	_, err = c.AddTable("orders", []Column{{Name: "id", Type: "int"}, {Name: "customer", Type: "int"}}, provider)
	require.NoError(t, err)
	_, err = c.AddTable("customers", []Column{{Name: "id", Type: "int"}, {Name: "name", Type: "string"}}, provider)
	require.NoError(t, err)
	return c, provider
}

func TestAddTableAndIndex(t *testing.T) {
	c, provider := makeTestCatalog(t)

	orders, err := c.GetTableMetadata("orders")
	require.NoError(t, err)
	assert.Equal(t, common.ObjectID(1), orders.Oid)

	idx, err := c.AddIndex("orders_pkey", "orders", "btree", []string{"id"}, provider)
	require.NoError(t, err)
	assert.Equal(t, common.ObjectID(3), idx.Oid)
	assert.Equal(t, orders.Oid, idx.TableOid)

	name, ok := c.RelName(idx.Oid)
	require.True(t, ok)
	assert.Equal(t, "orders_pkey", name)

	name, ok = c.RelName(orders.Oid)
	require.True(t, ok)
	assert.Equal(t, "orders", name)

	_, ok = c.RelName(common.InvalidObjectID)
	assert.False(t, ok)
}

func TestCatalogErrors(t *testing.T) {
	c, provider := makeTestCatalog(t)

	_, err := c.AddTable("orders", nil, provider)
	assert.True(t, common.IsCode(err, common.DuplicateObjectError))

	_, err = c.GetTableMetadata("missing")
	assert.True(t, common.IsCode(err, common.NoSuchObjectError))

	_, err = c.AddIndex("idx", "missing", "hash", []string{"id"}, provider)
	assert.True(t, common.IsCode(err, common.NoSuchObjectError))

	_, err = c.AddIndex("idx", "orders", "hash", []string{"nope"}, provider)
	assert.True(t, common.IsCode(err, common.NoSuchObjectError))

	_, err = c.AddIndex("idx", "orders", "hash", []string{"id"}, provider)
	require.NoError(t, err)
	_, err = c.AddIndex("idx", "orders", "hash", []string{"id"}, provider)
	assert.True(t, common.IsCode(err, common.DuplicateObjectError))
}

func TestTablesInNameOrder(t *testing.T) {
	c, provider := makeTestCatalog(t)
	_, err := c.AddTable("accounts", nil, provider)
	require.NoError(t, err)

	var names []string
	for _, tbl := range c.Tables() {
		names = append(names, tbl.Name)
	}
	assert.Equal(t, []string{"accounts", "customers", "orders"}, names)
}

func TestCatalogReload(t *testing.T) {
	c, provider := makeTestCatalog(t)
	idx, err := c.AddIndex("customers_name", "customers", "hash", []string{"name"}, provider)
	require.NoError(t, err)

	reloaded, err := NewCatalog(provider)
	require.NoError(t, err)

	name, ok := reloaded.RelName(idx.Oid)
	require.True(t, ok)
	assert.Equal(t, "customers_name", name)

	// ObjectIDs continue after the persisted high-water mark.
	tbl, err := reloaded.AddTable("lineitem", nil, provider)
	require.NoError(t, err)
	assert.Equal(t, common.ObjectID(4), tbl.Oid)
}

func TestDiskCatalogManager(t *testing.T) {
	dir := t.TempDir()
	provider := NewDiskCatalogManager(dir)

	c, err := NewCatalog(provider)
	require.NoError(t, err)
	assert.Empty(t, c.Tables())

	_, err = c.AddTable("orders", []Column{{Name: "id", Type: "int"}}, provider)
	require.NoError(t, err)

	reloaded, err := NewCatalog(NewDiskCatalogManager(dir))
	require.NoError(t, err)
	_, err = reloaded.GetTableMetadata("orders")
	assert.NoError(t, err)
}

func TestCorruptCatalog(t *testing.T) {
	provider := NewMemCatalogManager()
	require.NoError(t, provider.SaveCatalogState("{not json"))
	_, err := NewCatalog(provider)
	assert.Error(t, err)
}

func TestConcurrentRelName(t *testing.T) {
	c, provider := makeTestCatalog(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				name, ok := c.RelName(1)
				assert.True(t, ok)
				assert.Equal(t, "orders", name)
			}
		}()
	}
	for i := 0; i < 16; i++ {
		_, err := c.AddTable("t"+string(rune('a'+i)), nil, provider)
		require.NoError(t, err)
	}
	wg.Wait()
}
