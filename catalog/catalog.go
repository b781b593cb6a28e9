package catalog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/puzpuzpuz/xsync/v3"
	"github.com/tidwall/btree"
	"mit.edu/dsg/plansig/common"
)

// Catalog names the relations and indexes a plan refers to by ObjectID.
// The catalog is serialized as a single JSON blob through a PersistenceProvider.
//
// Plans reference relations and indexes by ObjectID only. ObjectIDs are assigned
// by the catalog and differ between installations, so anything that has to be
// stable across runs (a plan signature, for example) resolves them through
// RelName first.
//
// RelName is lock free and safe to call from any number of goroutines, including
// while DDL (AddTable, AddIndex) runs.
type Catalog struct {
	catalogState

	mu sync.RWMutex
	// tableMap orders tables by name; relNames maps every table and index
	// ObjectID to its name.
	tableMap *btree.BTreeG[*Table]
	relNames *xsync.MapOf[common.ObjectID, string]
}

// Column represents the basic unit of a table schema.
type Column struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Index describes a physical access path used to speed up queries.
type Index struct {
	Oid       common.ObjectID `json:"oid"`
	TableOid  common.ObjectID `json:"table_oid"`
	Name      string          `json:"name"`
	Type      string          `json:"type"`       // "hash" or "btree"
	KeySchema []string        `json:"key_schema"` // List of column names
}

// Table groups columns and their associated indexes under a unique ObjectID.
type Table struct {
	Oid     common.ObjectID `json:"oid"`
	Name    string          `json:"name"`
	Columns []Column        `json:"columns"`
	Indexes []Index         `json:"indexes"`
}

// PersistenceProvider abstracts how the catalog is saved to and loaded from disk.
type PersistenceProvider interface {
	LoadCatalogState() (json string, err error)
	SaveCatalogState(json string) error
}

func (t *Table) String() string {
	b, _ := json.MarshalIndent(t, "", "  ")
	return string(b)
}

type catalogState struct {
	NextId uint32   `json:"next_id"`
	Tables []*Table `json:"tables"`
}

func (c *Catalog) String() string {
	b, _ := json.MarshalIndent(&c.catalogState, "", "  ")
	return string(b)
}

func (c *Catalog) toJSON() (string, error) {
	b, err := json.MarshalIndent(&c.catalogState, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (c *Catalog) fromJSON(jsonData string) error {
	if err := json.Unmarshal([]byte(jsonData), &c.catalogState); err != nil {
		return err
	}
	for _, t := range c.catalogState.Tables {
		if _, replaced := c.tableMap.Set(t); replaced {
			return errors.Newf("table '%s' appears twice", t.Name)
		}
		c.relNames.Store(t.Oid, t.Name)
		for _, idx := range t.Indexes {
			c.relNames.Store(idx.Oid, idx.Name)
		}
	}
	return nil
}

func newEmptyCatalog() *Catalog {
	return &Catalog{
		catalogState: catalogState{
			NextId: 0,
			Tables: make([]*Table, 0),
		},
		tableMap: btree.NewBTreeG(func(a, b *Table) bool {
			return a.Name < b.Name
		}),
		relNames: xsync.NewMapOf[common.ObjectID, string](),
	}
}

// NewCatalog initializes a catalog. It attempts to load existing state
// from the provider; if no state exists, it starts with an empty catalog.
func NewCatalog(provider PersistenceProvider) (*Catalog, error) {
	result := newEmptyCatalog()

	jsonData, err := provider.LoadCatalogState()
	if errors.Is(err, os.ErrNotExist) {
		return result, nil
	}
	if err != nil {
		return nil, err
	}

	if err = result.fromJSON(jsonData); err != nil {
		// Parsing errors are fatal, usually indicating corruption
		return nil, errors.Wrap(err, "failed to parse catalog state")
	}

	return result, nil
}

// AddTable registers a new table in the catalog.
// It assigns a unique ObjectID to the table and persists the updated state. If the table with that name
// already exists, it returns DuplicateObjectError.
func (c *Catalog) AddTable(tableName string, columns []Column, provider PersistenceProvider) (*Table, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.lookupTable(tableName); exists {
		return nil, common.NewError(common.DuplicateObjectError, "table '%s' already exists", tableName)
	}

	// oid 0 is reserved for INVALID
	c.NextId++

	t := &Table{
		Oid:     common.ObjectID(c.NextId),
		Name:    tableName,
		Columns: columns,
		Indexes: make([]Index, 0),
	}

	c.catalogState.Tables = append(c.catalogState.Tables, t)
	c.tableMap.Set(t)
	c.relNames.Store(t.Oid, t.Name)

	jsonData, err := c.toJSON()
	if err != nil {
		return nil, err
	}
	return t, provider.SaveCatalogState(jsonData)
}

func (c *Catalog) lookupTable(tableName string) (*Table, bool) {
	return c.tableMap.Get(&Table{Name: tableName})
}

// GetTableMetadata fetches the schema for a specific table name.
func (c *Catalog) GetTableMetadata(tableName string) (*Table, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	table, exists := c.lookupTable(tableName)
	if !exists {
		return nil, common.NewError(common.NoSuchObjectError, "table '%s' does not exist", tableName)
	}
	return table, nil
}

// AddIndex attaches a new index definition to a table. If an index with that name
// already exists on the table, it returns DuplicateObjectError.
func (c *Catalog) AddIndex(indexName string, tableName string, indexType string, columnNames []string, provider PersistenceProvider) (*Index, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	table, exists := c.lookupTable(tableName)
	if !exists {
		return nil, common.NewError(common.NoSuchObjectError, "table '%s' does not exist", tableName)
	}

	for _, idx := range table.Indexes {
		if idx.Name == indexName {
			return nil, common.NewError(common.DuplicateObjectError,
				"index '%s' already exists on table '%s'", indexName, tableName)
		}
	}

	tableCols := make(map[string]bool)
	for _, col := range table.Columns {
		tableCols[col.Name] = true
	}
	for _, colName := range columnNames {
		if !tableCols[colName] {
			return nil, common.NewError(common.NoSuchObjectError,
				"column '%s' does not exist in table '%s'", colName, tableName)
		}
	}

	c.NextId++
	idx := Index{
		Oid:       common.ObjectID(c.NextId),
		TableOid:  table.Oid,
		Name:      indexName,
		Type:      indexType,
		KeySchema: columnNames,
	}

	table.Indexes = append(table.Indexes, idx)
	c.relNames.Store(idx.Oid, idx.Name)

	jsonData, err := c.toJSON()
	if err != nil {
		return nil, err
	}
	return &idx, provider.SaveCatalogState(jsonData)
}

// RelName returns the name of the table or index with the given ObjectID.
func (c *Catalog) RelName(oid common.ObjectID) (string, bool) {
	return c.relNames.Load(oid)
}

// Tables returns every table in name order.
func (c *Catalog) Tables() []*Table {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]*Table, 0, c.tableMap.Len())
	c.tableMap.Scan(func(t *Table) bool {
		result = append(result, t)
		return true
	})
	return result
}

const CatalogFileName = "catalog.json"

type DiskCatalogManager struct {
	rootPath string
}

func NewDiskCatalogManager(rootPath string) *DiskCatalogManager {
	return &DiskCatalogManager{
		rootPath: rootPath,
	}
}

// LoadCatalogState implements the catalog.PersistenceProvider interface.
func (dcm *DiskCatalogManager) LoadCatalogState() (string, error) {
	path := filepath.Join(dcm.rootPath, CatalogFileName)
	content, err := os.ReadFile(path)
	if err != nil {
		return "", err // Let the caller (Catalog) handle os.ErrNotExist
	}
	return string(content), nil
}

// SaveCatalogState implements the catalog.PersistenceProvider interface.
func (dcm *DiskCatalogManager) SaveCatalogState(jsonData string) error {
	// write to a temporary file and rename it over the old state
	tmpPath := filepath.Join(dcm.rootPath, CatalogFileName+".tmp")
	finalPath := filepath.Join(dcm.rootPath, CatalogFileName)

	if err := os.WriteFile(tmpPath, []byte(jsonData), 0644); err != nil {
		return err
	}

	return os.Rename(tmpPath, finalPath)
}

// MemCatalogManager keeps the catalog state in memory. It is used when no
// catalog directory is configured.
type MemCatalogManager struct {
	mu    sync.Mutex
	state string
	saved bool
}

func NewMemCatalogManager() *MemCatalogManager {
	return &MemCatalogManager{}
}

// LoadCatalogState implements the catalog.PersistenceProvider interface.
func (m *MemCatalogManager) LoadCatalogState() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.saved {
		return "", errors.Wrap(os.ErrNotExist, "in-memory catalog")
	}
	return m.state, nil
}

// SaveCatalogState implements the catalog.PersistenceProvider interface.
func (m *MemCatalogManager) SaveCatalogState(jsonData string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = jsonData
	m.saved = true
	return nil
}
