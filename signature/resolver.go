package signature

import (
	"go.uber.org/zap"
	"mit.edu/dsg/plansig/common"
	"mit.edu/dsg/plansig/planner"
)

// RelNameLookup is the default catalog lookup of a relation or index name.
// *catalog.Catalog implements it.
type RelNameLookup interface {
	RelName(oid common.ObjectID) (string, bool)
}

// IndexNameHook overrides the catalog when naming an index. Returning false
// declines, and the catalog is asked instead.
type IndexNameHook func(indexOid common.ObjectID) (string, bool)

// NameResolver turns the references a plan holds into the names a signature
// shows. Names that cannot be resolved render as common.Sentinel.
type NameResolver struct {
	catalog RelNameLookup
	hook    IndexNameHook
	logger  *zap.Logger
}

// NewNameResolver returns a resolver that names indexes through hook first and
// catalog second. Both may be nil.
func NewNameResolver(catalog RelNameLookup, hook IndexNameHook, logger *zap.Logger) *NameResolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NameResolver{catalog: catalog, hook: hook, logger: logger}
}

// TableAlias returns the alias of the range table entry ref points to.
func (r *NameResolver) TableAlias(rt planner.RangeTable, ref planner.RTIndex) string {
	entry, ok := rt.Entry(ref)
	if !ok || entry.Alias == "" {
		r.logger.Warn("unresolved range table reference",
			zap.Int("rtindex", int(ref)), zap.Int("range_table_len", len(rt)))
		return common.Sentinel
	}
	return entry.Alias
}

// IndexName returns the name of the index with the given ObjectID.
func (r *NameResolver) IndexName(indexOid common.ObjectID) string {
	if r.hook != nil {
		if name, ok := r.hook(indexOid); ok && name != "" {
			return name
		}
	}
	if r.catalog != nil {
		if name, ok := r.catalog.RelName(indexOid); ok && name != "" {
			return name
		}
	}
	r.logger.Warn("unresolved index", zap.Uint32("index_oid", uint32(indexOid)))
	return common.Sentinel
}
