package common

// ObjectID is a unique identifier for a table/index/etc. in the catalog.
// ObjectIDs are engine-internal and vary between installations, so they never
// appear in a signature directly; they are resolved to names first.
type ObjectID uint32

const InvalidObjectID ObjectID = 0

// Sentinel is rendered in place of a name that cannot be resolved.
const Sentinel = "UNKNOWN"
