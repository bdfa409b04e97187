package m_product

// Keys of the two product collections in the kv store.
// Each key holds the full collection as one JSON array.
const (
	ActiveKey   = "products"
	ArchivedKey = "archivedProducts"
)
