package cache

// ScopedKeyer prefixes every key of an inner Keyer. The server uses it to
// keep API-computed layouts apart from CLI entries in a shared backend.
//
//	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "api:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner. A nil inner uses DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// LayoutKey implements Keyer.
func (k *ScopedKeyer) LayoutKey(collectionHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(collectionHash, opts)
}
