package iocache

import (
	"sync"

	"github.com/streampulse/pulse/internal/contract"
)

// CacheStoreManager manages the response CacheStore.
type CacheStoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	response     contract.CacheStore
}

var _ contract.CacheManager = &CacheStoreManager{} // Compile-time check

// GetResponseStore returns the response CacheStore, or nil when caching is not initialized.
func (mgr *CacheStoreManager) GetResponseStore() contract.CacheStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.response
}
