package api

import (
	"fmt"
	"sync"

	"assay/pkg/logging"
)

// Handler registry variables store the registered implementations.
// These variables are protected by handlerMutex for thread-safe access.
var (
	catalogHandler     CatalogHandler
	researchHandler    ResearchHandler
	validationHandler  ValidationHandler
	executionHandler   ExecutionHandler
	resultStoreHandler ResultStoreHandler
	docsHandler        DocsHandler
	configHandler      ConfigHandler

	// catalogUpdateSubscribers stores the components subscribed to catalog
	// update events. Access is protected by catalogUpdateMutex.
	catalogUpdateSubscribers []CatalogUpdateSubscriber
	catalogUpdateMutex       sync.Mutex

	// handlerMutex protects all handler registry operations for thread-safe registration and access.
	handlerMutex sync.RWMutex
)

// RegisterCatalog registers the catalog handler implementation.
// This handler provides access to the operation catalog: discovery passes,
// lookup by id, full-text search, and summary statistics.
//
// The registration is thread-safe and should be called during system initialization.
// Only one catalog handler can be registered at a time; subsequent
// registrations will replace the previous handler.
//
// Thread-safe: Yes, protected by handlerMutex.
//
// Example:
//
//	adapter := catalog.NewAdapter(cat)
//	adapter.Register()
func RegisterCatalog(h CatalogHandler) {
	handlerMutex.Lock()
	defer handlerMutex.Unlock()
	logging.Debug("API", "Registering catalog handler: %v", h != nil)
	catalogHandler = h
}

// GetCatalog returns the registered catalog handler.
//
// Returns nil if no handler has been registered yet. Callers should always
// check for nil before using the returned handler.
//
// Thread-safe: Yes, protected by handlerMutex read lock.
func GetCatalog() CatalogHandler {
	handlerMutex.RLock()
	defer handlerMutex.RUnlock()
	return catalogHandler
}

// RegisterResearch registers the research handler implementation.
// This handler manages manual signature entries and exposes merged
// operation views combining inference with human research.
//
// Thread-safe: Yes, protected by handlerMutex.
func RegisterResearch(h ResearchHandler) {
	handlerMutex.Lock()
	defer handlerMutex.Unlock()
	logging.Debug("API", "Registering research handler: %v", h != nil)
	researchHandler = h
}

// GetResearch returns the registered research handler.
//
// Returns nil if no handler has been registered yet. Callers should always
// check for nil before using the returned handler.
//
// Thread-safe: Yes, protected by handlerMutex read lock.
func GetResearch() ResearchHandler {
	handlerMutex.RLock()
	defer handlerMutex.RUnlock()
	return researchHandler
}

// RegisterValidation registers the validation handler implementation.
// This handler validates proposed arguments against merged operation
// signatures, aggregating every failed check instead of stopping early.
//
// Thread-safe: Yes, protected by handlerMutex.
func RegisterValidation(h ValidationHandler) {
	handlerMutex.Lock()
	defer handlerMutex.Unlock()
	logging.Debug("API", "Registering validation handler: %v", h != nil)
	validationHandler = h
}

// GetValidation returns the registered validation handler.
//
// Returns nil if no handler has been registered yet. Callers should always
// check for nil before using the returned handler.
//
// Thread-safe: Yes, protected by handlerMutex read lock.
func GetValidation() ValidationHandler {
	handlerMutex.RLock()
	defer handlerMutex.RUnlock()
	return validationHandler
}

// RegisterExecution registers the execution handler implementation.
// This handler runs operations through the safe execution engine with
// its confirmation gate, snapshot, observer, and timeout rails.
//
// Thread-safe: Yes, protected by handlerMutex.
func RegisterExecution(h ExecutionHandler) {
	handlerMutex.Lock()
	defer handlerMutex.Unlock()
	logging.Debug("API", "Registering execution handler: %v", h != nil)
	executionHandler = h
}

// GetExecution returns the registered execution handler.
//
// Returns nil if no handler has been registered yet. Callers should always
// check for nil before using the returned handler.
//
// Thread-safe: Yes, protected by handlerMutex read lock.
//
// Example:
//
//	engine := api.GetExecution()
//	if engine == nil {
//	    return fmt.Errorf("execution engine not available")
//	}
//	outcome, err := engine.Execute(ctx, "fs.read", args, opts)
func GetExecution() ExecutionHandler {
	handlerMutex.RLock()
	defer handlerMutex.RUnlock()
	return executionHandler
}

// RegisterResultStore registers the result store handler implementation.
// This handler provides append-only access to recorded test results.
//
// Thread-safe: Yes, protected by handlerMutex.
func RegisterResultStore(h ResultStoreHandler) {
	handlerMutex.Lock()
	defer handlerMutex.Unlock()
	logging.Debug("API", "Registering result store handler: %v", h != nil)
	resultStoreHandler = h
}

// GetResultStore returns the registered result store handler.
//
// Returns nil if no handler has been registered yet. Callers should always
// check for nil before using the returned handler.
//
// Thread-safe: Yes, protected by handlerMutex read lock.
func GetResultStore() ResultStoreHandler {
	handlerMutex.RLock()
	defer handlerMutex.RUnlock()
	return resultStoreHandler
}

// RegisterDocs registers the docs handler implementation.
// This handler generates and exports documentation packages from the
// catalog and recorded results.
//
// Thread-safe: Yes, protected by handlerMutex.
func RegisterDocs(h DocsHandler) {
	handlerMutex.Lock()
	defer handlerMutex.Unlock()
	logging.Debug("API", "Registering docs handler: %v", h != nil)
	docsHandler = h
}

// GetDocs returns the registered docs handler.
//
// Returns nil if no handler has been registered yet. Callers should always
// check for nil before using the returned handler.
//
// Thread-safe: Yes, protected by handlerMutex read lock.
func GetDocs() DocsHandler {
	handlerMutex.RLock()
	defer handlerMutex.RUnlock()
	return docsHandler
}

// RegisterConfigHandler registers the configuration handler implementation.
// This handler provides runtime configuration management functionality,
// including configuration retrieval, updates, and persistence operations.
//
// Thread-safe: Yes, protected by handlerMutex.
func RegisterConfigHandler(h ConfigHandler) {
	handlerMutex.Lock()
	defer handlerMutex.Unlock()
	configHandler = h
}

// GetConfigHandler returns the registered configuration handler.
//
// Returns nil if no handler has been registered yet. Callers should always
// check for nil before using the returned handler.
//
// Thread-safe: Yes, protected by handlerMutex read lock.
func GetConfigHandler() ConfigHandler {
	handlerMutex.RLock()
	defer handlerMutex.RUnlock()
	return configHandler
}

// SubscribeToCatalogUpdates allows components to subscribe to catalog
// change events. Subscribers are notified after discovery passes change
// the set of known operations, enabling tool surfaces to refresh.
//
// Thread-safe: Yes, protected by catalogUpdateMutex.
//
// Note: Subscriber callbacks are executed asynchronously and should not block.
// Panics in subscriber callbacks are recovered and logged as errors.
func SubscribeToCatalogUpdates(subscriber CatalogUpdateSubscriber) {
	catalogUpdateMutex.Lock()
	defer catalogUpdateMutex.Unlock()
	catalogUpdateSubscribers = append(catalogUpdateSubscribers, subscriber)
	logging.Debug("API", "Added catalog update subscriber, total subscribers: %d", len(catalogUpdateSubscribers))
}

// PublishCatalogUpdateEvent publishes a catalog update event to all
// registered subscribers. Each subscriber receives the event in a separate
// goroutine so slow or failing subscribers don't affect the publisher.
//
// Thread-safe: Yes, subscriber list is safely copied before notification.
func PublishCatalogUpdateEvent(event CatalogUpdateEvent) {
	catalogUpdateMutex.Lock()
	subscribers := make([]CatalogUpdateSubscriber, len(catalogUpdateSubscribers))
	copy(subscribers, catalogUpdateSubscribers)
	catalogUpdateMutex.Unlock()

	logging.Debug("API", "Publishing catalog update event: type=%s, operations=%d, subscribers=%d",
		event.Type, len(event.Operations), len(subscribers))

	for _, subscriber := range subscribers {
		// Call subscriber in goroutine to avoid blocking
		go func(s CatalogUpdateSubscriber) {
			defer func() {
				if r := recover(); r != nil {
					logging.Error("API", fmt.Errorf("panic in catalog update subscriber: %v", r), "Catalog update subscriber panicked")
				}
			}()
			s.OnCatalogUpdated(event)
		}(subscriber)
	}
}
