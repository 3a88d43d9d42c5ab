/*
 * Copyright (C) 2026 Nuts community
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 *
 */

package crawler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/nuts-foundation/ion-crawler/cas"
	"github.com/nuts-foundation/ion-crawler/core"
	"github.com/nuts-foundation/ion-crawler/crawler/log"
	"github.com/nuts-foundation/ion-crawler/didcache"
	"github.com/nuts-foundation/ion-crawler/events"
	"github.com/nuts-foundation/ion-crawler/storage"
	"github.com/nuts-foundation/ion-crawler/submitted"
	"github.com/nuts-foundation/ion-crawler/transactions"
	"github.com/nuts-foundation/ion-crawler/vdr/didion"
)

// ModuleName is the name of the crawler engine.
const ModuleName = "Crawler"

const (
	transactionsConnectTimeout = 10 * time.Second
	casRetryDelay              = 500 * time.Millisecond
	diagnosticsTimeout         = 2 * time.Second
)

var errNotStarted = errors.New("crawler engine not started")

var _ core.Injectable = (*Engine)(nil)
var _ core.Configurable = (*Engine)(nil)
var _ core.Runnable = (*Engine)(nil)
var _ core.Diagnosable = (*Engine)(nil)

// Engine wires the crawler to its stores and crawls the configured types in the background.
type Engine struct {
	config           Config
	storageInstance  storage.Engine
	publisher        events.Publisher
	crawler          *Crawler
	transactionStore transactions.Store
	submittedStore   submitted.Store
	ctx              context.Context
	cancel           context.CancelFunc
	routines         *sync.WaitGroup
	// newTransactionStore creates the transaction store, replaceable in tests.
	newTransactionStore func(config TransactionsConfig) transactions.Store
}

// NewEngine creates the crawler engine. Batches found by background crawls are published through the given publisher.
func NewEngine(storageInstance storage.Engine, publisher events.Publisher) *Engine {
	e := &Engine{
		config:          DefaultConfig(),
		storageInstance: storageInstance,
		publisher:       publisher,
		routines:        new(sync.WaitGroup),
		newTransactionStore: func(config TransactionsConfig) transactions.Store {
			return transactions.NewMongoStore(config.Connection, config.Database, transactionsConnectTimeout)
		},
	}
	e.ctx, e.cancel = context.WithCancel(context.Background())
	return e
}

func (e *Engine) Name() string {
	return ModuleName
}

func (e *Engine) Config() interface{} {
	return &e.config
}

func (e *Engine) Configure(_ core.ServerConfig) error {
	if strings.TrimSpace(e.config.DIDMethod) == "" {
		return errors.New("crawler.didmethod must be set")
	}
	if e.config.MaxFiles < 0 {
		return errors.New("crawler.maxfiles must be >= 0")
	}
	if e.config.Cache != CacheSQL && e.config.Cache != CacheRedis {
		return fmt.Errorf("crawler.cache must be %s or %s (was: %s)", CacheSQL, CacheRedis, e.config.Cache)
	}
	if e.config.Interval < 0 {
		return errors.New("crawler.interval must be >= 0")
	}
	for _, didType := range e.config.Types {
		if strings.TrimSpace(didType) == "" || len(didType) > didcache.MaxTypeLength {
			return fmt.Errorf("crawler.types must be non-empty and at most %d characters (was: %q)", didcache.MaxTypeLength, didType)
		}
	}
	if e.config.CAS.Endpoint == "" {
		return errors.New("crawler.cas.endpoint must be set")
	}
	if e.config.CAS.Timeout <= 0 {
		return errors.New("crawler.cas.timeout must be positive")
	}
	if e.config.CAS.MaxFileSize <= 0 {
		return errors.New("crawler.cas.maxfilesize must be positive")
	}
	if e.config.Transactions.Connection == "" || e.config.Transactions.Database == "" {
		return errors.New("crawler.transactions.connection and crawler.transactions.database must be set")
	}
	return registerMetrics()
}

func (e *Engine) Start() error {
	cache, err := e.createCache()
	if err != nil {
		return err
	}
	e.transactionStore = e.newTransactionStore(e.config.Transactions)
	e.crawler = New(e.transactionStore, e.createCASReader(), cache, didion.Deriver{Method: e.config.DIDMethod}, e.config.CAS.MaxFileSize)
	e.submittedStore = submitted.NewSQLStore(e.storageInstance.GetSQLDatabase())
	if e.config.Interval > 0 && len(e.config.Types) > 0 {
		e.routines.Add(1)
		go func() {
			defer e.routines.Done()
			e.crawlPeriodically()
		}()
	}
	return nil
}

func (e *Engine) Shutdown() error {
	e.cancel()
	e.routines.Wait()
	if closer, ok := e.transactionStore.(interface{ Close(ctx context.Context) error }); ok {
		return closer.Close(context.Background())
	}
	return nil
}

// Crawler returns the crawler. It is available after Start.
func (e *Engine) Crawler() *Crawler {
	return e.crawler
}

// Submitted returns the queue of submitted DIDs. It is available after Start.
func (e *Engine) Submitted() submitted.Store {
	return e.submittedStore
}

// Resolve crawls the given type, see Crawler.Resolve. It fails if the engine isn't started.
func (e *Engine) Resolve(ctx context.Context, didType string, maxFiles int, onBatch func([]string)) ([]string, error) {
	if e.crawler == nil {
		return nil, errNotStarted
	}
	return e.crawler.Resolve(ctx, didType, maxFiles, onBatch)
}

// DefaultMaxFiles returns the configured number of files a crawl inspects.
func (e *Engine) DefaultMaxFiles() int {
	return e.config.MaxFiles
}

func (e *Engine) Diagnostics() []core.DiagnosticResult {
	transactionCount := "unavailable"
	if e.transactionStore != nil {
		ctx, cancel := context.WithTimeout(e.ctx, diagnosticsTimeout)
		defer cancel()
		if count, err := e.transactionStore.Count(ctx); err == nil {
			transactionCount = fmt.Sprintf("%d", count)
		}
	}
	return []core.DiagnosticResult{
		&core.GenericDiagnosticResult{Title: "did_cache", Value: e.config.Cache},
		&core.GenericDiagnosticResult{Title: "cas_endpoint", Value: e.config.CAS.Endpoint},
		&core.GenericDiagnosticResult{Title: "transaction_count", Value: transactionCount},
		&core.GenericDiagnosticResult{Title: "crawl_types", Value: e.config.Types},
		&core.GenericDiagnosticResult{Title: "crawl_interval", Value: e.config.Interval},
	}
}

func (e *Engine) createCache() (didcache.Cache, error) {
	if e.config.Cache == CacheRedis {
		redisDatabase := e.storageInstance.GetRedisDatabase()
		if redisDatabase == nil {
			return nil, errors.New("crawler.cache is redis, but storage.redis.address is not set")
		}
		return didcache.NewRedisCache(redisDatabase), nil
	}
	return didcache.NewSQLCache(e.storageInstance.GetSQLDatabase()), nil
}

func (e *Engine) createCASReader() cas.Reader {
	reader := cas.NewRetryingReader(cas.NewIPFSReader(e.config.CAS.Endpoint, e.config.CAS.Timeout), e.config.CAS.Retries+1, casRetryDelay)
	if e.config.CAS.CacheExpiry > 0 {
		reader = cas.NewCachingReader(reader, e.storageInstance.GetCacheDatabase().GetStore(e.config.CAS.CacheExpiry, "cas"))
	}
	return reader
}

func (e *Engine) crawlPeriodically() {
	ticker := time.NewTicker(e.config.Interval)
	defer ticker.Stop()
	e.logTransactionCount()
	e.crawlTypes()
	for {
		select {
		case <-e.ctx.Done():
			return
		case <-ticker.C:
			e.crawlTypes()
		}
	}
}

func (e *Engine) logTransactionCount() {
	if err := e.transactionStore.Initialize(e.ctx); err != nil {
		log.Logger().WithError(err).Error("Unable to connect to transaction log")
		return
	}
	count, err := e.transactionStore.Count(e.ctx)
	if err != nil {
		log.Logger().WithError(err).Error("Unable to count transactions")
		return
	}
	log.Logger().Infof("Crawling %d transactions", count)
}

func (e *Engine) crawlTypes() {
	results, err := e.crawler.ResolveTypes(e.ctx, e.config.Types, e.config.MaxFiles, func(didType string, batch []string) {
		if err := e.publisher.PublishDiscovered(e.ctx, didType, batch); err != nil {
			log.Logger().WithError(err).WithField(core.LogFieldDIDType, didType).Warn("Unable to publish discovered DIDs")
		}
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Logger().WithError(err).Error("Background crawl failed")
	}
	for didType, identifiers := range results {
		log.Logger().WithField(core.LogFieldDIDType, didType).Infof("Background crawl done, %d DIDs known", len(identifiers))
	}
}
