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

// Package crawler discovers DIDs of a given type by replaying the Sidetree transaction log backwards,
// and merges them with the DIDs discovered by earlier crawls.
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
	"github.com/nuts-foundation/ion-crawler/transactions"
	"github.com/nuts-foundation/ion-crawler/vdr/didion"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrInvalidArgument is returned when a crawl is requested for an empty type or a negative number of files.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrStoreInitialization is returned when the transaction log or DID cache can't be read.
	// No crawl is performed in that case.
	ErrStoreInitialization = errors.New("unable to read crawler stores")
	// ErrCASRead is the reason a core index file was skipped when it couldn't be read from the CAS.
	ErrCASRead = errors.New("unable to read core index file")
	// ErrDecompression is the reason a core index file was skipped when it isn't valid gzip.
	ErrDecompression = errors.New("unable to decompress core index file")
	// ErrParse is the reason a core index file was skipped when it isn't valid JSON.
	ErrParse = errors.New("unable to parse core index file")
)

// Crawler discovers DIDs. It is safe for concurrent use: every Resolve keeps its own state.
type Crawler struct {
	transactions transactions.Store
	cas          cas.Reader
	cache        didcache.Cache
	deriver      didion.Deriver
	maxFileSize  int
}

// New creates a Crawler on already configured collaborators.
// maxFileSize is the maximum size in bytes of a compressed core index file.
func New(transactionStore transactions.Store, casReader cas.Reader, cache didcache.Cache, deriver didion.Deriver, maxFileSize int) *Crawler {
	return &Crawler{
		transactions: transactionStore,
		cas:          casReader,
		cache:        cache,
		deriver:      deriver,
		maxFileSize:  maxFileSize,
	}
}

// Resolve returns all known DIDs of the given type: the ones cached by earlier crawls, merged with the ones found
// in the core index files of the newest maxFiles transactions. Newly found DIDs are added to the cache.
// onBatch (optional) is called synchronously with the DIDs of every inspected core index file that contains any,
// newest file first.
// Files that can't be read, decompressed or parsed are skipped, but count towards maxFiles.
// If the context is cancelled, the DIDs found until then are still cached and returned, together with the context error.
// Cache write failures don't stop the other writes; they're returned joined, together with the result.
func (c *Crawler) Resolve(ctx context.Context, didType string, maxFiles int, onBatch func([]string)) ([]string, error) {
	if strings.TrimSpace(didType) == "" {
		return nil, fmt.Errorf("%w: DID type is empty", ErrInvalidArgument)
	}
	if len(didType) > didcache.MaxTypeLength {
		return nil, fmt.Errorf("%w: DID type is longer than %d characters", ErrInvalidArgument, didcache.MaxTypeLength)
	}
	if maxFiles < 0 {
		return nil, fmt.Errorf("%w: maxFiles must be >= 0 (was %d)", ErrInvalidArgument, maxFiles)
	}
	start := time.Now()
	defer func() {
		resolveDuration.Observe(time.Since(start).Seconds())
	}()
	ctx, span := core.Tracer("crawler").Start(ctx, "crawler.Resolve", trace.WithAttributes(
		attribute.String("did.type", didType),
		attribute.Int("crawler.maxfiles", maxFiles),
	))
	defer span.End()
	logger := log.Logger().WithContext(ctx).WithField(core.LogFieldDIDType, didType)

	cached, allTransactions, err := c.load(ctx, didType)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "loading stores failed")
		return nil, err
	}
	cachedSet := make(map[string]struct{}, len(cached))
	result := make([]string, 0, len(cached))
	for _, entry := range cached {
		if _, ok := cachedSet[entry.Identifier]; !ok {
			cachedSet[entry.Identifier] = struct{}{}
			result = append(result, entry.Identifier)
		}
	}

	discovered, crawlErr := c.crawl(ctx, logger, allTransactions, didType, maxFiles, onBatch)

	// The crawl may have been cancelled; the DIDs found are valid nevertheless.
	writeCtx := context.WithoutCancel(ctx)
	var writeErrs []error
	for _, identifier := range discovered {
		if _, ok := cachedSet[identifier]; ok {
			continue
		}
		result = append(result, identifier)
		if err := c.cache.Add(writeCtx, identifier, didType); err != nil {
			cacheWritesCounter.WithLabelValues(outcomeFailure).Inc()
			logger.WithError(err).WithField(core.LogFieldDID, identifier).Error("Unable to cache discovered DID")
			writeErrs = append(writeErrs, fmt.Errorf("%s: %w", identifier, err))
			continue
		}
		cacheWritesCounter.WithLabelValues(outcomeSuccess).Inc()
	}
	logger.Debugf("Crawl finished: %d cached, %d discovered, %d total", len(cached), len(discovered), len(result))
	span.SetAttributes(attribute.Int("crawler.discovered", len(discovered)), attribute.Int("crawler.total", len(result)))
	err = errors.Join(append([]error{crawlErr}, writeErrs...)...)
	if err != nil {
		span.RecordError(err)
	}
	return result, err
}

func (c *Crawler) load(ctx context.Context, didType string) ([]didcache.Entry, []transactions.Transaction, error) {
	if err := c.cache.Initialize(ctx); err != nil {
		return nil, nil, core.WrapError(ErrStoreInitialization, err)
	}
	if err := c.transactions.Initialize(ctx); err != nil {
		return nil, nil, core.WrapError(ErrStoreInitialization, err)
	}
	cached, err := c.cache.EntriesForType(ctx, didType)
	if err != nil {
		return nil, nil, core.WrapError(ErrStoreInitialization, err)
	}
	allTransactions, err := c.transactions.All(ctx)
	if err != nil {
		return nil, nil, core.WrapError(ErrStoreInitialization, err)
	}
	return cached, allTransactions, nil
}

// crawl inspects the core index files of the newest maxFiles transactions, one at a time.
// It returns the DIDs found, each once, and the context error if it was cancelled.
func (c *Crawler) crawl(ctx context.Context, logger *logrus.Entry, allTransactions []transactions.Transaction,
	didType string, maxFiles int, onBatch func([]string)) ([]string, error) {
	var discovered []string
	seen := map[string]struct{}{}
	attempts := 0
	for i := len(allTransactions) - 1; i >= 0 && attempts < maxFiles; i-- {
		if err := ctx.Err(); err != nil {
			logger.Infof("Crawl cancelled after %d files", attempts)
			return discovered, err
		}
		transaction := allTransactions[i]
		batch, err := c.readDocument(ctx, transaction, didType)
		attempts++
		if err != nil {
			documentsCounter.WithLabelValues(documentOutcome(err)).Inc()
			logger.WithError(err).
				WithField(core.LogFieldTransactionNumber, transaction.TransactionNumber).
				WithField(core.LogFieldAnchorString, transaction.AnchorString).
				Warn("Skipping core index file")
			continue
		}
		documentsCounter.WithLabelValues(outcomeSuccess).Inc()
		if len(batch) == 0 {
			continue
		}
		discoveredCounter.Add(float64(len(batch)))
		for _, identifier := range batch {
			if _, ok := seen[identifier]; !ok {
				seen[identifier] = struct{}{}
				discovered = append(discovered, identifier)
			}
		}
		if onBatch != nil {
			onBatch(batch)
		}
	}
	return discovered, nil
}

func documentOutcome(err error) string {
	switch {
	case errors.Is(err, ErrCASRead):
		return "cas_read"
	case errors.Is(err, ErrDecompression):
		return "decompression"
	case errors.Is(err, ErrParse):
		return "parse"
	default:
		return outcomeFailure
	}
}

// ResolveTypes crawls the given types concurrently, see Resolve. onBatch (optional) is called with the type
// a batch was found for, possibly from multiple goroutines at once.
// It returns the DIDs per type for every crawl that produced a result, and the errors of all crawls joined.
func (c *Crawler) ResolveTypes(ctx context.Context, types []string, maxFiles int, onBatch func(didType string, batch []string)) (map[string][]string, error) {
	result := make(map[string][]string, len(types))
	var errs []error
	mux := sync.Mutex{}
	group := errgroup.Group{}
	for _, didType := range types {
		group.Go(func() error {
			var typeBatch func([]string)
			if onBatch != nil {
				typeBatch = func(batch []string) {
					onBatch(didType, batch)
				}
			}
			identifiers, err := c.Resolve(ctx, didType, maxFiles, typeBatch)
			mux.Lock()
			defer mux.Unlock()
			if identifiers != nil {
				result[didType] = identifiers
			}
			if err != nil {
				errs = append(errs, fmt.Errorf("crawl of type %s: %w", didType, err))
			}
			return nil
		})
	}
	_ = group.Wait()
	return result, errors.Join(errs...)
}
