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
	"testing"

	"github.com/nuts-foundation/ion-crawler/cas"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func counterValue(t *testing.T, counter prometheus.Counter) float64 {
	metric := &dto.Metric{}
	require.NoError(t, counter.Write(metric))
	return metric.GetCounter().GetValue()
}

func TestRegisterMetrics(t *testing.T) {
	require.NoError(t, registerMetrics())
	// already registered collectors are ignored
	assert.NoError(t, registerMetrics())
}

func TestCrawler_Resolve_Metrics(t *testing.T) {
	c := newTestContext(t)
	suffixData := `{"type":"X","deltaHash":"a"}`
	c.expectStores(nil, "1.hash1", "1.hash2", "1.hash3")
	c.expectDocument(t, "hash3", createDocument(suffixData))
	c.cas.EXPECT().Read(gomock.Any(), "hash2", testMaxFileSize).Return(cas.FetchResult{Code: cas.NotFound})
	c.cas.EXPECT().Read(gomock.Any(), "hash1", testMaxFileSize).Return(cas.FetchResult{Code: cas.Success, Content: []byte("not gzip")})
	c.cache.EXPECT().Add(gomock.Any(), deriveDID(t, suffixData), "X").Return(nil)
	successes := counterValue(t, documentsCounter.WithLabelValues(outcomeSuccess))
	casReads := counterValue(t, documentsCounter.WithLabelValues("cas_read"))
	decompressions := counterValue(t, documentsCounter.WithLabelValues("decompression"))
	discovered := counterValue(t, discoveredCounter)
	cacheWrites := counterValue(t, cacheWritesCounter.WithLabelValues(outcomeSuccess))

	_, err := c.crawler.Resolve(context.Background(), "X", 10, nil)

	require.NoError(t, err)
	assert.Equal(t, successes+1, counterValue(t, documentsCounter.WithLabelValues(outcomeSuccess)))
	assert.Equal(t, casReads+1, counterValue(t, documentsCounter.WithLabelValues("cas_read")))
	assert.Equal(t, decompressions+1, counterValue(t, documentsCounter.WithLabelValues("decompression")))
	assert.Equal(t, discovered+1, counterValue(t, discoveredCounter))
	assert.Equal(t, cacheWrites+1, counterValue(t, cacheWritesCounter.WithLabelValues(outcomeSuccess)))
}
