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

package cas

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mr-tron/base58"
	"github.com/multiformats/go-multihash"
	"github.com/nuts-foundation/ion-crawler/cas/log"
	"github.com/nuts-foundation/ion-crawler/core"
	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// DefaultTimeout is the default time a single IPFS read may take.
const DefaultTimeout = 10 * time.Second

const ipfsDirectoryMessage = "this dag node is a directory"

var _ Reader = (*ipfsReader)(nil)

// NewIPFSReader creates a Reader on the HTTP API of the IPFS node at the given endpoint, e.g. http://localhost:5001.
func NewIPFSReader(endpoint string, timeout time.Duration) Reader {
	return &ipfsReader{
		endpoint: strings.TrimSuffix(endpoint, "/"),
		timeout:  timeout,
		client:   &http.Client{},
	}
}

type ipfsReader struct {
	endpoint string
	timeout  time.Duration
	client   core.HTTPRequestDoer
}

func (i ipfsReader) Read(ctx context.Context, contentHash string, maxSizeInBytes int) FetchResult {
	ctx, span := core.Tracer("cas").Start(ctx, "cas.Read",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("cas.hash", contentHash)))
	defer span.End()
	result := i.read(ctx, contentHash, maxSizeInBytes)
	span.SetAttributes(attribute.String("cas.result", string(result.Code)))
	return result
}

func (i ipfsReader) read(ctx context.Context, contentHash string, maxSizeInBytes int) FetchResult {
	if err := ValidateHash(contentHash); err != nil {
		return FetchResult{Code: InvalidHash, Err: err}
	}
	query := url.Values{}
	query.Set("arg", contentHash)
	if maxSizeInBytes > 0 {
		// one more byte than allowed, to detect content that is too large
		query.Set("length", strconv.Itoa(maxSizeInBytes+1))
	}
	readCtx, cancel := context.WithTimeout(ctx, i.timeout)
	defer cancel()
	request, err := http.NewRequestWithContext(readCtx, http.MethodPost, i.endpoint+"/api/v0/cat?"+query.Encode(), nil)
	if err != nil {
		return FetchResult{Code: Transient, Err: err}
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(request.Header))
	response, err := i.client.Do(request)
	if err != nil {
		return i.failure(ctx, readCtx, contentHash, err)
	}
	defer response.Body.Close()
	if err = core.TestResponseCodeWithLog(http.StatusOK, response, log.Logger()); err != nil {
		return classifyHTTPError(contentHash, err)
	}
	content, err := core.ReadResponseBody(response, maxSizeInBytes)
	if errors.Is(err, core.ErrResponseTooLarge) {
		return FetchResult{Code: MaxSizeExceeded, Err: fmt.Errorf("content %s: %w", contentHash, err)}
	}
	if err != nil {
		return i.failure(ctx, readCtx, contentHash, err)
	}
	return FetchResult{Code: Success, Content: content}
}

// failure maps a transport error: running out of read time means the node couldn't find the content,
// anything else (including cancellation by the caller) is transient.
func (i ipfsReader) failure(ctx context.Context, readCtx context.Context, contentHash string, err error) FetchResult {
	if ctx.Err() == nil && errors.Is(readCtx.Err(), context.DeadlineExceeded) {
		log.Logger().
			WithField(core.LogFieldContentHash, contentHash).
			Debugf("IPFS read timed out after %s", i.timeout)
		return FetchResult{Code: NotFound, Err: err}
	}
	return FetchResult{Code: Transient, Err: err}
}

func classifyHTTPError(contentHash string, err error) FetchResult {
	var httpErr core.HTTPError
	if !errors.As(err, &httpErr) {
		return FetchResult{Code: Transient, Err: err}
	}
	if httpErr.StatusCode >= http.StatusInternalServerError {
		if gjson.GetBytes(httpErr.ResponseBody, "Message").String() == ipfsDirectoryMessage {
			return FetchResult{Code: NotAFile, Err: fmt.Errorf("content %s is not a file: %w", contentHash, err)}
		}
		return FetchResult{Code: Transient, Err: err}
	}
	return FetchResult{Code: NotFound, Err: err}
}

// ValidateHash checks the given content hash is a base58 encoded multihash.
func ValidateHash(contentHash string) error {
	decoded, err := base58.Decode(contentHash)
	if err != nil {
		return fmt.Errorf("content hash %q is not base58 encoded: %w", contentHash, err)
	}
	if _, err = multihash.Decode(decoded); err != nil {
		return fmt.Errorf("content hash %q is not a multihash: %w", contentHash, err)
	}
	return nil
}
