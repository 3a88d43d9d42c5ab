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

package v1

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/nuts-foundation/ion-crawler/core"
	"github.com/nuts-foundation/ion-crawler/crawler"
	"github.com/nuts-foundation/ion-crawler/crawler/log"
	"github.com/nuts-foundation/ion-crawler/didcache"
	"github.com/nuts-foundation/ion-crawler/submitted"
	"github.com/oapi-codegen/runtime"
)

// Backend is the part of the crawler engine the API invokes.
type Backend interface {
	Resolve(ctx context.Context, didType string, maxFiles int, onBatch func([]string)) ([]string, error)
	DefaultMaxFiles() int
	Submitted() submitted.Store
}

// DIDsResponse is the result of a crawl.
type DIDsResponse struct {
	Type string   `json:"type"`
	DIDs []string `json:"dids"`
}

// SubmittedDIDResponse is a DID in the submitted queue.
type SubmittedDIDResponse struct {
	DIDSuffix string   `json:"didSuffix"`
	Type      []string `json:"type"`
	Timestamp string   `json:"timestamp"`
}

// SubmitDIDRequest is the body of a DID submission.
type SubmitDIDRequest struct {
	DIDSuffix string          `json:"didSuffix"`
	Type      []string        `json:"type"`
	Document  json.RawMessage `json:"document"`
}

var _ core.ErrorStatusCodeResolver = (*Wrapper)(nil)

// Wrapper implements the crawler HTTP API.
type Wrapper struct {
	Backend Backend
}

func (w *Wrapper) ResolveStatusCode(err error) int {
	return core.ResolveStatusCode(err, map[error]int{
		crawler.ErrInvalidArgument:     http.StatusBadRequest,
		crawler.ErrStoreInitialization: http.StatusServiceUnavailable,
		submitted.ErrAlreadySubmitted:  http.StatusConflict,
	})
}

func (w *Wrapper) Routes(router core.EchoRouter) {
	router.GET("/internal/crawler/v1/dids", w.ResolveDIDs, w.middleware("ResolveDIDs"))
	router.GET("/operations", w.FindSubmittedDIDs, w.middleware("FindSubmittedDIDs"))
	router.POST("/operations", w.SubmitDID, w.middleware("SubmitDID"))
}

func (w *Wrapper) middleware(operationID string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			ctx.Set(core.OperationIDContextKey, operationID)
			ctx.Set(core.ModuleNameContextKey, crawler.ModuleName)
			ctx.Set(core.StatusCodeResolverContextKey, w)
			return next(ctx)
		}
	}
}

// ResolveDIDs crawls for DIDs of the type given by the 'type' query parameter.
// The 'maxfiles' query parameter overrides the configured number of files to inspect.
func (w *Wrapper) ResolveDIDs(ctx echo.Context) error {
	didType := ctx.QueryParam("type")
	if didType == "" {
		return core.InvalidInputError("missing query parameter: type")
	}
	maxFiles := w.Backend.DefaultMaxFiles()
	var maxFilesParam *int
	if err := runtime.BindQueryParameter("form", true, false, "maxfiles", ctx.QueryParams(), &maxFilesParam); err != nil {
		return core.InvalidInputError("invalid query parameter maxfiles: %w", err)
	}
	if maxFilesParam != nil {
		maxFiles = *maxFilesParam
	}
	dids, err := w.Backend.Resolve(ctx.Request().Context(), didType, maxFiles, nil)
	if err != nil {
		if dids == nil {
			return err
		}
		log.Logger().WithError(err).WithField(core.LogFieldDIDType, didType).Warn("Crawl completed with errors")
	}
	return ctx.JSON(http.StatusOK, DIDsResponse{Type: didType, DIDs: dids})
}

// FindSubmittedDIDs returns the submitted DIDs declaring all types given by the 'type' query parameters,
// optionally since the DID given by the 'since' query parameter.
func (w *Wrapper) FindSubmittedDIDs(ctx echo.Context) error {
	types := ctx.QueryParams()["type"]
	if len(types) == 0 {
		return core.InvalidInputError("missing query parameter: type")
	}
	dids, err := w.Backend.Submitted().FindByType(ctx.Request().Context(), ctx.QueryParam("since"), types...)
	if err != nil {
		return err
	}
	response := make([]SubmittedDIDResponse, 0, len(dids))
	for _, did := range dids {
		response = append(response, SubmittedDIDResponse{
			DIDSuffix: did.DIDSuffix,
			Type:      did.Types,
			Timestamp: did.SubmittedAt.UTC().Format(time.RFC3339Nano),
		})
	}
	return ctx.JSON(http.StatusOK, response)
}

// SubmitDID adds a DID to the submitted queue.
func (w *Wrapper) SubmitDID(ctx echo.Context) error {
	var request SubmitDIDRequest
	if err := ctx.Bind(&request); err != nil {
		return err
	}
	if request.DIDSuffix == "" {
		return core.InvalidInputError("missing didSuffix")
	}
	for _, didType := range request.Type {
		if didType == "" || len(didType) > didcache.MaxTypeLength {
			return core.InvalidInputError("type must be non-empty and at most %d characters", didcache.MaxTypeLength)
		}
	}
	if len(request.Document) == 0 || !json.Valid(request.Document) {
		return core.InvalidInputError("missing or invalid document")
	}
	err := w.Backend.Submitted().Enqueue(ctx.Request().Context(), request.DIDSuffix, request.Type, request.Document)
	if errors.Is(err, submitted.ErrAlreadySubmitted) {
		return core.Error(http.StatusConflict, "DID %s was already submitted: %w", request.DIDSuffix, err)
	}
	if err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}
