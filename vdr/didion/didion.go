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

// Package didion derives ION-style DID identifiers from the suffix data of create operations.
// The identifier suffix is the multihash of the JCS-canonicalized (RFC 8785) suffix data, encoded as unpadded base64url.
package didion

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/gowebpki/jcs"
	"github.com/minio/sha256-simd"
	"github.com/multiformats/go-multicodec"
	"github.com/multiformats/go-multihash"
)

// DefaultMethod is the DID method used when none is configured.
const DefaultMethod = "ion"

// HashAlgorithm is the multihash algorithm used to derive identifier suffixes.
// Changing it changes every derived identifier, so it is versioned through the multihash code.
const HashAlgorithm = multicodec.Sha2_256

// ErrCanonicalization is returned when a value can't be represented as canonical JSON.
var ErrCanonicalization = errors.New("unable to canonicalize value")

// ErrInvalidDID is returned by ParseDID when the input is not a derived identifier.
var ErrInvalidDID = errors.New("invalid DID")

// Canonicalize marshals the value to JSON and canonicalizes it according to RFC 8785.
func Canonicalize(value interface{}) ([]byte, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCanonicalization, err)
	}
	return CanonicalizeRaw(raw)
}

// CanonicalizeRaw canonicalizes already encoded JSON according to RFC 8785.
func CanonicalizeRaw(raw []byte) ([]byte, error) {
	canonical, err := jcs.Transform(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCanonicalization, err)
	}
	return canonical, nil
}

// Suffix returns the identifier suffix for the given canonical bytes.
func Suffix(canonical []byte) (string, error) {
	hash := sha256.Sum256(canonical)
	digest, err := multihash.Encode(hash[:], uint64(HashAlgorithm))
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(digest), nil
}

// Deriver derives identifiers for a DID method.
// The zero value derives identifiers for DefaultMethod.
type Deriver struct {
	Method string
}

// Derive returns the identifier for the given suffix data.
func (d Deriver) Derive(suffixData interface{}) (string, error) {
	canonical, err := Canonicalize(suffixData)
	if err != nil {
		return "", err
	}
	return d.identifier(canonical)
}

// DeriveRaw returns the identifier for the given JSON-encoded suffix data.
func (d Deriver) DeriveRaw(suffixData []byte) (string, error) {
	canonical, err := CanonicalizeRaw(suffixData)
	if err != nil {
		return "", err
	}
	return d.identifier(canonical)
}

func (d Deriver) identifier(canonical []byte) (string, error) {
	suffix, err := Suffix(canonical)
	if err != nil {
		return "", err
	}
	return "did:" + d.method() + ":" + suffix, nil
}

func (d Deriver) method() string {
	if d.Method == "" {
		return DefaultMethod
	}
	return d.Method
}

// ParseDID splits an identifier into its method and suffix. The method may contain colons (e.g. "ion:test").
// The suffix must be a base64url encoded multihash.
func ParseDID(id string) (method string, suffix string, err error) {
	rest, ok := strings.CutPrefix(id, "did:")
	separator := strings.LastIndex(rest, ":")
	if !ok || separator <= 0 {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidDID, id)
	}
	method, suffix = rest[:separator], rest[separator+1:]
	digest, err := base64.RawURLEncoding.DecodeString(suffix)
	if err != nil {
		return "", "", fmt.Errorf("%w: suffix is not base64url: %w", ErrInvalidDID, err)
	}
	if _, err = multihash.Cast(digest); err != nil {
		return "", "", fmt.Errorf("%w: suffix is not a multihash: %w", ErrInvalidDID, err)
	}
	return method, suffix, nil
}
