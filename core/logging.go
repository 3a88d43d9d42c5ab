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

package core

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

const (
	// LogFieldModule is the log field for the module name.
	LogFieldModule = "module"

	// LogFieldStore is the log field key for the name of a store managed by the storage module.
	LogFieldStore = "store"

	// LogFieldDID is the log field key for a (derived) DID.
	LogFieldDID = "did"
	// LogFieldDIDType is the log field key for the application-defined DID type a crawl is filtering on.
	LogFieldDIDType = "didType"

	// LogFieldContentHash is the log field key for the CAS content hash of a core index file.
	LogFieldContentHash = "contentHash"
	// LogFieldTransactionNumber is the log field key for the number of a transaction in the transaction log.
	LogFieldTransactionNumber = "txNumber"
	// LogFieldAnchorString is the log field key for the anchor string of a transaction.
	LogFieldAnchorString = "anchorString"

	// LogFieldRequestPath is the log field key for the path of an outgoing HTTP request.
	LogFieldRequestPath = "http_request_path"
	// LogFieldRequestURI is the log field key for the URI of an incoming HTTP request.
	LogFieldRequestURI = "requestURI"
	// LogFieldOperation is the log field key for the API operation serving an incoming HTTP request.
	LogFieldOperation = "operation"
)

// configureLogging sets the level (e.g. info) and format (text or json) of the standard logger.
func configureLogging(verbosity string, format string) error {
	level, err := logrus.ParseLevel(verbosity)
	if err != nil {
		return err
	}
	var formatter logrus.Formatter
	switch format {
	case "text":
		formatter = &logrus.TextFormatter{}
	case "json":
		formatter = &logrus.JSONFormatter{}
	default:
		return fmt.Errorf("invalid formatter: '%s'", format)
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(formatter)
	return nil
}
