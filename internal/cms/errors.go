// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cms

import (
	"errors"
	"fmt"
	"net/http"
)

// FetchError is returned for non-2xx CMS responses.
type FetchError struct {
	Status     int
	StatusText string
	Details    any // decoded JSON error body, nil if absent or not JSON
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("CMS API Error: %d %s", e.Status, e.StatusText)
}

// IsNotFound reports whether err is a CMS 404.
func IsNotFound(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe) && fe.Status == http.StatusNotFound
}

// ErrUnsupportedFilter is returned by the offline source for filters it
// cannot evaluate locally.
var ErrUnsupportedFilter = errors.New("unsupported offline filter")
