/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package uschess imports USCF rated-event state into pairing engine
// inputs: cross tables fetched from the ratings API (with a scrape of
// the classic MSA pages as fallback) become swiss.Player lists ready to
// pair the next round, and result maps ready for tiebreak calculation.
package uschess

import (
	"context"
	"net/http"
	"time"

	"github.com/mikeb26/swisspair/internal/httpcache"
)

type Client struct {
	httpClient30day *http.Client
	httpClient1day  *http.Client
}

func NewClient(ctx context.Context) *Client {
	ret := &Client{
		httpClient30day: httpcache.NewCachedHttpClient(ctx, 30*24*time.Hour),
	}
	if ret.httpClient30day != http.DefaultClient {
		ret.httpClient1day = httpcache.NewCachedHttpClient(ctx, 24*time.Hour)
	} else {
		ret.httpClient1day = http.DefaultClient
	}

	return ret
}
