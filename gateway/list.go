// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package gateway

import (
	"github.com/upisim/upisimd/fault"
	"github.com/upisim/upisimd/transaction"
)

// MaximumListSize - upper bound on a single listing
const MaximumListSize = 100

// ListTransactions - a page of stored transactions in identifier order
//
// an inspection operation for the restricted detail endpoints; reads
// the durable store only, never the cache, so the page reflects what
// would survive a restart
func ListTransactions(count int) ([]*transaction.Record, error) {
	globalData.RLock()
	defer globalData.RUnlock()

	if !globalData.initialised {
		return nil, fault.NotInitialised
	}

	if count <= 0 || count > MaximumListSize {
		return nil, fault.InvalidCount
	}

	elements, err := globalData.newCursor().Fetch(count)
	if nil != err {
		return nil, err
	}

	records := make([]*transaction.Record, 0, len(elements))
	for _, e := range elements {
		record, err := transaction.Unpack(e.Value)
		if nil != err {
			globalData.log.Errorf("corrupt record: key: %q  error: %s", e.Key, err)
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}
