// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package gateway

import (
	"github.com/upisim/upisimd/fault"
	"github.com/upisim/upisimd/transaction"
)

// GetStatus - answer a status query
//
// prefers the cache record, which may be stale by at most one
// in-flight processing step, and falls back to the durable store; a
// cache miss is not repaired here
func GetStatus(txId string) (*transaction.Record, error) {
	globalData.RLock()
	defer globalData.RUnlock()

	if !globalData.initialised {
		return nil, fault.NotInitialised
	}

	if value, ok := globalData.cache.Get(txId); ok {
		if record, ok := value.(*transaction.Record); ok {
			return record, nil
		}
	}

	packed, err := globalData.store.Get([]byte(txId))
	if nil != err {
		return nil, err
	}
	if nil == packed {
		return nil, fault.TransactionNotFound
	}

	return transaction.Unpack(packed)
}
