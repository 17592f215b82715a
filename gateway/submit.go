// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package gateway

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/upisim/upisimd/fault"
	"github.com/upisim/upisimd/transaction"
	"github.com/upisim/upisimd/upi"
)

// Submit - accept a collect request
//
// validation failures are rejected before any write occurs; after a
// successful store write the record is mirrored to the cache and its
// identifier appended to the queue; a queue overflow rolls the store
// and cache writes back so that the caller sees a whole failure
func Submit(payTo string, amount float64) (*transaction.Record, error) {
	globalData.RLock()
	defer globalData.RUnlock()

	if !globalData.initialised {
		return nil, fault.NotInitialised
	}

	log := globalData.log

	if err := upi.Validate(payTo); nil != err {
		return nil, err
	}
	if amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return nil, fault.InvalidAmount
	}

	txId := uuid.New().String()

	// a fresh random identifier colliding with a stored one is
	// astronomically unlikely, but a collision must not overwrite a
	// live transaction
	here, err := globalData.store.Has([]byte(txId))
	if nil != err {
		return nil, err
	}
	if here {
		return nil, fault.TransactionAlreadyExists
	}

	now := time.Now().UTC()
	record := &transaction.Record{
		TxId:         txId,
		PayTo:        payTo,
		Amount:       amount,
		Status:       transaction.Pending,
		AttemptCount: 0,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	packed, err := record.Pack()
	if nil != err {
		return nil, err
	}

	if err := globalData.store.Put([]byte(txId), packed); nil != err {
		log.Errorf("store write failed: tx: %s  error: %s", txId, err)
		return nil, err
	}

	globalData.cache.Put(txId, record)

	if err := globalData.queue.Send(txId); nil != err {
		log.Errorf("queue send failed: tx: %s  error: %s", txId, err)
		globalData.cache.Delete(txId)
		_ = globalData.store.Delete([]byte(txId))
		return nil, err
	}

	submissionCounter.Increment()
	log.Infof("accepted: tx: %s  pay to: %s  amount: %f", txId, payTo, amount)

	return record, nil
}
