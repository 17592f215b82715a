// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package worker

import (
	"time"

	"github.com/upisim/upisimd/transaction"
)

// largest exponent applied to the base backoff; beyond this the delay
// saturates instead of overflowing
const maximumBackoffShift = 16

// process - run one attempt of the retry state machine
//
// a nil return means the delivery is fully handled, including the
// no-op cases; a non-nil return means the identifier must be
// re-enqueued by the driving loop
func (w *Worker) process(txId string) error {

	log := w.log

	// one attempt at a time per identifier
	if !acquire(txId) {
		log.Warnf("duplicate delivery while processing: tx: %s", txId)
		return nil
	}
	defer release(txId)

	// resolve the current attempt count, cache preferred
	attempts, live, err := w.currentAttempts(txId)
	if nil != err {
		return err
	}
	if !live {
		// unknown or already terminal: duplicate delivery, no-op
		log.Debugf("already resolved: tx: %s", txId)
		return nil
	}

	// exponential backoff before this attempt
	w.delay(backoff(w.baseBackoff, attempts))

	// present the transaction to the payment network
	railErr := w.rail.Authorize(txId)

	// re-read the authoritative record: it may have been completed or
	// removed while this attempt was waiting
	packed, err := w.store.Get([]byte(txId))
	if nil != err {
		return err
	}
	if nil == packed {
		log.Warnf("record vanished: tx: %s", txId)
		return nil
	}
	record, err := transaction.Unpack(packed)
	if nil != err {
		return err
	}
	if record.Status.IsTerminal() {
		return nil
	}

	// exactly one increment per attempt
	record.AttemptCount += 1
	record.UpdatedAt = time.Now().UTC()

	if nil == railErr {
		record.Status = transaction.Success
		record.LastError = ""
	} else {
		record.LastError = railErr.Error()
		if record.AttemptCount >= w.maximumRetries {
			record.Status = transaction.Failed
		}
	}

	packed, err = record.Pack()
	if nil != err {
		return err
	}
	if err := w.store.Put([]byte(txId), packed); nil != err {
		return err
	}
	w.cache.Put(txId, record)

	processedCounter.Increment()

	switch record.Status {
	case transaction.Success:
		successCounter.Increment()
		log.Infof("success: tx: %s  attempts: %d", txId, record.AttemptCount)

	case transaction.Failed:
		failureCounter.Increment()
		log.Warnf("failed finally: tx: %s  attempts: %d  error: %s", txId, record.AttemptCount, record.LastError)

	default:
		// transient failure: another attempt is due
		requeueCounter.Increment()
		log.Infof("requeued: tx: %s  attempts: %d  error: %s", txId, record.AttemptCount, record.LastError)
		if err := w.queue.Send(txId); nil != err {
			return err
		}
	}

	return nil
}

// currentAttempts - the attempt count for a live pending transaction
//
// the second return is false if the transaction is unknown or already
// terminal so the caller can treat the delivery as a no-op
func (w *Worker) currentAttempts(txId string) (int, bool, error) {

	if value, ok := w.cache.Get(txId); ok {
		if record, ok := value.(*transaction.Record); ok {
			if record.Status.IsTerminal() {
				return 0, false, nil
			}
			return record.AttemptCount, true, nil
		}
	}

	packed, err := w.store.Get([]byte(txId))
	if nil != err {
		return 0, false, err
	}
	if nil == packed {
		return 0, false, nil
	}

	record, err := transaction.Unpack(packed)
	if nil != err {
		return 0, false, err
	}
	if record.Status.IsTerminal() {
		return 0, false, nil
	}
	return record.AttemptCount, true, nil
}

// backoff - delay before the k+1st attempt: base * 2^k, saturating
func backoff(base time.Duration, attempts int) time.Duration {
	if attempts > maximumBackoffShift {
		attempts = maximumBackoffShift
	}
	return base * time.Duration(uint64(1)<<uint(attempts))
}
