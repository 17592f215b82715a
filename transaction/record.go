// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"encoding/json"
	"time"
)

// Record - the unit of work for the collection pipeline
//
// the same structure serves as the durable store value and as the
// cache projection; LastError holds the tag of the most recent failed
// attempt and is cleared on success
type Record struct {
	TxId         string    `json:"tx_id"`
	PayTo        string    `json:"to_upi"`
	Amount       float64   `json:"amount"`
	Status       Status    `json:"status"`
	AttemptCount int       `json:"attempt_count"`
	LastError    string    `json:"last_error,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Pack - serialise a record to its stored form
func (record *Record) Pack() ([]byte, error) {
	return json.Marshal(record)
}

// Unpack - deserialise a stored record
func Unpack(buffer []byte) (*Record, error) {
	record := &Record{}
	if err := json.Unmarshal(buffer, record); nil != err {
		return nil, err
	}
	return record, nil
}
