// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/upisim/upisimd/transaction"
)

func TestStatusString(t *testing.T) {

	items := []struct {
		status   transaction.Status
		expected string
		terminal bool
	}{
		{transaction.Pending, "PENDING", false},
		{transaction.Success, "SUCCESS", true},
		{transaction.Failed, "FAILED", true},
	}

	for i, item := range items {
		if item.expected != item.status.String() {
			t.Errorf("%d: string expected: %q  actual: %q", i, item.expected, item.status.String())
		}
		if item.terminal != item.status.IsTerminal() {
			t.Errorf("%d: terminal expected: %t for: %s", i, item.terminal, item.status)
		}
	}
}

func TestStatusUnmarshalInvalid(t *testing.T) {

	var status transaction.Status
	err := status.UnmarshalText([]byte("SETTLED"))
	if nil == err {
		t.Fatal("unexpected success: unknown status accepted")
	}
}

func TestRecordPack(t *testing.T) {

	now := time.Date(2020, 4, 1, 12, 0, 0, 0, time.UTC)
	record := &transaction.Record{
		TxId:         "0c2865dc-9fb6-44a7-9b67-56b2b1a91dd7",
		PayTo:        "merchant01@icici",
		Amount:       500,
		Status:       transaction.Pending,
		AttemptCount: 0,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	buffer, err := record.Pack()
	if nil != err {
		t.Fatalf("pack error: %s", err)
	}

	// LastError must be absent while empty
	m := map[string]interface{}{}
	if err := json.Unmarshal(buffer, &m); nil != err {
		t.Fatalf("unmarshal error: %s", err)
	}
	if _, ok := m["last_error"]; ok {
		t.Fatal("empty last_error was serialised")
	}
	if "PENDING" != m["status"] {
		t.Fatalf("status expected: PENDING  actual: %v", m["status"])
	}

	unpacked, err := transaction.Unpack(buffer)
	if nil != err {
		t.Fatalf("unpack error: %s", err)
	}
	if *record != *unpacked {
		t.Fatalf("record mismatch, expected: %+v  actual: %+v", record, unpacked)
	}
}
