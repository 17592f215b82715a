// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/upisim/upisimd/fault"
)

const databaseFileName = "test.leveldb"

var testDatabase = filepath.Join(os.TempDir(), databaseFileName)

func setup(t *testing.T) {
	teardown(t)
	if err := Initialise(testDatabase); nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}
}

func teardown(t *testing.T) {
	Finalise()
	_ = os.RemoveAll(testDatabase)
}

func TestPutGet(t *testing.T) {
	setup(t)
	defer teardown(t)

	key := []byte("tx-0001")
	value := []byte(`{"status":"PENDING"}`)

	if err := Pool.TestData.Put(key, value); nil != err {
		t.Fatalf("put error: %s", err)
	}

	buffer, err := Pool.TestData.Get(key)
	if nil != err {
		t.Fatalf("get error: %s", err)
	}
	if string(value) != string(buffer) {
		t.Fatalf("value mismatch, expected: %q  actual: %q", value, buffer)
	}

	// missing key returns nil, no error
	buffer, err = Pool.TestData.Get([]byte("no-such-key"))
	if nil != err {
		t.Fatalf("get error: %s", err)
	}
	if nil != buffer {
		t.Fatalf("unexpected value: %q", buffer)
	}
}

func TestHasDelete(t *testing.T) {
	setup(t)
	defer teardown(t)

	key := []byte("tx-0002")

	here, err := Pool.TestData.Has(key)
	if nil != err {
		t.Fatalf("has error: %s", err)
	}
	if here {
		t.Fatal("unexpected key found")
	}

	if err := Pool.TestData.Put(key, []byte("data")); nil != err {
		t.Fatalf("put error: %s", err)
	}

	here, err = Pool.TestData.Has(key)
	if nil != err {
		t.Fatalf("has error: %s", err)
	}
	if !here {
		t.Fatal("key not found")
	}

	if err := Pool.TestData.Delete(key); nil != err {
		t.Fatalf("delete error: %s", err)
	}

	here, err = Pool.TestData.Has(key)
	if nil != err {
		t.Fatalf("has error: %s", err)
	}
	if here {
		t.Fatal("deleted key still present")
	}
}

// pools are prefixed so the same key in different pools cannot collide
func TestPoolSeparation(t *testing.T) {
	setup(t)
	defer teardown(t)

	key := []byte("shared-key")

	if err := Pool.Transactions.Put(key, []byte("transaction")); nil != err {
		t.Fatalf("put error: %s", err)
	}
	if err := Pool.TestData.Put(key, []byte("test")); nil != err {
		t.Fatalf("put error: %s", err)
	}

	buffer, err := Pool.Transactions.Get(key)
	if nil != err {
		t.Fatalf("get error: %s", err)
	}
	if "transaction" != string(buffer) {
		t.Fatalf("value mismatch, expected: %q  actual: %q", "transaction", buffer)
	}
}

// range fetch pages through one pool in key order, resuming where the
// previous page stopped and never crossing into another pool
func TestFetchCursor(t *testing.T) {
	setup(t)
	defer teardown(t)

	keys := []string{"tx-0001", "tx-0002", "tx-0003", "tx-0004", "tx-0005"}
	for i, key := range keys {
		if err := Pool.TestData.Put([]byte(key), []byte(fmt.Sprintf("value-%d", i))); nil != err {
			t.Fatalf("put error: %s", err)
		}
	}

	// same keys in another pool must stay invisible
	if err := Pool.Transactions.Put([]byte("tx-0001"), []byte("other pool")); nil != err {
		t.Fatalf("put error: %s", err)
	}

	cursor := Pool.TestData.NewFetchCursor()

	elements, err := cursor.Fetch(3)
	if nil != err {
		t.Fatalf("fetch error: %s", err)
	}
	if 3 != len(elements) {
		t.Fatalf("wrong element count, expected: %d  actual: %d", 3, len(elements))
	}
	for i, e := range elements {
		if keys[i] != string(e.Key) {
			t.Fatalf("%d: key mismatch, expected: %q  actual: %q", i, keys[i], e.Key)
		}
		expected := fmt.Sprintf("value-%d", i)
		if expected != string(e.Value) {
			t.Fatalf("%d: value mismatch, expected: %q  actual: %q", i, expected, e.Value)
		}
	}

	// the second page continues after the last key of the first
	elements, err = cursor.Fetch(10)
	if nil != err {
		t.Fatalf("fetch error: %s", err)
	}
	if 2 != len(elements) {
		t.Fatalf("wrong element count, expected: %d  actual: %d", 2, len(elements))
	}
	if "tx-0004" != string(elements[0].Key) || "tx-0005" != string(elements[1].Key) {
		t.Fatalf("wrong resume point: %q %q", elements[0].Key, elements[1].Key)
	}

	// exhausted cursor returns an empty page
	elements, err = cursor.Fetch(10)
	if nil != err {
		t.Fatalf("fetch error: %s", err)
	}
	if 0 != len(elements) {
		t.Fatalf("unexpected elements: %d", len(elements))
	}
}

func TestFetchCursorSeek(t *testing.T) {
	setup(t)
	defer teardown(t)

	for _, key := range []string{"tx-0001", "tx-0002", "tx-0003"} {
		if err := Pool.TestData.Put([]byte(key), []byte("x")); nil != err {
			t.Fatalf("put error: %s", err)
		}
	}

	cursor := Pool.TestData.NewFetchCursor().Seek([]byte("tx-0002"))

	elements, err := cursor.Fetch(10)
	if nil != err {
		t.Fatalf("fetch error: %s", err)
	}
	if 2 != len(elements) {
		t.Fatalf("wrong element count, expected: %d  actual: %d", 2, len(elements))
	}
	if "tx-0002" != string(elements[0].Key) {
		t.Fatalf("wrong first key: %q", elements[0].Key)
	}
}

func TestFetchCursorInvalidCount(t *testing.T) {
	setup(t)
	defer teardown(t)

	cursor := Pool.TestData.NewFetchCursor()
	for _, count := range []int{0, -1} {
		if _, err := cursor.Fetch(count); fault.InvalidCount != err {
			t.Fatalf("count: %d  wrong error: %v", count, err)
		}
	}
}

// access after finalise must fail, not panic
func TestNotInitialised(t *testing.T) {
	setup(t)
	teardown(t)

	if err := Pool.TestData.Put([]byte("k"), []byte("v")); nil == err {
		t.Fatal("unexpected success: put on closed database")
	}
	if _, err := Pool.TestData.Get([]byte("k")); nil == err {
		t.Fatal("unexpected success: get on closed database")
	}
}
