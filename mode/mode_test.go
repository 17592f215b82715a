// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mode_test

import (
	"os"
	"testing"

	"github.com/upisim/upisimd/fixtures"
	"github.com/upisim/upisimd/mode"
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	rc := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

func TestMode(t *testing.T) {

	err := mode.Initialise()
	if nil != err {
		t.Fatalf("initialise error: %s", err)
	}
	defer mode.Finalise()

	if !mode.Is(mode.Starting) {
		t.Fatalf("initial mode expected: %s  actual: %s", mode.Starting, mode.String())
	}

	mode.Set(mode.Normal)
	if mode.IsNot(mode.Normal) {
		t.Fatalf("mode expected: %s  actual: %s", mode.Normal, mode.String())
	}

	// a second initialise must be refused
	err = mode.Initialise()
	if nil == err {
		t.Fatal("unexpected success: initialised twice")
	}
}
