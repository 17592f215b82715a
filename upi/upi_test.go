// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package upi_test

import (
	"testing"

	"github.com/upisim/upisimd/fault"
	"github.com/upisim/upisimd/upi"
)

func TestValidate(t *testing.T) {

	validItems := []string{
		"merchant01@icici",
		"user123@sbi",
		"a.b-c_d@hdfcbank",
		"abc@in",
	}

	for i, item := range validItems {
		if err := upi.Validate(item); nil != err {
			t.Errorf("%d: valid address rejected: %q  error: %s", i, item, err)
		}
	}

	invalidItems := []string{
		"",
		"bad address",
		"a@",
		"@b",
		"ab@icici",     // local part too short
		"abc@i",        // domain too short
		"abc@@icici",   // double separator
		"abc icici",    // no separator
		"abc@ici ci",   // embedded space
		"abc@icici\n",  // trailing newline
		"παρά@example", // non ASCII
	}

	for i, item := range invalidItems {
		err := upi.Validate(item)
		if nil == err {
			t.Errorf("%d: invalid address accepted: %q", i, item)
		} else if fault.InvalidPaymentAddress != err {
			t.Errorf("%d: wrong error: %s  expected: %s", i, err, fault.InvalidPaymentAddress)
		}
	}
}

// every generated address must satisfy the validation rule
func TestGenerate(t *testing.T) {

	for i := 0; i < 100; i += 1 {
		address := upi.Generate("")
		if err := upi.Validate(address); nil != err {
			t.Fatalf("%d: generated address invalid: %q  error: %s", i, address, err)
		}
	}

	address := upi.Generate("merchant")
	if err := upi.Validate(address); nil != err {
		t.Fatalf("prefixed address invalid: %q  error: %s", address, err)
	}
}
