// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package upi - virtual payment identifiers
//
// an identifier has the syntactic form: localpart@domain
// e.g. "merchant01@icici"
//
// these are simulation identifiers only, there is no registry and no
// cryptographic binding to any real account
package upi

import (
	"fmt"
	"math/rand"
	"regexp"
	"sync"
	"time"

	"github.com/upisim/upisimd/fault"
)

// validation rule for a virtual payment identifier
var addressRegexp = regexp.MustCompile(`^[A-Za-z0-9._-]{3,}@[A-Za-z0-9._-]{2,}$`)

// simulated bank suffixes for generated identifiers
var banks = []string{"icici", "hdfcbank", "axis", "sbi", "paytm"}

var generator struct {
	sync.Mutex
	rand *rand.Rand
}

func init() {
	generator.rand = rand.New(rand.NewSource(time.Now().UnixNano()))
}

// Generate - produce a fresh syntactically valid payment identifier
//
// an optional prefix replaces the default "user" local part stem
func Generate(prefix string) string {
	if "" == prefix {
		prefix = "user"
	}

	generator.Lock()
	n := generator.rand.Intn(1000)
	bank := banks[generator.rand.Intn(len(banks))]
	generator.Unlock()

	return fmt.Sprintf("%s%03d@%s", prefix, n, bank)
}

// Validate - check the syntax of a payment identifier
func Validate(address string) error {
	if !addressRegexp.MatchString(address) {
		return fault.InvalidPaymentAddress
	}
	return nil
}
