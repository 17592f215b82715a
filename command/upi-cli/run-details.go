// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"net/http"

	"github.com/urfave/cli"
)

func runDetails(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	// keep the full reply structure opaque so new fields
	// on the server side are displayed without a client update
	var reply map[string]interface{}

	err := call(m.connect, http.MethodGet, "/api/details", nil, &reply)
	if nil != err {
		return err
	}

	return printJson(m.w, reply)
}
