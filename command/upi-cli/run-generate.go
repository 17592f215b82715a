// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"net/http"

	"github.com/urfave/cli"
)

func runGenerate(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	request := struct {
		Prefix string `json:"prefix,omitempty"`
	}{
		Prefix: c.String("prefix"),
	}

	reply := struct {
		Upi string `json:"upi"`
	}{}

	err := call(m.connect, http.MethodPost, "/api/generate_upi", request, &reply)
	if nil != err {
		return err
	}

	if m.verbose {
		return printJson(m.w, reply)
	}

	fmt.Fprintf(m.w, "%s\n", reply.Upi)
	return nil
}
