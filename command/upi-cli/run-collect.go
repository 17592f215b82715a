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

func runCollect(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	to := c.String("to")
	if "" == to {
		return fmt.Errorf("missing payee address")
	}

	amount := c.Float64("amount")
	if amount <= 0 {
		return fmt.Errorf("missing or invalid amount")
	}

	request := struct {
		ToUpi  string  `json:"to_upi"`
		Amount float64 `json:"amount"`
	}{
		ToUpi:  to,
		Amount: amount,
	}

	reply := struct {
		TxId   string `json:"tx_id"`
		Status string `json:"status"`
	}{}

	err := call(m.connect, http.MethodPost, "/api/collect", request, &reply)
	if nil != err {
		return err
	}

	if m.verbose {
		return printJson(m.w, reply)
	}

	fmt.Fprintf(m.w, "%s\n", reply.TxId)
	return nil
}
