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

func runStatus(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	txId := c.String("txid")
	if "" == txId {
		return fmt.Errorf("missing transaction identifier")
	}

	reply := struct {
		TxId      string  `json:"tx_id"`
		ToUpi     string  `json:"to_upi"`
		Amount    float64 `json:"amount"`
		Status    string  `json:"status"`
		Attempts  int     `json:"attempts"`
		LastError string  `json:"last_error,omitempty"`
	}{}

	err := call(m.connect, http.MethodGet, "/api/status/"+txId, nil, &reply)
	if nil != err {
		return err
	}

	if m.verbose {
		return printJson(m.w, reply)
	}

	fmt.Fprintf(m.w, "%s\n", reply.Status)
	return nil
}
