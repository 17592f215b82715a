// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"time"
)

// reasonable maximum for the simulated processing pipeline
const requestTimeout = 30 * time.Second

// the JSON body of an error reply
type errorReply struct {
	Code  int    `json:"code"`
	Error string `json:"error"`
}

// perform a request and decode the JSON reply into out
func call(connect string, method string, endpoint string, request interface{}, out interface{}) error {

	buffer := &bytes.Buffer{}
	if nil != request {
		err := json.NewEncoder(buffer).Encode(request)
		if nil != err {
			return err
		}
	}

	url := fmt.Sprintf("http://%s%s", connect, endpoint)

	r, err := http.NewRequest(method, url, buffer)
	if nil != err {
		return err
	}
	r.Header.Set("Content-Type", "application/json")

	client := &http.Client{
		Timeout: requestTimeout,
	}
	response, err := client.Do(r)
	if nil != err {
		return err
	}
	defer response.Body.Close()

	body, err := ioutil.ReadAll(response.Body)
	if nil != err {
		return err
	}

	if http.StatusOK != response.StatusCode {
		e := errorReply{}
		if nil == json.Unmarshal(body, &e) && "" != e.Error {
			return fmt.Errorf("%s", e.Error)
		}
		return fmt.Errorf("unexpected status: %s", response.Status)
	}

	return json.Unmarshal(body, out)
}
