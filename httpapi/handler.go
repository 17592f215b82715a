// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/upisim/upisimd/counter"
	"github.com/upisim/upisimd/fault"
	"github.com/upisim/upisimd/gateway"
	"github.com/upisim/upisimd/mode"
	"github.com/upisim/upisimd/ratelimit"
	"github.com/upisim/upisimd/upi"
	"github.com/upisim/upisimd/worker"
)

// rate limits for the submission path
const (
	rateLimitCollect = 200 // requests per second
	rateBurstCollect = 100
)

// currently connected clients
var connectionCount counter.Counter

// the argument passed to the handlers
type httpHandler struct {
	log     *logger.L
	start   time.Time
	version string
	allow   map[string]map[string]struct{}
	limiter *rate.Limiter
}

func newHandler(log *logger.L, version string, allow map[string][]string) *httpHandler {

	// convert the allow lists to sets for fast lookup
	allowSets := make(map[string]map[string]struct{})
	for endpoint, addresses := range allow {
		set := make(map[string]struct{})
		for _, address := range addresses {
			set[address] = struct{}{}
		}
		allowSets[endpoint] = set
	}

	return &httpHandler{
		log:     log,
		start:   time.Now(),
		version: version,
		allow:   allowSets,
		limiter: rate.NewLimiter(rate.Limit(rateLimitCollect), rateBurstCollect),
	}
}

// this matches anything not matched and returns error
func (s *httpHandler) root(w http.ResponseWriter, r *http.Request) {
	sendNotFound(w)
}

// POST to obtain a fresh syntactically valid payment identifier
//
// request body (optional):
//   {"prefix": "merchant"}
func (s *httpHandler) generate(w http.ResponseWriter, r *http.Request) {
	if http.MethodPost != r.Method {
		sendMethodNotAllowed(w)
		return
	}

	connectionCount.Increment()
	defer connectionCount.Decrement()

	type request struct {
		Prefix string `json:"prefix"`
	}
	arguments := request{}
	_ = json.NewDecoder(r.Body).Decode(&arguments) // empty body is fine

	type reply struct {
		Upi string `json:"upi"`
	}
	sendReply(w, reply{
		Upi: upi.Generate(arguments.Prefix),
	})
}

// POST to submit a collect request
//
// request body:
//   {"to_upi": "merchant01@icici", "amount": 500, "merchant": "optional"}
func (s *httpHandler) collect(w http.ResponseWriter, r *http.Request) {
	if http.MethodPost != r.Method {
		sendMethodNotAllowed(w)
		return
	}

	if mode.IsNot(mode.Normal) {
		sendError(w, fault.NotAvailableDuringStart.Error(), http.StatusServiceUnavailable)
		return
	}

	if err := ratelimit.Limit(s.limiter); nil != err {
		sendError(w, err.Error(), http.StatusTooManyRequests)
		return
	}

	connectionCount.Increment()
	defer connectionCount.Decrement()

	type request struct {
		ToUpi    string  `json:"to_upi"`
		Amount   float64 `json:"amount"`
		Merchant string  `json:"merchant"`
	}
	arguments := request{}
	if err := json.NewDecoder(r.Body).Decode(&arguments); nil != err {
		sendBadRequest(w, "invalid request body")
		return
	}

	record, err := gateway.Submit(arguments.ToUpi, arguments.Amount)
	if nil != err {
		s.log.Warnf("collect rejected: %s", err)
		if fault.IsErrInvalid(err) {
			sendBadRequest(w, err.Error())
		} else {
			sendInternalServerError(w)
		}
		return
	}

	type reply struct {
		TxId   string `json:"tx_id"`
		Status string `json:"status"`
	}
	sendReply(w, reply{
		TxId:   record.TxId,
		Status: record.Status.String(),
	})
}

// GET the current state of a transaction
//
// the path carries the identifier: /api/status/<tx_id>
func (s *httpHandler) status(w http.ResponseWriter, r *http.Request) {
	if http.MethodGet != r.Method {
		sendMethodNotAllowed(w)
		return
	}

	if mode.IsNot(mode.Normal) {
		sendError(w, fault.NotAvailableDuringStart.Error(), http.StatusServiceUnavailable)
		return
	}

	connectionCount.Increment()
	defer connectionCount.Decrement()

	txId := strings.TrimPrefix(r.URL.Path, "/api/status/")
	if "" == txId || strings.Contains(txId, "/") {
		sendNotFound(w)
		return
	}

	record, err := gateway.GetStatus(txId)
	if nil != err {
		if fault.IsErrNotFound(err) {
			sendNotFound(w)
		} else {
			s.log.Errorf("status query failed: tx: %s  error: %s", txId, err)
			sendInternalServerError(w)
		}
		return
	}

	sendReply(w, transactionView{
		TxId:      record.TxId,
		ToUpi:     record.PayTo,
		Amount:    record.Amount,
		Status:    record.Status.String(),
		Attempts:  record.AttemptCount,
		LastError: record.LastError,
	})
}

// the projection of a record returned by status and listing replies
type transactionView struct {
	TxId      string  `json:"tx_id"`
	ToUpi     string  `json:"to_upi"`
	Amount    float64 `json:"amount"`
	Status    string  `json:"status"`
	Attempts  int     `json:"attempts"`
	LastError string  `json:"last_error,omitempty"`
}

// true if the remote address is on the allow list for an endpoint
func (s *httpHandler) isAllowed(endpoint string, remoteAddr string) bool {
	last := strings.LastIndex(remoteAddr, ":")
	if last < 0 {
		return false
	}
	addr := strings.Trim(remoteAddr[:last], "[]")
	_, ok := s.allow[endpoint][addr]
	return ok
}

// default and limit for the listing page size
const defaultListCount = 20

// GET a page of stored transactions
// (restricted to the "details" allow list)
//
// optional query parameter: count=N
func (s *httpHandler) transactions(w http.ResponseWriter, r *http.Request) {
	if http.MethodGet != r.Method {
		sendMethodNotAllowed(w)
		return
	}

	if !s.isAllowed("details", r.RemoteAddr) {
		s.log.Warnf("deny access: %q", r.RemoteAddr)
		sendForbidden(w)
		return
	}

	connectionCount.Increment()
	defer connectionCount.Decrement()

	count := defaultListCount
	if countArgument := r.URL.Query().Get("count"); "" != countArgument {
		n, err := strconv.Atoi(countArgument)
		if nil != err {
			sendBadRequest(w, fault.InvalidCount.Error())
			return
		}
		count = n
	}

	records, err := gateway.ListTransactions(count)
	if nil != err {
		if fault.IsErrInvalid(err) {
			sendBadRequest(w, err.Error())
		} else {
			s.log.Errorf("listing failed: error: %s", err)
			sendInternalServerError(w)
		}
		return
	}

	views := make([]transactionView, 0, len(records))
	for _, record := range records {
		views = append(views, transactionView{
			TxId:      record.TxId,
			ToUpi:     record.PayTo,
			Amount:    record.Amount,
			Status:    record.Status.String(),
			Attempts:  record.AttemptCount,
			LastError: record.LastError,
		})
	}

	type reply struct {
		Transactions []transactionView `json:"transactions"`
	}
	sendReply(w, reply{
		Transactions: views,
	})
}

// Counters - the transaction counters on the details reply
type Counters struct {
	Submitted uint64 `json:"submitted"`
	Processed uint64 `json:"processed"`
	Succeeded uint64 `json:"succeeded"`
	Failed    uint64 `json:"failed"`
	Requeued  uint64 `json:"requeued"`
}

// GET operational details
// (restricted to the "details" allow list)
func (s *httpHandler) details(w http.ResponseWriter, r *http.Request) {
	if http.MethodGet != r.Method {
		sendMethodNotAllowed(w)
		return
	}

	last := strings.LastIndex(r.RemoteAddr, ":")
	if last >= 0 {
		addr := strings.Trim(r.RemoteAddr[:last], "[]")
		if _, ok := s.allow["details"][addr]; ok {
			goto allow_access
		}
	}
	s.log.Warnf("deny access: %q", r.RemoteAddr)
	sendForbidden(w)
	return // *IMPORTANT*

allow_access:

	connectionCount.Increment()
	defer connectionCount.Decrement()

	type reply struct {
		Mode                string   `json:"mode"`
		Connections         uint64   `json:"connections"`
		PendingTransactions int      `json:"pendingTransactions"`
		TransactionCounters Counters `json:"transactionCounters"`
		Version             string   `json:"version"`
		Uptime              string   `json:"uptime"`
	}

	info := reply{
		Mode:                mode.String(),
		Connections:         connectionCount.Uint64(),
		PendingTransactions: gateway.PendingCount(),
		Version:             s.version,
		Uptime:              time.Since(s.start).String(),
	}
	info.TransactionCounters.Submitted = gateway.ReadCounters()
	info.TransactionCounters.Processed,
		info.TransactionCounters.Succeeded,
		info.TransactionCounters.Failed,
		info.TransactionCounters.Requeued = worker.ReadCounters()

	sendReply(w, info)
}
