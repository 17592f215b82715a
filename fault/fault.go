// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type ProcessError GenericError

// common errors - keep in alphabetic order
var (
	AlreadyInitialised       = ProcessError("already initialised")
	InvalidAmount            = InvalidError("invalid amount")
	InvalidBackoffDuration   = InvalidError("invalid backoff duration")
	InvalidCount             = InvalidError("invalid count")
	InvalidCursor            = InvalidError("invalid cursor")
	InvalidDatabaseVersion   = InvalidError("invalid database version")
	InvalidPaymentAddress    = InvalidError("invalid payment address")
	InvalidProbability       = InvalidError("invalid probability")
	InvalidStatus            = InvalidError("invalid status")
	InvalidStructPointer     = InvalidError("invalid struct pointer")
	MissingParameters        = InvalidError("missing parameters")
	NetworkError             = ProcessError("network error")
	NotAvailableDuringStart  = ProcessError("not available during start")
	NotInitialised           = ProcessError("not initialised")
	PaymentDeclined          = ProcessError("payment declined")
	QueueOverflow            = ProcessError("queue overflow")
	RateLimiting             = ProcessError("rate limiting")
	TransactionAlreadyExists = ExistsError("transaction already exists")
	TransactionNotFound      = NotFoundError("transaction not found")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }

// IsErrExists - determine if an error is a duplicate item error
func IsErrExists(e error) bool { _, ok := e.(ExistsError); return ok }

// IsErrInvalid - determine if an error is a validation error
func IsErrInvalid(e error) bool { _, ok := e.(InvalidError); return ok }

// IsErrNotFound - determine if an error is a missing item error
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }

// IsErrProcess - determine if an error is a processing error
func IsErrProcess(e error) bool { _, ok := e.(ProcessError); return ok }
