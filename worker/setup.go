// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package worker - drive pending transactions to a terminal state
//
// the worker consumes transaction identifiers from the queue, waits
// out an exponential backoff, presents the transaction to the payment
// rail and reconciles the store and cache with the outcome; transient
// failures are re-enqueued until the retry budget is exhausted
package worker

import (
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/upisim/upisimd/counter"
	"github.com/upisim/upisimd/fault"
	"github.com/upisim/upisimd/rail"
)

// Store - the durable transaction pool required by the worker
type Store interface {
	Get(key []byte) ([]byte, error)
	Put(key []byte, value []byte) error
}

// Cache - the fast status mirror required by the worker
type Cache interface {
	Get(key string) (interface{}, bool)
	Put(key string, value interface{})
}

// Queue - the pending-transaction hand-off required by the worker
type Queue interface {
	Send(txId string) error
	ReceiveTimeout(timeout time.Duration) (string, bool)
}

// Configuration - structure for configuration file
type Configuration struct {
	SuccessProbability float64 `gluamapper:"success_probability" json:"success_probability"`
	BaseBackoff        string  `gluamapper:"base_backoff" json:"base_backoff"`
	MaximumRetries     int     `gluamapper:"maximum_retries" json:"maximum_retries"`
	QueueSize          int     `gluamapper:"queue_size" json:"queue_size"`
	PollTimeout        string  `gluamapper:"poll_timeout" json:"poll_timeout"`
}

// defaults matching the simulation baseline
const (
	DefaultSuccessProbability = 0.8
	DefaultBaseBackoff        = time.Second
	DefaultMaximumRetries     = 5
	DefaultPollTimeout        = 5 * time.Second

	// pause after a processing error before accepting further work
	errorPause = time.Second
)

// attempt statistics
var (
	processedCounter counter.Counter
	successCounter   counter.Counter
	failureCounter   counter.Counter
	requeueCounter   counter.Counter
)

// Worker - a single driving loop instance
//
// satisfies background.Process; all collaborators are passed by
// composition so tests can substitute fakes and a deterministic delay
type Worker struct {
	log  *logger.L
	name string

	store Store
	cache Cache
	queue Queue
	rail  rail.Caller

	baseBackoff    time.Duration
	maximumRetries int
	pollTimeout    time.Duration

	// replaced by tests to observe backoff without sleeping
	delay func(time.Duration)
}

// New - create a worker from its collaborators and retry policy
func New(name string, store Store, cache Cache, queue Queue, caller rail.Caller, configuration *Configuration) (*Worker, error) {

	baseBackoff := DefaultBaseBackoff
	if "" != configuration.BaseBackoff {
		d, err := time.ParseDuration(configuration.BaseBackoff)
		if nil != err || d <= 0 {
			return nil, fault.InvalidBackoffDuration
		}
		baseBackoff = d
	}

	pollTimeout := DefaultPollTimeout
	if "" != configuration.PollTimeout {
		d, err := time.ParseDuration(configuration.PollTimeout)
		if nil != err || d <= 0 {
			return nil, fault.InvalidBackoffDuration
		}
		pollTimeout = d
	}

	maximumRetries := configuration.MaximumRetries
	if maximumRetries <= 0 {
		maximumRetries = DefaultMaximumRetries
	}

	w := &Worker{
		log:            logger.New(name),
		name:           name,
		store:          store,
		cache:          cache,
		queue:          queue,
		rail:           caller,
		baseBackoff:    baseBackoff,
		maximumRetries: maximumRetries,
		pollTimeout:    pollTimeout,
		delay:          func(d time.Duration) { time.Sleep(d) },
	}
	return w, nil
}

// Run - the driving loop
//
// never terminates except on shutdown; a failed processing attempt is
// re-enqueued and the loop pauses briefly, trading possible duplicate
// processing for guaranteed forward progress
func (w *Worker) Run(args interface{}, shutdown <-chan struct{}) {

	log := w.log
	log.Info("starting…")

loop:
	for {
		select {
		case <-shutdown:
			break loop
		default:
		}

		txId, ok := w.queue.ReceiveTimeout(w.pollTimeout)
		if !ok {
			// idle: the bounded wait doubles as liveness pacing
			continue loop
		}

		if err := w.process(txId); nil != err {
			log.Errorf("process failed: tx: %s  error: %s", txId, err)
			if err := w.queue.Send(txId); nil != err {
				log.Criticalf("requeue failed: tx: %s  error: %s", txId, err)
			}
			w.delay(errorPause)
		}
	}

	log.Info("finished")
}

// ReadCounters - attempts, successes, failures and requeues since start
func ReadCounters() (uint64, uint64, uint64, uint64) {
	return processedCounter.Uint64(), successCounter.Uint64(), failureCounter.Uint64(), requeueCounter.Uint64()
}
