// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package httpapi - the JSON over HTTP entry points
//
// this is deliberately a thin surface: all submission and status logic
// lives in the gateway package, all processing in the worker
package httpapi

import (
	"net/http"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/upisim/upisimd/fault"
)

// Configuration - structure for configuration file
type Configuration struct {
	MaximumConnections uint64              `gluamapper:"maximum_connections" json:"maximum_connections"`
	Listen             []string            `gluamapper:"listen" json:"listen"`
	Allow              map[string][]string `gluamapper:"allow" json:"allow"`
}

// globals
type globalDataType struct {
	sync.RWMutex

	log     *logger.L
	servers []*http.Server

	// set once during initialise
	initialised bool
}

var globalData globalDataType

// Initialise - start the HTTP servers
func Initialise(configuration *Configuration, version string) error {
	globalData.Lock()
	defer globalData.Unlock()

	// no need to start if already started
	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	log := logger.New("httpapi")
	globalData.log = log
	log.Info("starting…")

	if 0 == len(configuration.Listen) {
		log.Error("missing listen addresses")
		return fault.MissingParameters
	}

	handler := newHandler(log, version, configuration.Allow)
	mux := buildMux(handler)

	for _, listen := range configuration.Listen {
		log.Infof("listen: %s", listen)

		s := &http.Server{
			Addr:           listen,
			Handler:        mux,
			ReadTimeout:    30 * time.Second,
			WriteTimeout:   30 * time.Second,
			MaxHeaderBytes: 1 << 20,
		}
		globalData.servers = append(globalData.servers, s)

		go func(s *http.Server) {
			err := s.ListenAndServe()
			if http.ErrServerClosed != err {
				log.Errorf("server: %s  error: %s", s.Addr, err)
			}
		}(s)
	}

	// all data initialised
	globalData.initialised = true

	return nil
}

// Finalise - stop the HTTP servers
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	for _, s := range globalData.servers {
		_ = s.Close()
	}
	globalData.servers = nil

	globalData.initialised = false

	return nil
}

// buildMux - attach the handlers to their routes
func buildMux(handler *httpHandler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/generate_upi", handler.generate)
	mux.HandleFunc("/api/collect", handler.collect)
	mux.HandleFunc("/api/status/", handler.status)
	mux.HandleFunc("/api/transactions", handler.transactions)
	mux.HandleFunc("/api/details", handler.details)
	mux.HandleFunc("/", handler.root)
	return mux
}
