// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/upisim/upisimd/background"
	"github.com/upisim/upisimd/cache"
	"github.com/upisim/upisimd/gateway"
	"github.com/upisim/upisimd/httpapi"
	"github.com/upisim/upisimd/mode"
	"github.com/upisim/upisimd/queue"
	"github.com/upisim/upisimd/rail"
	"github.com/upisim/upisimd/storage"
	"github.com/upisim/upisimd/worker"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		fmt.Printf("%s: version: %s\n", program, version)
		return
	}

	if len(options["help"]) > 0 || len(arguments) > 0 {
		fmt.Printf("usage: %s [--help] [--verbose] [--quiet] --config-file=FILE\n", program)
		return
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: only one config-file option is required, %d were detected", program, len(options["config-file"]))
	}

	// read options and parse the configuration file
	configurationFile := options["config-file"][0]
	theConfiguration, err := getConfiguration(configurationFile)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	// start logging
	if err = logger.Initialise(theConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version)
	log.Debugf("theConfiguration: %v", theConfiguration)

	// ------------------
	// start of real main
	// ------------------

	// optional PID file
	// use if not running under a supervisor program like daemon(8)
	if "" != theConfiguration.PidFile {
		lockFile, err := os.OpenFile(theConfiguration.PidFile, os.O_WRONLY|os.O_EXCL|os.O_CREATE, os.ModeExclusive|0600)
		if err != nil {
			if os.IsExist(err) {
				exitwithstatus.Message("%s: another instance is already running", program)
			}
			exitwithstatus.Message("%s: PID file: %q creation failed, error: %s", program, theConfiguration.PidFile, err)
		}
		fmt.Fprintf(lockFile, "%d\n", os.Getpid())
		lockFile.Close()
		defer os.Remove(theConfiguration.PidFile)
	}

	// set the initial system mode - before any background tasks are started
	err = mode.Initialise()
	if nil != err {
		log.Criticalf("mode initialise error: %s", err)
		exitwithstatus.Message("mode initialise error: %s", err)
	}
	defer mode.Finalise()

	// general info
	log.Infof("database: %q", theConfiguration.Database)
	log.Debugf("%s = %#v", "ClientHTTP", theConfiguration.ClientHTTP)
	log.Debugf("%s = %#v", "Payment", theConfiguration.Payment)

	// start the data storage
	log.Info("initialise storage")
	err = storage.Initialise(theConfiguration.Database.Name)
	if nil != err {
		log.Criticalf("storage initialise error: %s", err)
		exitwithstatus.Message("storage initialise error: %s", err)
	}
	defer storage.Finalise()

	// start the status cache
	log.Info("initialise cache")
	err = cache.Initialise()
	if nil != err {
		log.Criticalf("cache initialise error: %s", err)
		exitwithstatus.Message("cache initialise error: %s", err)
	}
	defer cache.Finalise()

	// the pending work queue
	queueSize := theConfiguration.Payment.QueueSize
	if queueSize <= 0 {
		queueSize = queue.DefaultSize
	}
	pending := queue.New(queueSize)

	// the simulated payment rail
	// zero is a valid probability: every authorisation fails
	simulator, err := rail.NewSimulator(theConfiguration.Payment.SuccessProbability)
	if nil != err {
		log.Criticalf("rail initialise error: %s", err)
		exitwithstatus.Message("rail initialise error: %s", err)
	}

	// the submission and status resolution service
	log.Info("initialise gateway")
	err = gateway.Initialise(storage.Pool.Transactions, cache.Pool.TransactionStatus, pending,
		func() gateway.Cursor { return storage.Pool.Transactions.NewFetchCursor() })
	if nil != err {
		log.Criticalf("gateway initialise error: %s", err)
		exitwithstatus.Message("gateway initialise error: %s", err)
	}
	defer gateway.Finalise()

	// the retry engine
	log.Info("initialise worker")
	w, err := worker.New("worker", storage.Pool.Transactions, cache.Pool.TransactionStatus, pending, simulator, &theConfiguration.Payment)
	if nil != err {
		log.Criticalf("worker initialise error: %s", err)
		exitwithstatus.Message("worker initialise error: %s", err)
	}

	// watch for configuration changes to apply a new success
	// probability without a restart
	reloader, err := newReloader(configurationFile, simulator)
	if nil != err {
		log.Criticalf("reloader initialise error: %s", err)
		exitwithstatus.Message("reloader initialise error: %s", err)
	}

	// start background processes
	log.Info("start background…")
	processes := background.Processes{w, reloader}
	bg := background.Start(processes, nil)
	defer bg.StopAndWait()

	// start the HTTP API
	log.Info("initialise httpapi")
	err = httpapi.Initialise(&theConfiguration.ClientHTTP, version)
	if nil != err {
		log.Criticalf("httpapi initialise error: %s", err)
		exitwithstatus.Message("httpapi initialise error: %s", err)
	}
	defer httpapi.Finalise()

	// all services are up
	mode.Set(mode.Normal)

	// wait for CTRL-C before shutting down to allow manual testing
	if 0 == len(options["quiet"]) {
		fmt.Printf("\n\nWaiting for CTRL-C (SIGINT) or 'kill <pid>' (SIGTERM)…")
	}

	// turn Signals into channel messages
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	log.Infof("received signal: %v", sig)
	if 0 == len(options["quiet"]) {
		fmt.Printf("\nreceived signal: %v\n", sig)
		fmt.Printf("\nshutting down…\n")
	}

	log.Info("shutting down…")
	mode.Set(mode.Stopped)
}
