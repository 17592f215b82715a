// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/bitmark-inc/logger"

	"github.com/upisim/upisimd/rail"
)

// reloader - watches the configuration file and applies the success
// probability to the running simulator
//
// only the probability is live: all other settings still require a
// restart
type reloader struct {
	log       *logger.L
	filePath  string
	simulator *rail.Simulator
	watcher   *fsnotify.Watcher
}

func newReloader(configurationFileName string, simulator *rail.Simulator) (*reloader, error) {

	filePath, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if nil != err {
		return nil, err
	}

	err = watcher.Add(filePath)
	if nil != err {
		watcher.Close()
		return nil, err
	}

	return &reloader{
		log:       logger.New("reload"),
		filePath:  filePath,
		simulator: simulator,
		watcher:   watcher,
	}, nil
}

// Run - watch loop
func (r *reloader) Run(args interface{}, shutdown <-chan struct{}) {

	log := r.log
	log.Info("starting…")

	defer r.watcher.Close()

loop:
	for {
		select {
		case <-shutdown:
			break loop

		case event := <-r.watcher.Events:
			log.Debugf("file event: %v", event)

			if filepath.Base(event.Name) != filepath.Base(r.filePath) {
				continue loop
			}
			if 0 == event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Chmod) {
				continue loop
			}
			r.reload()

		case err := <-r.watcher.Errors:
			log.Warnf("watch error: %s", err)
		}
	}

	log.Info("stopped")
}

// re-parse the configuration and apply the new probability
func (r *reloader) reload() {

	theConfiguration, err := getConfiguration(r.filePath)
	if nil != err {
		r.log.Errorf("reload failed: %s", err)
		return
	}

	probability := theConfiguration.Payment.SuccessProbability
	if probability == r.simulator.SuccessProbability() {
		return
	}

	err = r.simulator.SetSuccessProbability(probability)
	if nil != err {
		r.log.Errorf("reload rejected probability: %f  error: %s", probability, err)
		return
	}
	r.log.Infof("success probability now: %f", probability)
}
