// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cache

import (
	"fmt"
	"reflect"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// expired entries are removed in bulk on this period
const cleanupInterval = 5 * time.Minute

type poolData struct {
	cache        *gocache.Cache
	expiresAfter time.Duration
}

type pools struct {
	TransactionStatus *poolData `exp:"72h"`
	TestA             *poolData `exp:"3s"`
	TestB             *poolData
}

// Pool is the interface to perform CRUD operations on objects stored in memory
var Pool pools

// Initialise must be called before any operations on the pools
func Initialise() error {
	poolType := reflect.TypeOf(Pool)
	poolValue := reflect.ValueOf(&Pool).Elem()

	for i := 0; i < poolType.NumField(); i += 1 {
		exp := gocache.NoExpiration

		fieldInfo := poolType.Field(i)
		expTag := fieldInfo.Tag.Get("exp")
		if len(expTag) > 0 {
			d, err := time.ParseDuration(expTag)
			if nil != err {
				return fmt.Errorf("invalid time duration: %s", expTag)
			}
			exp = d
		}

		p := &poolData{
			cache:        gocache.New(exp, cleanupInterval),
			expiresAfter: exp,
		}
		newPool := reflect.ValueOf(p)
		poolValue.Field(i).Set(newPool)
	}

	return nil
}

// Finalise drops all cached entries
func Finalise() {
	poolValue := reflect.ValueOf(&Pool).Elem()

	for i := 0; i < poolValue.NumField(); i += 1 {
		p, ok := poolValue.Field(i).Interface().(*poolData)
		if ok && nil != p {
			p.cache.Flush()
		}
	}
}

// Put - store or replace an object
func (p *poolData) Put(key string, value interface{}) {
	p.cache.Set(key, value, p.expiresAfter)
}

// Get - fetch an object if present
func (p *poolData) Get(key string) (interface{}, bool) {
	return p.cache.Get(key)
}

// Delete - drop an object
func (p *poolData) Delete(key string) {
	p.cache.Delete(key)
}

// Items - a copy of all live entries
func (p *poolData) Items() map[string]interface{} {
	items := p.cache.Items()
	m := make(map[string]interface{}, len(items))
	for k, v := range items {
		m[k] = v.Object
	}
	return m
}

// Size - the number of live entries
func (p *poolData) Size() int {
	return p.cache.ItemCount()
}
