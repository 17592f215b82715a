// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package configuration - parse Lua scripted configuration files
//
// the configuration file is actually a Lua script which must return
// a single table; the table is mapped onto a Go structure using the
// "gluamapper" tags
package configuration
