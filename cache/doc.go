// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package cache maintains recently computed digests in memory
//
//  ***** Data Structure *****
//
//  Key                                              Value             ExpiresAfter
//  selector ":" Keccak-256(input) (hex)             digest.Digest     configured
//
//  ***** Purpose *****
//
//  every primitive is a pure function, so a digest computed once for
//  a selector and input can be returned again without repeating the
//  memory hard computation
package cache
