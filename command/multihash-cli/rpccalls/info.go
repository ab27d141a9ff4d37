// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/multihashd/rpc/hash"
)

// GetInfo - request status from multihashd
func (client *Client) GetInfo() (*hash.InfoReply, error) {
	var reply hash.InfoReply
	if err := client.client.Call("Hash.Info", hash.InfoArguments{}, &reply); err != nil {
		return nil, err
	}

	return &reply, nil
}
