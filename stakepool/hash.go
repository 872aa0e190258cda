// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stakepool

import (
	"io"

	"github.com/ethereum/go-ethereum/crypto/blake2b"
)

// Blake2b computes blake2b-256 checksum for given data.
// It's the hash of choice for deriving storage slot positions.
func Blake2b(data ...[]byte) Bytes32 {
	if len(data) == 1 {
		// the quick version
		return blake2b.Sum256(data[0])
	}
	return Blake2bFn(func(w io.Writer) {
		for _, b := range data {
			w.Write(b)
		}
	})
}

// Blake2bFn computes blake2b-256 checksum for the provided writer.
func Blake2bFn(fn func(w io.Writer)) (h Bytes32) {
	hash, _ := blake2b.New256(nil)
	fn(hash)
	hash.Sum(h[:0])
	return
}
