// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

// StorageEncoder defines the interface of custom storage encoding.
type StorageEncoder interface {
	// Encode encodes the value into bytes.
	// Returning nil bytes deletes the storage value.
	Encode() ([]byte, error)
}

// StorageDecoder defines the interface of custom storage decoding.
type StorageDecoder interface {
	// Decode decodes the value from bytes.
	// Nil bytes are passed when the storage value is absent.
	Decode([]byte) error
}
