// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package datagen provides random fixtures for tests.
package datagen

import (
	"crypto/rand"
	mathrand "math/rand"

	"github.com/vechain/stakepool/stakepool"
)

func RandBytes32() (b stakepool.Bytes32) {
	rand.Read(b[:])
	return
}

func RandAddress() (a stakepool.Address) {
	rand.Read(a[:])
	return
}

func RandInt() int {
	return mathrand.Int() //#nosec G404
}

func RandIntN(n int) int {
	return mathrand.Intn(n) //#nosec G404
}
