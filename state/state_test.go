// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/stakepool/lvldb"
	"github.com/vechain/stakepool/stakepool"
)

func newTestState(t *testing.T) (*State, *lvldb.LevelDB) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(db), db
}

func TestStorage(t *testing.T) {
	st, _ := newTestState(t)

	addr := stakepool.BytesToAddress([]byte("pool"))
	key := stakepool.BytesToBytes32([]byte("key"))
	value := stakepool.BytesToBytes32([]byte("value"))

	// unset storage reads as zero
	got, err := st.GetStorage(addr, key)
	assert.NoError(t, err)
	assert.Equal(t, stakepool.Bytes32{}, got)

	st.SetStorage(addr, key, value)
	got, err = st.GetStorage(addr, key)
	assert.NoError(t, err)
	assert.Equal(t, value, got)

	// zero value deletes
	st.SetStorage(addr, key, stakepool.Bytes32{})
	raw, err := st.GetRawStorage(addr, key)
	assert.NoError(t, err)
	assert.Empty(t, raw)
}

func TestCheckpointRevert(t *testing.T) {
	st, _ := newTestState(t)

	addr := stakepool.BytesToAddress([]byte("pool"))
	key := stakepool.BytesToBytes32([]byte("key"))

	st.SetStorage(addr, key, stakepool.BytesToBytes32([]byte{1}))

	cp := st.NewCheckpoint()
	st.SetStorage(addr, key, stakepool.BytesToBytes32([]byte{2}))

	got, err := st.GetStorage(addr, key)
	assert.NoError(t, err)
	assert.Equal(t, stakepool.BytesToBytes32([]byte{2}), got)

	st.RevertTo(cp)
	got, err = st.GetStorage(addr, key)
	assert.NoError(t, err)
	assert.Equal(t, stakepool.BytesToBytes32([]byte{1}), got)
}

func TestCommitPersists(t *testing.T) {
	st, db := newTestState(t)

	addr := stakepool.BytesToAddress([]byte("pool"))
	key := stakepool.BytesToBytes32([]byte("key"))
	value := stakepool.BytesToBytes32([]byte("value"))

	st.SetStorage(addr, key, value)
	require.NoError(t, st.Commit())

	// a fresh state over the same store sees the committed value
	st2 := New(db)
	got, err := st2.GetStorage(addr, key)
	assert.NoError(t, err)
	assert.Equal(t, value, got)
}

func TestCommitDelete(t *testing.T) {
	st, db := newTestState(t)

	addr := stakepool.BytesToAddress([]byte("pool"))
	key := stakepool.BytesToBytes32([]byte("key"))

	st.SetStorage(addr, key, stakepool.BytesToBytes32([]byte{1}))
	require.NoError(t, st.Commit())

	st.SetStorage(addr, key, stakepool.Bytes32{})
	require.NoError(t, st.Commit())

	got, err := New(db).GetStorage(addr, key)
	assert.NoError(t, err)
	assert.Equal(t, stakepool.Bytes32{}, got)
}

type testRecord struct {
	A uint64
	B []byte
}

func (r *testRecord) Encode() ([]byte, error) {
	if r.A == 0 && len(r.B) == 0 {
		return nil, nil
	}
	return rlp.EncodeToBytes(r)
}

func (r *testRecord) Decode(data []byte) error {
	if len(data) == 0 {
		*r = testRecord{}
		return nil
	}
	return rlp.DecodeBytes(data, r)
}

func TestStructuredStorage(t *testing.T) {
	st, _ := newTestState(t)

	addr := stakepool.BytesToAddress([]byte("pool"))
	key := stakepool.BytesToBytes32([]byte("rec"))

	require.NoError(t, st.SetStructuredStorage(addr, key, &testRecord{A: 7, B: []byte("x")}))

	var got testRecord
	require.NoError(t, st.GetStructuredStorage(addr, key, &got))
	assert.Equal(t, testRecord{A: 7, B: []byte("x")}, got)

	// absent record decodes to zero value
	var missing testRecord
	require.NoError(t, st.GetStructuredStorage(addr, stakepool.BytesToBytes32([]byte("nope")), &missing))
	assert.Equal(t, testRecord{}, missing)
}
