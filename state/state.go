// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"
	lru "github.com/hashicorp/golang-lru"

	"github.com/vechain/stakepool/kv"
	"github.com/vechain/stakepool/stackedmap"
	"github.com/vechain/stakepool/stakepool"
)

const readCacheSize = 2048

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.cause
}

// storageKey identifies one storage value of a component.
type storageKey struct {
	addr stakepool.Address
	key  stakepool.Bytes32
}

func (k *storageKey) kvKey() []byte {
	return append(append(make([]byte, 0, 52), k.addr.Bytes()...), k.key.Bytes()...)
}

// State manages the pool world state.
//
// All reads and writes go through a stacked map, so that any range of
// mutations can be reverted as a whole. Durable values live in the
// underlying kv store and are only touched by Commit.
type State struct {
	store kv.GetPutter
	cache *lru.Cache // raw value read cache
	sm    *stackedmap.StackedMap
}

// New create a state object backed by the given kv store.
func New(store kv.GetPutter) *State {
	cache, _ := lru.New(readCacheSize)
	state := &State{
		store: store,
		cache: cache,
	}
	state.sm = stackedmap.New(func(key any) (any, bool, error) {
		return state.rawGetter(key)
	})
	// base layer, holds mutations until next commit
	state.sm.Push()
	return state
}

// rawGetter implements stackedmap.MapGetter, loading values from the kv store.
func (s *State) rawGetter(key any) (any, bool, error) {
	k, ok := key.(storageKey)
	if !ok {
		panic(fmt.Errorf("unexpected key type %+v", key))
	}
	kvKey := k.kvKey()
	if cached, ok := s.cache.Get(string(kvKey)); ok {
		return cached.(rlp.RawValue), true, nil
	}
	raw, err := s.store.Get(kvKey)
	if err != nil {
		if s.store.IsNotFound(err) {
			// never stored, treat as empty value
			return rlp.RawValue(nil), true, nil
		}
		return nil, false, &Error{err}
	}
	s.cache.Add(string(kvKey), rlp.RawValue(raw))
	return rlp.RawValue(raw), true, nil
}

// GetRawStorage returns the RLP encoded storage value for the given component and key.
func (s *State) GetRawStorage(addr stakepool.Address, key stakepool.Bytes32) (rlp.RawValue, error) {
	v, _, err := s.sm.Get(storageKey{addr, key})
	if err != nil {
		return nil, err
	}
	return v.(rlp.RawValue), nil
}

// SetRawStorage sets the RLP encoded storage value. Empty raw deletes the value.
func (s *State) SetRawStorage(addr stakepool.Address, key stakepool.Bytes32, raw rlp.RawValue) {
	s.sm.Put(storageKey{addr, key}, raw)
}

// DecodeStorage decodes the raw storage value with the provided decoder.
func (s *State) DecodeStorage(addr stakepool.Address, key stakepool.Bytes32, decode func([]byte) error) error {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return err
	}
	if err := decode(raw); err != nil {
		return &Error{err}
	}
	return nil
}

// EncodeStorage encodes the storage value with the provided encoder and stores it.
// Returning nil bytes from the encoder deletes the value.
func (s *State) EncodeStorage(addr stakepool.Address, key stakepool.Bytes32, encode func() ([]byte, error)) error {
	raw, err := encode()
	if err != nil {
		return &Error{err}
	}
	s.SetRawStorage(addr, key, raw)
	return nil
}

// GetStorage returns the storage value for the given key as Bytes32.
func (s *State) GetStorage(addr stakepool.Address, key stakepool.Bytes32) (stakepool.Bytes32, error) {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return stakepool.Bytes32{}, err
	}
	if len(raw) == 0 {
		return stakepool.Bytes32{}, nil
	}
	_, content, _, err := rlp.Split(raw)
	if err != nil {
		return stakepool.Bytes32{}, &Error{err}
	}
	return stakepool.BytesToBytes32(content), nil
}

// SetStorage sets the storage value for the given key.
// Zero value deletes the storage.
func (s *State) SetStorage(addr stakepool.Address, key stakepool.Bytes32, value stakepool.Bytes32) {
	if value.IsZero() {
		s.SetRawStorage(addr, key, nil)
		return
	}
	v, _ := rlp.EncodeToBytes(bytes.TrimLeft(value[:], "\x00"))
	s.SetRawStorage(addr, key, v)
}

// GetStructuredStorage loads and decodes the storage value into the given decoder.
func (s *State) GetStructuredStorage(addr stakepool.Address, key stakepool.Bytes32, val StorageDecoder) error {
	return s.DecodeStorage(addr, key, val.Decode)
}

// SetStructuredStorage encodes the given encoder and stores it.
func (s *State) SetStructuredStorage(addr stakepool.Address, key stakepool.Bytes32, val StorageEncoder) error {
	return s.EncodeStorage(addr, key, val.Encode)
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo reverts to checkpoint specified by revision.
func (s *State) RevertTo(revision int) {
	s.sm.PopTo(revision)
}

// Commit flushes all mutations into the kv store atomically
// and resets the mutation stack.
func (s *State) Commit() error {
	batch := s.store.NewBatch()

	var jerr error
	s.sm.Journal(func(key, value any) bool {
		k := key.(storageKey)
		raw := value.(rlp.RawValue)
		kvKey := k.kvKey()
		if len(raw) == 0 {
			s.cache.Remove(string(kvKey))
			jerr = batch.Delete(kvKey)
		} else {
			s.cache.Add(string(kvKey), raw)
			jerr = batch.Put(kvKey, raw)
		}
		return jerr == nil
	})
	if jerr != nil {
		return &Error{jerr}
	}
	if err := batch.Write(); err != nil {
		return &Error{err}
	}

	s.sm.PopTo(0)
	s.sm.Push()
	return nil
}
