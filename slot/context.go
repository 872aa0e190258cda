// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package slot

import (
	"github.com/vechain/stakepool/state"
	"github.com/vechain/stakepool/stakepool"
)

// Context binds a storage component address to the world state.
// Typed slots of one component are all created from the same context.
type Context struct {
	address stakepool.Address
	state   *state.State
}

func NewContext(address stakepool.Address, state *state.State) *Context {
	return &Context{
		address: address,
		state:   state,
	}
}

// Address returns the component address the context is bound to.
func (c *Context) Address() stakepool.Address {
	return c.address
}

// State returns the underlying world state.
func (c *Context) State() *state.State {
	return c.state
}
