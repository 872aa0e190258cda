// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import "github.com/vechain/stakepool/metrics"

var (
	metricOpCount     = metrics.LazyLoadCounterVec("pool_op_count", []string{"op", "outcome"})
	metricTotalStaked = metrics.LazyLoadGauge("pool_total_staked_gauge")
	metricRewardRate  = metrics.LazyLoadGauge("pool_reward_rate_gauge")
)

func countOp(op string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "reverted"
	}
	metricOpCount().AddWithLabel(1, map[string]string{"op": op, "outcome": outcome})
}
