// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/stakepool/api"
	"github.com/vechain/stakepool/api/accounts"
	"github.com/vechain/stakepool/genesis"
	"github.com/vechain/stakepool/kv"
	"github.com/vechain/stakepool/log"
	"github.com/vechain/stakepool/metrics"
	"github.com/vechain/stakepool/node"
	"github.com/vechain/stakepool/pool"
	"github.com/vechain/stakepool/stakepool"
	"github.com/vechain/stakepool/state"
	"github.com/vechain/stakepool/token"
)

var (
	version   string
	gitCommit string
	gitTag    string

	logger = log.WithContext("pkg", "main")
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "StakePool",
		Usage:     "Staking reward distribution pool node",
		Copyright: "2026 VeChain Foundation <https://vechain.org/>",
		Flags: []cli.Flag{
			configFlag,
			genesisFlag,
			dataDirFlag,
			memFlag,
			apiAddrFlag,
			apiCorsFlag,
			verbosityFlag,
			jsonLogsFlag,
			enableAPILogsFlag,
			enableMetricsFlag,
			pprofFlag,
		},
		Action: defaultAction,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultAction(ctx *cli.Context) error {
	defer func() { logger.Info("exited") }()

	cfg := resolveConfig(ctx)
	initLogger(cfg)
	if cfg.EnableMetrics {
		metrics.InitializePrometheusMetrics()
	}

	config, rawSpec := parseGenesis(cfg)

	mainDB := openMainDB(cfg)
	defer func() { logger.Info("closing main database..."); mainDB.Close() }()

	st := state.New(mainDB)
	if err := initState(mainDB, st, config, rawSpec); err != nil {
		fatal(err)
	}

	stakingToken := token.New(*config.StakingToken.Address, st)
	rewardsToken := token.New(config.RewardsTokenAddress(), st)

	p := pool.New(st, pool.Config{
		Address:           *config.PoolAddress,
		StakingToken:      stakingToken,
		RewardsToken:      rewardsToken,
		PauseBlocksClaims: config.PauseBlocksClaims,
	})

	n := node.New(p, st, node.Options{Authority: *config.Authority})

	ledgers := []accounts.Ledger{
		{Name: "staking", Address: *config.StakingToken.Address, Token: stakingToken},
	}
	if config.RewardsToken != nil {
		ledgers = append(ledgers, accounts.Ledger{
			Name: "rewards", Address: *config.RewardsToken.Address, Token: token.New(*config.RewardsToken.Address, st),
		})
	}

	handler := api.New(n, ledgers, api.Options{
		AllowedOrigins:  cfg.APICors,
		PprofOn:         cfg.Pprof,
		EnableReqLogger: cfg.EnableAPILogs,
		EnableMetrics:   cfg.EnableMetrics,
	})

	srv, srvURL := startAPIServer(cfg, handler)
	defer func() {
		logger.Info("stopping API server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	printStartupMessage(config, srvURL)

	<-handleExitSignal().Done()
	return nil
}

var genesisIDKey = []byte("genesis-id")

// initState builds the genesis state on first start, and refuses to reuse a
// database created from a different genesis spec.
func initState(store kv.GetPutter, st *state.State, config *genesis.Config, rawSpec []byte) error {
	id := stakepool.Blake2b(rawSpec)

	if stored, err := store.Get(genesisIDKey); err == nil {
		if stakepool.BytesToBytes32(stored) != id {
			return fmt.Errorf("database was created from a different genesis spec")
		}
		logger.Info("reusing pool database", "genesisID", id)
		return nil
	} else if !store.IsNotFound(err) {
		return err
	}

	if err := config.Build(st); err != nil {
		return err
	}
	pool.New(st, pool.Config{Address: *config.PoolAddress}).
		Init(config.RewardsDuration, config.ClaimLockDuration)
	if err := st.Commit(); err != nil {
		return err
	}
	if err := store.Put(genesisIDKey, id.Bytes()); err != nil {
		return err
	}
	logger.Info("initialized pool database", "genesisID", id)
	return nil
}

func startAPIServer(cfg *config, handler http.HandlerFunc) (*http.Server, string) {
	addr := cfg.APIAddr
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		fatalf("listen API addr '%v': %v", addr, err)
	}

	srv := &http.Server{Handler: handler}
	go func() {
		if err := srv.Serve(listener); err != http.ErrServerClosed {
			logger.Error("API server stopped", "err", err)
		}
	}()
	return srv, "http://" + listener.Addr().String() + "/"
}

func printStartupMessage(config *genesis.Config, srvURL string) {
	fmt.Printf(`Starting %v
    Version     %v
    Pool        %v
    Authority   %v
    API portal  %v
`,
		"StakePool",
		fullVersion(),
		config.PoolAddress,
		config.Authority,
		srvURL,
	)
}
