// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"os"

	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"
	"gopkg.in/yaml.v3"
)

// config collects the node's effective settings. A YAML config file seeds
// them, explicitly set command line flags win.
type config struct {
	Genesis       string `yaml:"genesis"`
	DataDir       string `yaml:"dataDir"`
	Mem           bool   `yaml:"mem"`
	APIAddr       string `yaml:"apiAddr"`
	APICors       string `yaml:"apiCors"`
	Verbosity     string `yaml:"verbosity"`
	JSONLogs      bool   `yaml:"jsonLogs"`
	EnableAPILogs bool   `yaml:"enableApiLogs"`
	EnableMetrics bool   `yaml:"enableMetrics"`
	Pprof         bool   `yaml:"pprof"`
}

func loadConfigFile(path string) (*config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config file at '%v'", path)
	}
	var c config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, errors.Wrapf(err, "parse config file at '%v'", path)
	}
	return &c, nil
}

func resolveConfig(ctx *cli.Context) *config {
	c := &config{
		DataDir:   dataDirFlag.Value,
		APIAddr:   apiAddrFlag.Value,
		Verbosity: verbosityFlag.Value,
	}

	if path := ctx.String(configFlag.Name); path != "" {
		loaded, err := loadConfigFile(path)
		if err != nil {
			fatal(err)
		}
		merge(c, loaded)
	}

	if ctx.IsSet(genesisFlag.Name) {
		c.Genesis = ctx.String(genesisFlag.Name)
	}
	if ctx.IsSet(dataDirFlag.Name) {
		c.DataDir = ctx.String(dataDirFlag.Name)
	}
	if ctx.IsSet(memFlag.Name) {
		c.Mem = ctx.Bool(memFlag.Name)
	}
	if ctx.IsSet(apiAddrFlag.Name) {
		c.APIAddr = ctx.String(apiAddrFlag.Name)
	}
	if ctx.IsSet(apiCorsFlag.Name) {
		c.APICors = ctx.String(apiCorsFlag.Name)
	}
	if ctx.IsSet(verbosityFlag.Name) {
		c.Verbosity = ctx.String(verbosityFlag.Name)
	}
	if ctx.IsSet(jsonLogsFlag.Name) {
		c.JSONLogs = ctx.Bool(jsonLogsFlag.Name)
	}
	if ctx.IsSet(enableAPILogsFlag.Name) {
		c.EnableAPILogs = ctx.Bool(enableAPILogsFlag.Name)
	}
	if ctx.IsSet(enableMetricsFlag.Name) {
		c.EnableMetrics = ctx.Bool(enableMetricsFlag.Name)
	}
	if ctx.IsSet(pprofFlag.Name) {
		c.Pprof = ctx.Bool(pprofFlag.Name)
	}
	return c
}

func merge(dst, src *config) {
	if src.Genesis != "" {
		dst.Genesis = src.Genesis
	}
	if src.DataDir != "" {
		dst.DataDir = src.DataDir
	}
	if src.APIAddr != "" {
		dst.APIAddr = src.APIAddr
	}
	if src.APICors != "" {
		dst.APICors = src.APICors
	}
	if src.Verbosity != "" {
		dst.Verbosity = src.Verbosity
	}
	dst.Mem = dst.Mem || src.Mem
	dst.JSONLogs = dst.JSONLogs || src.JSONLogs
	dst.EnableAPILogs = dst.EnableAPILogs || src.EnableAPILogs
	dst.EnableMetrics = dst.EnableMetrics || src.EnableMetrics
	dst.Pprof = dst.Pprof || src.Pprof
}
