// Copyright (c) 2025 The Stakewell developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import "github.com/urfave/cli/v2"

var (
	dataDirFlag = &cli.StringFlag{
		Name:  "data-dir",
		Value: defaultDataDir(),
		Usage: "directory for ledger databases",
	}
	apiAddrFlag = &cli.StringFlag{
		Name:  "api-addr",
		Value: "localhost:8669",
		Usage: "API service listening address",
	}
	apiCorsFlag = &cli.StringFlag{
		Name:  "api-cors",
		Value: "",
		Usage: "comma separated list of domains from which to accept cross origin requests to API",
	}
	verbosityFlag = &cli.IntFlag{
		Name:  "verbosity",
		Value: 3,
		Usage: "log verbosity (0-9)",
	}
	jsonLogsFlag = &cli.BoolFlag{
		Name:  "json-logs",
		Usage: "output logs in JSON format",
	}
	enableAPILogsFlag = &cli.BoolFlag{
		Name:  "enable-api-logs",
		Usage: "enables API requests logging",
	}
	enableMetricsFlag = &cli.BoolFlag{
		Name:  "enable-metrics",
		Usage: "enables metrics collection",
	}
	metricsAddrFlag = &cli.StringFlag{
		Name:  "metrics-addr",
		Value: "localhost:2112",
		Usage: "metrics service listening address",
	}
	pprofFlag = &cli.BoolFlag{
		Name:  "pprof",
		Usage: "turn on go-pprof",
	}
	ownerFlag = &cli.StringFlag{
		Name:  "owner",
		Usage: "address granted the owner role at first start",
	}
	treasuryFlag = &cli.StringFlag{
		Name:  "treasury",
		Usage: "address receiving staked funds",
	}
	minStakeAmountFlag = &cli.StringFlag{
		Name:  "min-stake-amount",
		Value: "0",
		Usage: "initial minimum stake amount (decimal)",
	}
	minStakeDurationFlag = &cli.Uint64Flag{
		Name:  "min-stake-duration",
		Value: 0,
		Usage: "initial minimum stake duration in seconds",
	}
)
