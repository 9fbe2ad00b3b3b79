// Copyright (c) 2025 The Stakewell developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"math/big"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/stakewell/stakewell/api"
	"github.com/stakewell/stakewell/eventdb"
	"github.com/stakewell/stakewell/kv"
	"github.com/stakewell/stakewell/ledger"
	"github.com/stakewell/stakewell/log"
	"github.com/stakewell/stakewell/lvldb"
	"github.com/stakewell/stakewell/metrics"
	"github.com/stakewell/stakewell/stakewell"
	"github.com/stakewell/stakewell/transfer"
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
	app := &cli.App{
		Version:   fullVersion(),
		Name:      "Stakewell",
		Usage:     "Staking ledger service",
		Copyright: "2025 The Stakewell developers",
		Flags: []cli.Flag{
			dataDirFlag,
			apiAddrFlag,
			apiCorsFlag,
			verbosityFlag,
			jsonLogsFlag,
			enableAPILogsFlag,
			enableMetricsFlag,
			metricsAddrFlag,
			pprofFlag,
			ownerFlag,
			treasuryFlag,
			minStakeAmountFlag,
			minStakeDurationFlag,
		},
		Action: defaultAction,
		Commands: []*cli.Command{
			{
				Name:  "solo",
				Usage: "in-memory instance for test & dev",
				Flags: []cli.Flag{
					apiAddrFlag,
					apiCorsFlag,
					verbosityFlag,
					jsonLogsFlag,
					enableAPILogsFlag,
					enableMetricsFlag,
					metricsAddrFlag,
					pprofFlag,
				},
				Action: soloAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultAction(ctx *cli.Context) error {
	exitSignal := handleExitSignal()
	defer func() { logger.Info("exited") }()

	initLogger(ctx)

	opts, err := parseLedgerOptions(ctx)
	if err != nil {
		return err
	}

	dataDir, err := makeDataDir(ctx)
	if err != nil {
		return err
	}

	mainDB, err := openMainDB(dataDir)
	if err != nil {
		return err
	}
	defer func() { logger.Info("closing main database..."); mainDB.Close() }()

	eventDB, err := openEventDB(dataDir)
	if err != nil {
		return err
	}
	defer func() { logger.Info("closing event database..."); eventDB.Close() }()

	return runLedger(ctx, exitSignal, mainDB, eventDB, transfer.NewMemEngine(), opts, dataDir)
}

func soloAction(ctx *cli.Context) error {
	exitSignal := handleExitSignal()
	defer func() { logger.Info("exited") }()

	initLogger(ctx)

	mainDB, err := lvldb.NewMem()
	if err != nil {
		return err
	}
	defer mainDB.Close()

	eventDB, err := eventdb.NewMem()
	if err != nil {
		return err
	}
	defer eventDB.Close()

	// the solo instance funds a fixed dev account set
	engine := transfer.NewMemEngine()
	opts := soloOptions(engine)

	return runLedger(ctx, exitSignal, mainDB, eventDB, engine, opts, "Memory")
}

// soloDevAccounts are funded at solo startup; the first doubles as owner,
// the second as treasury.
var soloDevAccounts = []string{
	"0xf077b491b355e64048ce21e3a6fc4751eeea77fa",
	"0x435933c8064b4ae76be665428e0307ef2ccfbd68",
	"0x0f872421dc479f3c11edd89512731814d0598db5",
	"0xf370940abdbd2583bc80bfc19d19bc216c88ccf0",
}

func soloOptions(engine *transfer.MemEngine) *ledger.Options {
	endowment := new(big.Int).Mul(big.NewInt(1_000_000), big.NewInt(1e18))
	for _, hex := range soloDevAccounts {
		addr := stakewell.MustParseAddress(hex)
		engine.MintNative(addr, endowment)
	}
	return &ledger.Options{
		Owner:            stakewell.MustParseAddress(soloDevAccounts[0]),
		Treasury:         stakewell.MustParseAddress(soloDevAccounts[1]),
		MinStakeAmount:   big.NewInt(0),
		MinStakeDuration: 0,
	}
}

func runLedger(
	ctx *cli.Context,
	exitSignal context.Context,
	mainDB kv.GetPutter,
	eventDB *eventdb.EventDB,
	engine transfer.Engine,
	opts *ledger.Options,
	dataDir string,
) error {
	l := ledger.New(mainDB, engine, eventDB, unixClock)
	bootstrapped, err := l.Init(*opts)
	if err != nil {
		return err
	}
	if bootstrapped {
		logger.Info("ledger bootstrapped", "owner", opts.Owner, "treasury", opts.Treasury)
	}

	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
		metricsSrv, metricsURL, err := startMetricsServer(ctx.String(metricsAddrFlag.Name))
		if err != nil {
			return err
		}
		logger.Info("metrics service started", "url", metricsURL)
		defer func() { logger.Info("stopping metrics server..."); metricsSrv.Shutdown(context.Background()) }()
	}

	apiHandler, apiCloser := api.New(l, eventDB, api.Options{
		AllowedOrigins:  ctx.String(apiCorsFlag.Name),
		PprofOn:         ctx.Bool(pprofFlag.Name),
		EnableReqLogger: ctx.Bool(enableAPILogsFlag.Name),
		EnableMetrics:   ctx.Bool(enableMetricsFlag.Name),
	})
	defer apiCloser()

	apiSrv, apiURL, err := startAPIServer(ctx.String(apiAddrFlag.Name), apiHandler)
	if err != nil {
		return err
	}
	defer func() { logger.Info("stopping API server..."); apiSrv.Shutdown(context.Background()) }()

	printStartupMessage(dataDir, apiURL, opts)

	<-exitSignal.Done()
	return nil
}
