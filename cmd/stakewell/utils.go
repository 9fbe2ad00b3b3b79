// Copyright (c) 2025 The Stakewell developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"math/big"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/stakewell/stakewell/eventdb"
	"github.com/stakewell/stakewell/ledger"
	"github.com/stakewell/stakewell/log"
	"github.com/stakewell/stakewell/lvldb"
	"github.com/stakewell/stakewell/metrics"
	"github.com/stakewell/stakewell/stakewell"
)

func initLogger(ctx *cli.Context) {
	logLevel := log.FromLegacyLevel(ctx.Int(verbosityFlag.Name))
	log.Init(logLevel, ctx.Bool(jsonLogsFlag.Name))
}

func defaultDataDir() string {
	// Try to place the data folder in the user's home dir
	home := homeDir()
	if home == "" {
		return ""
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "com.stakewell")
	case "windows":
		return filepath.Join(home, "AppData", "Roaming", "Stakewell")
	default:
		return filepath.Join(home, ".stakewell")
	}
}

func homeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return ""
}

func makeDataDir(ctx *cli.Context) (string, error) {
	dir := ctx.String(dataDirFlag.Name)
	if dir == "" {
		return "", errors.Errorf("unable to infer default data dir, use -%s to specify", dataDirFlag.Name)
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", errors.Wrapf(err, "create data dir [%s]", dir)
	}
	return dir, nil
}

func openMainDB(dataDir string) (*lvldb.LevelDB, error) {
	dir := filepath.Join(dataDir, "main.db")
	db, err := lvldb.New(dir, lvldb.Options{})
	if err != nil {
		return nil, errors.Wrapf(err, "open main database [%s]", dir)
	}
	return db, nil
}

func openEventDB(dataDir string) (*eventdb.EventDB, error) {
	path := filepath.Join(dataDir, "events.db")
	db, err := eventdb.New(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open event database [%s]", path)
	}
	return db, nil
}

func parseLedgerOptions(ctx *cli.Context) (*ledger.Options, error) {
	owner, err := stakewell.ParseAddress(ctx.String(ownerFlag.Name))
	if err != nil {
		return nil, errors.WithMessagef(err, "invalid -%s", ownerFlag.Name)
	}
	treasury, err := stakewell.ParseAddress(ctx.String(treasuryFlag.Name))
	if err != nil {
		return nil, errors.WithMessagef(err, "invalid -%s", treasuryFlag.Name)
	}
	minAmount, ok := new(big.Int).SetString(ctx.String(minStakeAmountFlag.Name), 10)
	if !ok || minAmount.Sign() < 0 {
		return nil, errors.Errorf("invalid -%s", minStakeAmountFlag.Name)
	}
	return &ledger.Options{
		Owner:            owner,
		Treasury:         treasury,
		MinStakeAmount:   minAmount,
		MinStakeDuration: ctx.Uint64(minStakeDurationFlag.Name),
	}, nil
}

func startAPIServer(addr string, handler http.Handler) (*http.Server, string, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, "", errors.Wrapf(err, "listen API addr [%s]", addr)
	}
	srv := &http.Server{Handler: handler}
	go func() {
		srv.Serve(listener)
	}()
	return srv, "http://" + listener.Addr().String() + "/", nil
}

func startMetricsServer(addr string) (*http.Server, string, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, "", errors.Wrapf(err, "listen metrics addr [%s]", addr)
	}
	router := http.NewServeMux()
	router.Handle("/metrics", metrics.HTTPHandler())
	srv := &http.Server{Handler: router}
	go func() {
		srv.Serve(listener)
	}()
	return srv, "http://" + listener.Addr().String() + "/metrics", nil
}

func handleExitSignal() context.Context {
	exitSignalCtx, cancel := context.WithCancel(context.Background())
	go func() {
		exitSignalCh := make(chan os.Signal, 1)
		signal.Notify(exitSignalCh, os.Interrupt, syscall.SIGTERM)

		sig := <-exitSignalCh
		logger.Info("exit signal received", "signal", sig)
		cancel()
	}()
	return exitSignalCtx
}

func unixClock() uint64 {
	return uint64(time.Now().Unix())
}

func printStartupMessage(dataDir, apiURL string, opts *ledger.Options) {
	fmt.Printf(`Starting %v
    Data dir    [ %v ]
    API portal  [ %v ]
    Owner       [ %v ]
    Treasury    [ %v ]
`,
		"Stakewell",
		dataDir,
		apiURL,
		opts.Owner,
		opts.Treasury,
	)
}
