package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"log/slog"
	"os"
	"syscall"
	"time"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
	"github.com/vrecan/death/v3"

	"github.com/lpiersanti/catena/ledger"
)

// transfer is the record this demo writes into the ledger. Applications
// define their own payload types; the ledger only requires a canonical
// JSON form.
type transfer struct {
	Amount int `json:"amount"`
}

func (tr transfer) CanonicalJSON() ([]byte, error) {
	return json.Marshal(tr)
}

func main() {
	difficulty := flag.Int("difficulty", ledger.DefaultDifficulty, "leading zero hex characters mined hashes must carry")
	maxAttempts := flag.Uint64("max-attempts", 0, "bound on nonce attempts per block, 0 means unbounded")
	tamper := flag.Bool("tamper", true, "rewrite a recorded amount after mining to demonstrate detection")
	asJSON := flag.Bool("json", false, "print the chain as a JSON document instead of panels")
	flag.Parse()

	// Create a new slog handler with the default PTerm logger
	handler := pterm.NewSlogHandler(&pterm.DefaultLogger)
	logger := slog.New(handler)

	pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithStyle("Cat", pterm.FgRed.ToStyle()),
		putils.LettersFromStringWithStyle("ena", pterm.FgDarkGray.ToStyle()),
	).Render()

	ctx, cancel := context.WithCancel(context.Background())
	d := death.NewDeath(syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	go d.WaitForDeathWithFunc(func() {
		logger.Warn("shutdown requested, stopping the nonce search")
		cancel()
	})

	if err := run(ctx, logger, demoConfig{
		difficulty:  *difficulty,
		maxAttempts: *maxAttempts,
		tamper:      *tamper,
		asJSON:      *asJSON,
	}); err != nil {
		if errors.Is(err, ledger.ErrMineCancelled) {
			pterm.Warning.Println("Mining interrupted before completion")
			os.Exit(1)
		}
		pterm.Error.Printfln("Demo failed: %v", err)
		os.Exit(1)
	}
}

// demoConfig carries the parsed command line flags.
type demoConfig struct {
	difficulty  int
	maxAttempts uint64
	tamper      bool
	asJSON      bool
}

// run drives the whole demo: build a chain, mine two transfers onto it,
// display and verify it, then corrupt a recorded block to show that
// verification catches the rewrite.
func run(ctx context.Context, logger *slog.Logger, cfg demoConfig) error {
	chain, err := ledger.NewBlockchain(ledger.WithDifficulty(cfg.difficulty))
	if err != nil {
		return err
	}
	logger.Info("chain initialized", "difficulty", cfg.difficulty, "blocks", chain.Len())

	var opts []ledger.MineOption
	if cfg.maxAttempts > 0 {
		opts = append(opts, ledger.WithMaxAttempts(cfg.maxAttempts))
	}

	for i, amount := range []int{4, 24} {
		index := i + 1
		block, err := ledger.NewBlock(index, time.Now().Format("02/01/2006"), transfer{Amount: amount})
		if err != nil {
			return err
		}

		spinner, _ := pterm.DefaultSpinner.Start(pterm.Sprintf("Mining block %d ...", index))
		res, err := chain.Append(ctx, block, opts...)
		if err != nil {
			spinner.Fail()
			return err
		}
		spinner.Success()

		logger.Info("block mined",
			"index", index,
			"nonce", res.Nonce,
			"attempts", res.Attempts,
			"elapsed", res.Elapsed.Round(time.Millisecond).String(),
			"hash", shortHash(res.Hash),
		)
	}

	if err := printChain(chain, cfg.asJSON); err != nil {
		return err
	}
	reportVerdict(chain)

	if !cfg.tamper {
		return nil
	}

	pterm.Println()
	pterm.Info.Println("Rewriting the amount recorded in block 1 ...")
	blk, err := chain.GetByIndex(1)
	if err != nil {
		return err
	}
	blk.Data = transfer{Amount: 400}

	reportVerdict(chain)
	return nil
}

// reportVerdict prints the structured verification result, then layers on
// the proof-of-work re-check that Verify leaves to callers.
func reportVerdict(chain *ledger.Blockchain) {
	if err := chain.Verify(); err != nil {
		var verr *ledger.ValidationError
		if errors.As(err, &verr) {
			pterm.Error.Printfln("Chain invalid: block %d failed with a %s", verr.Index, verr.Reason)
			return
		}
		pterm.Error.Printfln("Chain invalid: %v", err)
		return
	}

	for _, b := range chain.Blocks()[1:] {
		if !ledger.MeetsDifficulty(b.Hash, chain.Difficulty()) {
			pterm.Warning.Printfln("Block %d verifies but misses the difficulty target", b.Index)
			return
		}
	}
	pterm.Success.Println("Chain valid: every block verifies and meets the difficulty target")
}
