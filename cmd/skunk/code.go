package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"golang.design/x/clipboard"

	"github.com/vovakirdan/skunk-squad/internal/scorecode"
)

var flagCopy bool

var codeCmd = &cobra.Command{
	Use:   "code",
	Short: "Export, import and verify score codes",
	Long: `Score codes are short checksummed strings describing a finished run.
Share yours, and import codes from others into your leaderboard.
Dashes are optional when typing a code; letter case matters.`,
}

var codeExportCmd = &cobra.Command{
	Use:   "export <rank>",
	Short: "Print the code of a leaderboard entry",
	Long: `Print the score code of the entry at the given rank (1 = best).

Examples:
  skunk code export 1
  skunk code export 3 --copy`,
	Args: cobra.ExactArgs(1),
	Run:  runCodeExport,
}

var codeImportCmd = &cobra.Command{
	Use:   "import <code>",
	Short: "Verify a code and add it to the leaderboard",
	Args:  cobra.ExactArgs(1),
	Run:   runCodeImport,
}

var codeVerifyCmd = &cobra.Command{
	Use:   "verify <code>",
	Short: "Decode and check a code without storing it",
	Args:  cobra.ExactArgs(1),
	Run:   runCodeVerify,
}

func init() {
	codeExportCmd.Flags().BoolVar(&flagCopy, "copy", false, "Copy the code to the clipboard")

	codeCmd.AddCommand(codeExportCmd)
	codeCmd.AddCommand(codeImportCmd)
	codeCmd.AddCommand(codeVerifyCmd)
}

func runCodeExport(_ *cobra.Command, args []string) {
	rank, err := strconv.Atoi(args[0])
	if err != nil || rank < 1 {
		fail("rank must be a positive number, got %q", args[0])
	}

	store, err := openStore()
	if err != nil {
		fail("opening scores database: %v", err)
	}
	defer store.Close()

	entries, err := store.Top(context.Background(), rank)
	if err != nil {
		fail("retrieving scores: %v", err)
	}
	if rank > len(entries) {
		fail("no entry at rank %d (%d on the leaderboard)", rank, len(entries))
	}
	e := entries[rank-1]

	fmt.Println(scorecode.Format(e.Code))
	printRecord(e.Record)

	if flagCopy {
		if err := clipboard.Init(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: clipboard unavailable: %v\n", err)
			return
		}
		<-clipboard.Write(clipboard.FmtText, []byte(e.Code))
		fmt.Println("Copied to clipboard.")
	}
}

func runCodeImport(_ *cobra.Command, args []string) {
	logger, err := newLogger(os.Stderr, "skunk")
	if err != nil {
		fail("%v", err)
	}
	a, err := loadApp(logger)
	if err != nil {
		fail("%v", err)
	}

	store, err := openStore()
	if err != nil {
		fail("opening scores database: %v", err)
	}
	defer store.Close()

	code := scorecode.Normalize(args[0])
	ctx := context.Background()
	_, known, err := store.ByCode(ctx, code)
	if err != nil {
		fail("reading scores: %v", err)
	}

	r, err := a.importer(store).Import(ctx, code)
	if err != nil {
		reportInvalid(err)
		os.Exit(1)
	}

	if known {
		fmt.Println("Code already on the leaderboard.")
	} else {
		fmt.Println("Code accepted.")
	}
	printRecord(r)
}

func runCodeVerify(_ *cobra.Command, args []string) {
	logger, err := newLogger(os.Stderr, "skunk")
	if err != nil {
		fail("%v", err)
	}
	a, err := loadApp(logger)
	if err != nil {
		fail("%v", err)
	}

	r, err := a.importer(nil).Verify(scorecode.Normalize(args[0]))
	if err != nil {
		reportInvalid(err)
		os.Exit(1)
	}
	fmt.Println("Code is valid.")
	printRecord(r)
}

// reportInvalid explains why a code was refused.
func reportInvalid(err error) {
	var (
		decodeErr *scorecode.DecodeError
		rejected  *scorecode.RejectedError
	)
	switch {
	case errors.As(err, &rejected):
		fmt.Fprintf(os.Stderr, "Code rejected: %s\n", rejected.Reason)
	case errors.As(err, &decodeErr):
		fmt.Fprintf(os.Stderr, "Code is not readable: %v\n", decodeErr)
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
}

func printRecord(r scorecode.Record) {
	fmt.Printf("  Score  %d\n", r.Score)
	fmt.Printf("  Level  %d\n", r.LevelReached)
	fmt.Printf("  Kills  %d\n", r.Kills)
	fmt.Printf("  Date   %s\n", time.Unix(r.Timestamp, 0).Format("2006-01-02 15:04"))
}
