// Command dexp is the CLI surface for the dexparser library (spec §6),
// grounded on original_source/solana_dex_parser/src/bin/dexp.rs: parse a
// single transaction or an entire block from a JSON file and print the
// result as indented JSON.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dexlabs/solana-dex-parser/internal/dexparser"
	"github.com/dexlabs/solana-dex-parser/internal/dexparser/types"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "dexp",
		Short: "Parse Solana DEX transactions",
	}
	root.AddCommand(newParseTxCmd(), newParseBlockCmd())
	return root
}

func newParseTxCmd() *cobra.Command {
	var file, mode string
	cmd := &cobra.Command{
		Use:   "parse-tx",
		Short: "Parse a single transaction JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParseTx(file, mode)
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "path to a JSON file containing a transaction")
	cmd.Flags().StringVar(&mode, "mode", "all", "output mode: all, trades, liquidity, transfers")
	cmd.MarkFlagRequired("file")
	return cmd
}

func newParseBlockCmd() *cobra.Command {
	var file, mode string
	cmd := &cobra.Command{
		Use:   "parse-block",
		Short: "Parse a block JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParseBlock(file, mode)
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "path to a JSON file containing block information")
	cmd.Flags().StringVar(&mode, "mode", "parsed", "block parsing mode: raw, parsed")
	cmd.MarkFlagRequired("file")
	return cmd
}

func runParseTx(file, mode string) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", file, err)
	}

	p := dexparser.New()
	cfg := types.ParseConfig{TryUnknownDex: true}

	var output any
	switch mode {
	case "all":
		output, err = p.ParseAll(data, cfg)
	case "trades":
		output, err = p.ParseTrades(data, cfg)
	case "liquidity":
		output, err = p.ParseLiquidity(data, cfg)
	case "transfers":
		output, err = p.ParseTransfers(data, cfg)
	default:
		return fmt.Errorf("unknown mode %q", mode)
	}
	if err != nil {
		return err
	}
	return printJSON(output)
}

func runParseBlock(file, mode string) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", file, err)
	}

	p := dexparser.New()
	cfg := types.ParseConfig{TryUnknownDex: true}

	var result types.BlockParseResult
	switch mode {
	case "raw":
		result, err = p.ParseBlockRaw(data, cfg)
	case "parsed":
		result, err = p.ParseBlockParsed(data, cfg)
	default:
		return fmt.Errorf("unknown mode %q", mode)
	}
	if err != nil {
		return err
	}
	return printJSON(result)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
