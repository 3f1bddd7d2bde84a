// Command convert rewrites a legacy flatfile cache database into the compact
// binary format: one binary day file per day plus the keys and values
// dictionaries.
//
// Usage:
//
//	convert --input <indir> --output <outdir> [--start-year N] [--end-year N]
//	convert <indir> <outdir>
//
// Flags may also come from an ini config file given with --config; flags on
// the command line win.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/arloliu/compactcache/convert"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := pflag.NewFlagSet("convert", pflag.ContinueOnError)
	flags.String("input", "", "directory holding the legacy year/month-day tree")
	flags.String("output", "", "destination directory for day files and dictionaries")
	flags.Int("start-year", convert.DefaultMinYear, "lowest year directory to convert")
	flags.Int("end-year", convert.DefaultMaxYear, "highest year directory to convert")
	flags.String("config", "", "optional ini configuration file")

	if err := flags.Parse(args); err != nil {
		return err
	}

	v := viper.New()
	if err := v.BindPFlags(flags); err != nil {
		return err
	}

	if cfg := v.GetString("config"); cfg != "" {
		v.SetConfigFile(cfg)
		v.SetConfigType("ini")
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading configuration: %w", err)
		}
	}

	inDir := v.GetString("input")
	outDir := v.GetString("output")
	if inDir == "" && outDir == "" && flags.NArg() == 2 {
		inDir, outDir = flags.Arg(0), flags.Arg(1)
	}
	if inDir == "" || outDir == "" {
		return errors.New("usage: convert --input <indir> --output <outdir>")
	}

	c, err := convert.NewConverter(inDir, outDir,
		convert.WithYearRange(v.GetInt("start-year"), v.GetInt("end-year")))
	if err != nil {
		return err
	}

	return c.Run()
}
