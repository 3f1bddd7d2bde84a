// Package convert rewrites a legacy flatfile cache database into the compact
// binary format.
//
// The legacy layout is a directory tree indir/<year>/<MM-DD>/<category>,
// where each category file holds tab-separated lines of
// (subkey, timestamp, op-marker, value). The converter produces one binary
// day file per MM-DD directory plus the keys and values dictionaries, all in
// the output directory.
package convert

import (
	"bufio"
	"bytes"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/arloliu/compactcache/dayfile"
	"github.com/arloliu/compactcache/dict"
	"github.com/arloliu/compactcache/errs"
	"github.com/arloliu/compactcache/internal/options"
)

const (
	// DefaultMinYear and DefaultMaxYear bound which year directories are
	// considered part of the database; anything else in the input directory
	// is skipped.
	DefaultMinYear = 2010
	DefaultMaxYear = 2099
)

// expiringMarker in the op field marks an expiry record.
var expiringMarker = []byte("-")

// Converter performs a one-shot batch conversion. No retries anywhere: a
// failed run is rerun from scratch into a clean output directory.
type Converter struct {
	inDir   string
	outDir  string
	dicts   *dict.Dicts
	minYear int
	maxYear int
	logger  *log.Logger
}

// Option configures a Converter.
type Option = options.Option[*Converter]

// WithDicts uses an existing dictionary pair instead of a fresh one, e.g. to
// continue index assignment across multiple inputs.
func WithDicts(d *dict.Dicts) Option {
	return options.NoError(func(c *Converter) {
		c.dicts = d
	})
}

// WithYearRange restricts which year directories are converted.
func WithYearRange(minYear, maxYear int) Option {
	return func(c *Converter) error {
		if minYear > maxYear {
			return fmt.Errorf("invalid year range %d-%d", minYear, maxYear)
		}
		c.minYear = minYear
		c.maxYear = maxYear

		return nil
	}
}

// WithLogger replaces the progress logger, which defaults to stderr.
func WithLogger(logger *log.Logger) Option {
	return options.NoError(func(c *Converter) {
		c.logger = logger
	})
}

// NewConverter creates a converter reading from inDir and writing day files
// and dictionaries into outDir.
func NewConverter(inDir, outDir string, opts ...Option) (*Converter, error) {
	c := &Converter{
		inDir:   inDir,
		outDir:  outDir,
		dicts:   dict.NewDicts(),
		minYear: DefaultMinYear,
		maxYear: DefaultMaxYear,
		logger:  log.New(os.Stderr, "", log.LstdFlags),
	}

	if err := options.Apply(c, opts...); err != nil {
		return nil, err
	}

	return c, nil
}

// Dicts returns the dictionary pair the converter resolves indices through.
func (c *Converter) Dicts() *dict.Dicts {
	return c.dicts
}

// Run walks the input tree, writes one day file per day directory and
// persists the dictionaries once at the end, after all index assignments.
func (c *Converter) Run() error {
	if err := c.prepareOutDir(); err != nil {
		return err
	}

	entries, err := os.ReadDir(c.inDir)
	if err != nil {
		return fmt.Errorf("reading input directory: %w", err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		year, err := strconv.Atoi(entry.Name())
		if err != nil || year < c.minYear || year > c.maxYear {
			continue
		}

		dir := filepath.Join(c.inDir, entry.Name())
		if err := c.processYear(year, dir); err != nil {
			return fmt.Errorf("processing %s: %w", dir, err)
		}
	}

	if err := c.dicts.Save(c.outDir); err != nil {
		return fmt.Errorf("saving dictionaries: %w", err)
	}

	return nil
}

// prepareOutDir creates the output directory, refusing one that already has
// contents: the store is create-only, not resumable.
func (c *Converter) prepareOutDir() error {
	entries, err := os.ReadDir(c.outDir)
	if os.IsNotExist(err) {
		return os.MkdirAll(c.outDir, 0o755)
	}
	if err != nil {
		return fmt.Errorf("reading output directory: %w", err)
	}
	if len(entries) > 0 {
		return fmt.Errorf("%s: %w", c.outDir, errs.ErrOutDirNotEmpty)
	}

	return nil
}

// processYear converts every MM-DD day directory under ydir.
func (c *Converter) processYear(year int, ydir string) error {
	entries, err := os.ReadDir(ydir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		month, day, ok := parseMonthDay(entry.Name())
		if !ok {
			continue
		}

		name := dayfile.Filename(year, month, day)
		c.logger.Printf("processing %s", name)

		ddir := filepath.Join(ydir, entry.Name())
		if err := c.processDay(ddir, filepath.Join(c.outDir, name)); err != nil {
			return fmt.Errorf("processing %s: %w", ddir, err)
		}
	}

	return nil
}

// parseMonthDay splits a day directory name of the form MM-DD. Names that do
// not consist of exactly two numeric components are rejected and the
// directory is skipped; the legacy layout guarantees MM-DD, so anything else
// is not a day directory.
func parseMonthDay(name string) (month, day int, ok bool) {
	parts := strings.Split(name, "-")
	if len(parts) != 2 {
		return 0, 0, false
	}

	month, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}
	day, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, false
	}

	return month, day, true
}

// processDay converts every category file of one day directory into a single
// day file. The category name is the file name.
func (c *Converter) processDay(ddir, outPath string) error {
	writer, err := dayfile.Create(outPath, c.dicts)
	if err != nil {
		return err
	}

	entries, err := os.ReadDir(ddir)
	if err != nil {
		writer.Close()
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		catIndex, err := c.dicts.KeyIndex([]byte(entry.Name()))
		if err != nil {
			writer.Close()
			return err
		}

		path := filepath.Join(ddir, entry.Name())
		if err := c.processStoreFile(path, catIndex, writer); err != nil {
			writer.Close()
			return fmt.Errorf("processing %s: %w", path, err)
		}
	}

	return writer.Close()
}

// processStoreFile parses one legacy category file and appends its entries.
// Lines that do not split into exactly 4 tab-separated fields are silently
// skipped; a malformed timestamp on a well-formed line is a contract
// violation of the source data and fails the run.
func (c *Converter) processStoreFile(path string, catIndex uint16, writer *dayfile.Writer) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		parts := bytes.Split(bytes.TrimSpace(scanner.Bytes()), []byte{'\t'})
		if len(parts) != 4 {
			continue
		}

		timestamp, err := strconv.ParseFloat(string(parts[1]), 64)
		if err != nil {
			return fmt.Errorf("malformed timestamp %q: %w", parts[1], err)
		}

		expiring := bytes.Equal(parts[2], expiringMarker)
		if err := writer.AddEntryKey(catIndex, parts[0], parts[3], timestamp, expiring); err != nil {
			return err
		}
	}

	return scanner.Err()
}
