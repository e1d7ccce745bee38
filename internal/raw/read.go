package raw

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/swissgeo/internal/fetcher"
)

// maxHeaderScan bounds how many leading rows may precede the header
// (title and notes rows in published spreadsheets).
const maxHeaderScan = 20

// Source describes a table file. The format is chosen by extension:
// .xlsx is read as a spreadsheet, .zip must hold a single .csv or .xlsx,
// anything else is read as CSV.
type Source struct {
	Path      string
	Delimiter rune   // CSV only, default ','
	Charset   string // CSV only, default UTF-8
	Sheet     string // XLSX only, default first sheet
}

// ReadPoliticalCommunities reads the municipality register.
func ReadPoliticalCommunities(ctx context.Context, src Source) ([]PoliticalCommunity, error) {
	var out []PoliticalCommunity
	err := readTable(ctx, src, politicalColumns, func(line int, row []string, idx columnIndex) error {
		rec, err := parsePolitical(row, idx)
		if err != nil {
			return eris.Wrapf(err, "raw: %s row %d", filepath.Base(src.Path), line)
		}
		out = append(out, rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ReadPostalCommunities reads the zip-code register.
func ReadPostalCommunities(ctx context.Context, src Source) ([]PostalCommunity, error) {
	var out []PostalCommunity
	err := readTable(ctx, src, postalColumns, func(line int, row []string, idx columnIndex) error {
		rec, err := parsePostal(row, idx)
		if err != nil {
			return eris.Wrapf(err, "raw: %s row %d", filepath.Base(src.Path), line)
		}
		out = append(out, rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// LoadAll reads both registers concurrently.
func LoadAll(ctx context.Context, politicalSrc, postalSrc Source) ([]PoliticalCommunity, []PostalCommunity, error) {
	var (
		political []PoliticalCommunity
		postal    []PostalCommunity
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		political, err = ReadPoliticalCommunities(gCtx, politicalSrc)
		return err
	})
	g.Go(func() error {
		var err error
		postal, err = ReadPostalCommunities(gCtx, postalSrc)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	zap.L().Debug("raw: records loaded",
		zap.String("political_path", politicalSrc.Path),
		zap.Int("political", len(political)),
		zap.String("postal_path", postalSrc.Path),
		zap.Int("postal", len(postal)),
	)
	return political, postal, nil
}

type rowFunc func(n int, row []string, idx columnIndex) error

// readTable locates the header row and feeds every following non-blank row to fn.
func readTable(ctx context.Context, src Source, cols []column, fn rowFunc) error {
	if src.Path == "" {
		return eris.New("raw: empty source path")
	}

	path := src.Path
	if strings.EqualFold(filepath.Ext(path), ".zip") {
		dir, err := os.MkdirTemp("", "swissgeo-*")
		if err != nil {
			return eris.Wrap(err, "raw: create temp dir")
		}
		defer os.RemoveAll(dir) //nolint:errcheck

		path, err = fetcher.ExtractZIPSingle(path, dir)
		if err != nil {
			return eris.Wrapf(err, "raw: extract %s", src.Path)
		}
	}

	ts := &tableScanner{cols: cols, fn: fn}
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		rows, err := fetcher.ReadXLSX(path, fetcher.XLSXOptions{SheetName: src.Sheet})
		if err != nil {
			return eris.Wrapf(err, "raw: read %s", src.Path)
		}
		for _, row := range rows {
			if err := ts.scan(row); err != nil {
				return err
			}
		}
		return ts.finish(src.Path)
	}

	f, err := os.Open(path)
	if err != nil {
		return eris.Wrapf(err, "raw: open %s", src.Path)
	}
	defer f.Close() //nolint:errcheck

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	rowCh, errCh := fetcher.StreamCSV(ctx, f, fetcher.CSVOptions{
		Delimiter:  src.Delimiter,
		Charset:    src.Charset,
		LazyQuotes: true,
		TrimSpace:  true,
	})
	for row := range rowCh {
		if err := ts.scan(row); err != nil {
			return err
		}
	}
	for err := range errCh {
		if err != nil {
			return eris.Wrapf(err, "raw: read %s", src.Path)
		}
	}
	return ts.finish(src.Path)
}

// tableScanner tracks header detection across rows of one table.
type tableScanner struct {
	cols    []column
	fn      rowFunc
	idx     columnIndex
	line    int
	missing []string
}

func (t *tableScanner) scan(row []string) error {
	t.line++
	if isBlank(row) {
		return nil
	}
	if t.idx != nil {
		return t.fn(t.line, row, t.idx)
	}

	idx, missing := matchHeader(row, t.cols)
	if len(missing) == 0 {
		t.idx = idx
		return nil
	}
	if t.missing == nil {
		t.missing = missing
	}
	if t.line >= maxHeaderScan {
		return eris.Errorf("raw: no header in first %d rows (missing %s)", maxHeaderScan, strings.Join(t.missing, ", "))
	}
	return nil
}

func (t *tableScanner) finish(path string) error {
	if t.idx != nil {
		return nil
	}
	if t.missing == nil {
		return eris.Errorf("raw: %s: no header row", filepath.Base(path))
	}
	return eris.Errorf("raw: %s: header not found (missing %s)", filepath.Base(path), strings.Join(t.missing, ", "))
}
