package app

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hyperifyio/orderextract/internal/order"
)

type format int

const (
	formatText format = iota
	formatJSON
	formatPDF
	formatXLSX
)

func outputFormat(path string) format {
	switch strings.ToLower(filepath.Ext(strings.TrimSpace(path))) {
	case ".json":
		return formatJSON
	case ".pdf":
		return formatPDF
	case ".xlsx":
		return formatXLSX
	default:
		return formatText
	}
}

func (a *App) writeOutput(rec order.Record) error {
	out := strings.TrimSpace(a.cfg.OutputPath)
	switch outputFormat(out) {
	case formatJSON:
		b, err := renderJSON(rec)
		if err != nil {
			return err
		}
		return os.WriteFile(out, b, 0o644)
	case formatPDF:
		return writeOrderPDF(rec, out, a.cfg.PDFFontPath)
	case formatXLSX:
		return writeOrderXLSX(rec, out)
	}
	if rec.Empty {
		return nil
	}
	text := renderText(rec)
	if out == "" {
		_, err := io.WriteString(a.stdout, text)
		return err
	}
	return os.WriteFile(out, []byte(text), 0o644)
}

// renderText is the copy-ready summary followed by a newline.
func renderText(rec order.Record) string {
	if rec.Summary == "" {
		return ""
	}
	return rec.Summary + "\n"
}

// renderJSON exposes every slot verbatim, sentinels included.
func renderJSON(rec order.Record) ([]byte, error) {
	if rec.Warnings == nil {
		rec.Warnings = []order.Warning{}
	}
	b, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

// row is one labelled value of a rendered order.
type row struct {
	Label string
	Value string
}

// orderRows lists the record in assembly order under the dashboard labels.
// Options share one row; sentinel values are kept so callers can decide.
func orderRows(rec order.Record) []row {
	opts := make([]string, 0, len(rec.Options))
	for _, o := range rec.Options {
		if order.Present(o) {
			opts = append(opts, o)
		}
	}
	optValue := strings.Join(opts, " / ")
	if len(opts) == 0 && len(rec.Options) > 0 {
		optValue = rec.Options[0]
	}
	return []row{
		{order.LabelProduct, rec.Product},
		{order.LabelOption, optValue},
		{order.LabelQuantity, rec.Quantity},
		{order.LabelRecipient, rec.Recipient},
		{order.LabelContact1, rec.Contact1},
		{order.LabelContact2, rec.Contact2},
		{order.LabelAddress, rec.Address},
		{order.LabelMemo, rec.Memo},
	}
}
