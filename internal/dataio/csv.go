// Package dataio reads and writes delimited dataset files.
package dataio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/huangsam/nowcast/schema"
)

// ReadFrame loads a CSV file into a Frame. The first row is the header;
// every subsequent row must have the same width.
func ReadFrame(path string) (*schema.Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()
	return ReadFrameFrom(file)
}

// ReadFrameFrom loads CSV content from any reader into a Frame.
func ReadFrameFrom(r io.Reader) (*schema.Frame, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("dataset has no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	frame := &schema.Frame{Columns: header}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", len(frame.Rows)+2, err)
		}
		frame.Rows = append(frame.Rows, row)
	}
	return frame, nil
}

// WriteFrame writes a Frame as CSV to the given path.
func WriteFrame(frame *schema.Frame, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()
	return WriteFrameTo(frame, file)
}

// WriteFrameTo writes a Frame as CSV to any writer.
func WriteFrameTo(frame *schema.Frame, w io.Writer) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write(frame.Columns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, row := range frame.Rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	writer.Flush()
	return writer.Error()
}
