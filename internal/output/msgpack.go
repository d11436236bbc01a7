// Copyright 2026 The Merchgroup Authors
// SPDX-License-Identifier: MIT

package output

import (
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/yana87ryo/data-analysis-training/internal/grouping"
)

func init() {
	RegisterFormatter(NewMsgpackFormatter())
}

// MsgpackFormatter writes the document as MessagePack: the metadata map,
// then the rows as an array stream, then the coverage array. Fields use
// their JSON names.
type MsgpackFormatter struct{}

// Compile-time interface checks.
var (
	_ Formatter       = (*MsgpackFormatter)(nil)
	_ BinaryFormatter = (*MsgpackFormatter)(nil)
)

// NewMsgpackFormatter returns a new MsgpackFormatter.
func NewMsgpackFormatter() *MsgpackFormatter {
	return &MsgpackFormatter{}
}

// Name returns the format name.
func (m *MsgpackFormatter) Name() string {
	return "msgpack"
}

// Binary reports that MessagePack is not terminal output.
func (m *MsgpackFormatter) Binary() bool { return true }

// Format writes doc to w.
func (m *MsgpackFormatter) Format(doc Document, w io.Writer) error {
	enc := msgpack.NewEncoder(w)
	enc.SetCustomStructTag("json")

	if err := enc.Encode(doc.Metadata); err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}
	if err := enc.EncodeArrayLen(len(doc.Rows)); err != nil {
		return fmt.Errorf("encode rows: %w", err)
	}
	for i := range doc.Rows {
		if err := enc.Encode(doc.Rows[i]); err != nil {
			return fmt.Errorf("encode row %d: %w", i, err)
		}
	}
	if err := enc.Encode(doc.Coverage); err != nil {
		return fmt.Errorf("encode coverage: %w", err)
	}
	return nil
}

// ReadMsgpack decodes a document written by MsgpackFormatter.
func ReadMsgpack(r io.Reader) (Document, error) {
	var doc Document
	dec := msgpack.NewDecoder(r)
	dec.SetCustomStructTag("json")

	if err := dec.Decode(&doc.Metadata); err != nil {
		return doc, fmt.Errorf("decode metadata: %w", err)
	}
	n, err := dec.DecodeArrayLen()
	if err != nil {
		return doc, fmt.Errorf("decode rows: %w", err)
	}
	if n > 0 {
		doc.Rows = make([]grouping.Row, n)
	}
	for i := range n {
		if err := dec.Decode(&doc.Rows[i]); err != nil {
			return doc, fmt.Errorf("decode row %d: %w", i, err)
		}
	}
	if err := dec.Decode(&doc.Coverage); err != nil {
		return doc, fmt.Errorf("decode coverage: %w", err)
	}
	return doc, nil
}
