// Copyright 2026 The Merchgroup Authors
// SPDX-License-Identifier: MIT

package ingest

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
)

// DefaultEncoding reads UTF-8 and drops a leading byte order mark, the way
// spreadsheet exports are usually written.
const DefaultEncoding = "utf-8-sig"

// LookupEncoding resolves a character set label. UTF-8 labels always strip a
// BOM. Shift_JIS aliases used by Windows exports (cp932, windows-31j, sjis)
// map to Shift_JIS; any other WHATWG label (euc-jp, iso-2022-jp,
// windows-1252, ...) is looked up in the HTML encoding index.
func LookupEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8", "utf-8-sig", "utf8-sig":
		return unicode.UTF8BOM, nil
	case "shift_jis", "shift-jis", "sjis", "cp932", "ms932", "windows-31j":
		return japanese.ShiftJIS, nil
	case "euc-jp", "eucjp":
		return japanese.EUCJP, nil
	case "utf-16":
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM), nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unsupported encoding %q: %w", name, err)
	}
	return enc, nil
}
