// Copyright 2026 The Merchgroup Authors
// SPDX-License-Identifier: MIT

package report

import (
	"strconv"
	"strings"

	"github.com/fatih/color"
)

// Shared color printers for report sections.
var (
	colorRed    = color.New(color.FgRed)
	colorYellow = color.New(color.FgYellow)
	colorGreen  = color.New(color.FgGreen)
	colorBold   = color.New(color.Bold)
)

// SectionTitle renders a bold section title.
func SectionTitle(title string) string {
	return colorBold.Sprint(title)
}

// ColorGroupShare colors the share of groups needed to reach a coverage
// target: a small head (up to 20%) is green, up to half is yellow and
// anything above is red. Values may carry a trailing "%".
func ColorGroupShare(val string) string {
	share, err := strconv.ParseFloat(strings.TrimSuffix(val, "%"), 64)
	if err != nil {
		return val
	}
	switch {
	case share <= 20:
		return colorGreen.Sprint(val)
	case share <= 50:
		return colorYellow.Sprint(val)
	default:
		return colorRed.Sprint(val)
	}
}

// ColorMemberCount highlights groups that merged many spellings.
func ColorMemberCount(val string) string {
	n, err := strconv.Atoi(val)
	if err != nil || n < 5 {
		return val
	}
	return colorYellow.Sprint(val)
}
