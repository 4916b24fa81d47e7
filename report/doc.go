// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package report formats collected responses for people: display values,
// the terminal table and the CSV export shared by the API and the CLI.
package report
