// Package ndc normalizes National Drug Codes into the 11-digit form used
// throughout CMS Part D formulary files.
package ndc

import "strings"

// Normalize converts a raw NDC string to the 11-digit format without dashes.
//
// Handles both common layouts:
//
//	5-4-2 format: 00169-4517-01 → 00169451701
//	11-digit:     00169451701   → 00169451701
//
// Shorter inputs are left-padded with zeros. The function never fails and
// does not validate that the result is numeric; a code that is not in the
// catalog simply never matches downstream.
func Normalize(raw string) string {
	clean := strings.ReplaceAll(raw, "-", "")
	if len(clean) >= 11 {
		return clean
	}
	return strings.Repeat("0", 11-len(clean)) + clean
}
