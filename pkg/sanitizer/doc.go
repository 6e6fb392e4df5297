// Package sanitizer normalizes admin and quote input before validation and
// storage.
//
// All normalization functions are idempotent: applying them twice gives the
// same result as applying them once. Invalid input degrades to an empty value
// instead of an error so the validator reports it.
//
// Normalization includes:
//   - Free text (rule names, override reasons): trim, collapse whitespace
//   - Weekday names: lowercase, trimmed ("  Friday " becomes "friday")
//   - Currency and coupon codes: uppercase, no inner spaces
//   - Dates: trimmed, timestamps cut to their YYYY-MM-DD prefix
//   - Slices: duplicates and empty values removed after normalization
package sanitizer
