// Package language provides language code normalization, matching, and
// display names for transcript language preferences.
//
// Codes are canonicalized as BCP 47 tags so user input such as "EN_us" and
// caption track codes such as "en-US" compare equal.
package language
