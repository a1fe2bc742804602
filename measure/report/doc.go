// Package report compares channels before and after leveling: level and
// crest statistics, per-second level variation, and the averaged spectrum.
package report
