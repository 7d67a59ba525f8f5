// Package timeparse turns free-text date and time expressions into
// timezone-aware instants.
//
// Parsing is layered: RFC 3339 first (the form the extractor stores),
// then a list of explicit absolute layouts, then github.com/araddon/dateparse
// for other absolute formats and finally github.com/olebedev/when for
// relative expressions such as "3pm tomorrow". A relative match must span
// the whole expression. A bare hour after "at" is read on the 24-hour
// clock, and a date without a year falls in the current year.
//
// Expressions without an explicit zone are resolved in the normalizer's
// default location, which is UTC unless configured otherwise.
package timeparse
