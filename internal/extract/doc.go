// Package extract recognizes meeting requests in transcript text.
//
// Extraction is an ordered list of rules, each a regular expression plus
// a function mapping the captured groups to task fields. The first rule
// that matches wins. The default list holds a single rule for sentences
// of the form "schedule a meeting with <who> at <when>"; other sentence
// forms yield an empty result.
package extract
