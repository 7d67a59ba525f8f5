// Package task holds the field mapping that is threaded through the
// voice memo pipeline.
//
// A Details value starts out partially filled by the extractor and is
// completed field by field by the interactive form. Fields are only ever
// added; nothing in the pipeline removes a key once it has been set.
package task
