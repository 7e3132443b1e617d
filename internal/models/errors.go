package models

import "errors"

// ErrNoText reports a document that yielded no extractable text. It is a
// distinct condition from a parse where every field is unavailable.
var ErrNoText = errors.New("no text extracted")
