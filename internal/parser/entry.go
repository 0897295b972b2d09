package parser

// Entry is one key/value pair read from a dotenv file. Entries keep file
// order; the parser never deduplicates keys, that is the loader's call.
type Entry struct {
	Key   string
	Value string
}

// String renders the entry the way it would appear in a dotenv file. Values
// that carry leading or trailing quote characters do not survive a re-parse
// verbatim; everything else round-trips.
func (e Entry) String() string {
	return e.Key + "=" + e.Value
}
