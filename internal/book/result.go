package book

// Result is the outcome of a lookup.
// It separates "no matches" (Err == nil, no records) from "lookup failed" (Err != nil).
type Result struct {
	// Records holds the normalized results. Always empty when Err is set.
	Records []Record

	// Err is the transport or parse failure, if any.
	Err error

	// FromCache reports whether the records were served without a network call.
	FromCache bool
}

// OK reports whether the lookup succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}

// Empty reports whether there are no records, for whatever reason.
func (r Result) Empty() bool {
	return len(r.Records) == 0
}
