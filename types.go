package phpserial

// MalformedPolicy controls Unmarshal behavior on malformed input.
type MalformedPolicy int

const (
	// Tolerant falls back to array recovery when strict decoding fails
	Tolerant MalformedPolicy = iota
	// FailFast returns the decoding error
	FailFast
)

// StringPolicy controls how string tokens are delimited during recovery.
type StringPolicy int

const (
	// ScanTerminator ignores declared length and takes payload up to the first `";`
	ScanTerminator StringPolicy = iota
	// PreferDeclaredLength uses declared length when it ends on `";`, otherwise scans
	PreferDeclaredLength
)

// KeyPolicy controls array key representation.
type KeyPolicy int

const (
	// KeepKeys keeps key kind as read from the token
	KeepKeys KeyPolicy = iota
	// NormalizeKeys converts canonical decimal string keys to integer keys
	NormalizeKeys
)

// Cause describes why recovery stopped
type Cause int

const (
	// Closed means the top level closing brace was reached
	Closed Cause = iota
	// Exhausted means input ended before the top level closing brace
	Exhausted
	// Malformed means no token matched at Offset
	Malformed
	// DepthExceeded means nesting went deeper than the configured max depth
	DepthExceeded
)

func (c Cause) String() string {
	switch c {
	case Closed:
		return "closed"
	case Exhausted:
		return "exhausted"
	case Malformed:
		return "malformed"
	case DepthExceeded:
		return "depth exceeded"
	}
	return "unknown"
}

// Recovery describes a completed recovery
type Recovery struct {
	Offset    int
	Cause     Cause
	Remaining int
	Entries   int
}

// Partial returns true if recovery did not reach the top level closing brace
func (r *Recovery) Partial() bool {
	return r.Cause != Closed
}
