package phpserial

import (
	"github.com/viant/parsly"
)

// Repair recovers as much of a serialized array as possible from truncated or corrupted input.
// The leading array header is stripped and its declared count ignored, string lengths are not trusted.
// Repair never fails, it returns an empty or partial array when nothing else can be read.
func Repair(serialized string, opts ...Option) *Map {
	return RepairBytes([]byte(serialized), opts...)
}

// RepairBytes recovers array from data, see Repair
func RepairBytes(data []byte, opts ...Option) *Map {
	return repair(data, resolveOptions(opts))
}

func repair(data []byte, options *Options) *Map {
	r := &repairer{
		input:   data,
		options: options,
		tokens:  recoveryTokens(options.StringPolicy),
	}
	return r.run()
}

type repairer struct {
	input   []byte
	options *Options
	tokens  []*parsly.Token
	outcome Recovery
	stopped bool
}

// pendingKey holds a decoded key waiting for its value
type pendingKey struct {
	key Key
	ok  bool
}

func (r *repairer) run() *Map {
	start := 0
	if len(r.input) > 0 {
		cursor := r.cursorAt(0)
		if match := cursor.MatchAny(arrayOpenMatcher); match.Code == arrayOpenToken {
			start = cursor.Pos
		}
	}
	result, _ := r.mapping(start, 1)
	r.outcome.Entries = result.Len()
	if r.options.RecoverySink != nil {
		r.options.RecoverySink(r.outcome)
	}
	return result
}

func (r *repairer) cursorAt(pos int) *parsly.Cursor {
	cursor := parsly.NewCursor("", r.input, 0)
	cursor.Pos = pos
	return cursor
}

// mapping scans entries starting at pos until the closing brace, returns the array and the position after it
func (r *repairer) mapping(pos int, depth int) (*Map, int) {
	result := NewMap()
	pending := pendingKey{}
	cursor := r.cursorAt(pos)
	for cursor.Pos < len(cursor.Input) {
		offset := cursor.Pos
		match := cursor.MatchAny(r.tokens...)
		switch match.Code {
		case arrayCloseToken:
			if depth == 1 {
				r.finish(cursor.Pos, Closed)
			}
			return result, cursor.Pos
		case stringToken:
			payload := stringPayload(match.Text(cursor))
			r.keyOrValue(result, &pending, StringKey(payload), String(payload))
		case intToken:
			i := intPayload(match.Text(cursor))
			r.keyOrValue(result, &pending, IntKey(i), Int(i))
		case floatToken:
			r.value(result, &pending, Float(floatPayload(match.Text(cursor))))
		case boolToken:
			r.value(result, &pending, Bool(boolPayload(match.Text(cursor))))
		case nullToken:
			r.value(result, &pending, Null())
		case arrayOpenToken:
			if depth >= r.options.MaxDepth {
				r.stop(offset, DepthExceeded)
				return result, offset
			}
			nested, next := r.mapping(cursor.Pos, depth+1)
			cursor.Pos = next
			r.value(result, &pending, MapValue(nested))
			if r.stopped {
				return result, cursor.Pos
			}
		default:
			r.stop(offset, Malformed)
			return result, offset
		}
	}
	if depth == 1 {
		r.finish(cursor.Pos, Exhausted)
	}
	return result, cursor.Pos
}

// keyOrValue stores token as pending key, or commits it as the value of the pending key
func (r *repairer) keyOrValue(result *Map, pending *pendingKey, key Key, value Value) {
	if !pending.ok {
		pending.key = r.options.key(key)
		pending.ok = true
		return
	}
	r.value(result, pending, value)
}

// value commits value under the pending key, or appends it when no key is pending
func (r *repairer) value(result *Map, pending *pendingKey, value Value) {
	if !pending.ok {
		result.Append(value)
		return
	}
	result.Put(pending.key, value)
	*pending = pendingKey{}
}

func (r *repairer) stop(offset int, cause Cause) {
	r.stopped = true
	r.finish(offset, cause)
}

func (r *repairer) finish(offset int, cause Cause) {
	r.outcome.Offset = offset
	r.outcome.Cause = cause
	r.outcome.Remaining = len(r.input) - offset
}
