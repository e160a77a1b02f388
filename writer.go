package wirebind

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	gojson "github.com/goccy/go-json"
)

var (
	// ErrWriterState reports an emit call that is not valid at the current
	// position (a key outside an object, a value without its key, ...).
	ErrWriterState = errors.New("wirebind: invalid writer state")
	// ErrUnsetUnion is returned when writing a union that holds no alternative.
	ErrUnsetUnion = errors.New("wirebind: union holds no alternative")
)

type scope struct {
	object bool
	count  int
	keyed  bool // object: a key was written and awaits its value
}

// Writer accumulates one compact JSON value. Containers are only opened
// through Object and Array, which always close what they open. A Writer is
// not safe for concurrent use.
type Writer struct {
	buf   bytes.Buffer
	stack []scope
	done  bool
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer { return &Writer{} }

// Object opens an object scope, runs fn to fill it and closes the scope,
// whether fn succeeds or not.
func (w *Writer) Object(fn func() error) (err error) {
	if err := w.open(true); err != nil {
		return err
	}
	defer func() {
		if cerr := w.close(); err == nil {
			err = cerr
		}
	}()
	return fn()
}

// Array opens an array scope, runs fn to fill it and closes the scope,
// whether fn succeeds or not.
func (w *Writer) Array(fn func() error) (err error) {
	if err := w.open(false); err != nil {
		return err
	}
	defer func() {
		if cerr := w.close(); err == nil {
			err = cerr
		}
	}()
	return fn()
}

// Key writes an object member name. The next emitted value belongs to it.
func (w *Writer) Key(name string) error {
	n := len(w.stack)
	if n == 0 || !w.stack[n-1].object {
		return fmt.Errorf("%w: key %q outside an object", ErrWriterState, name)
	}
	top := &w.stack[n-1]
	if top.keyed {
		return fmt.Errorf("%w: key %q follows a key without value", ErrWriterState, name)
	}
	if top.count > 0 {
		w.buf.WriteByte(',')
	}
	if err := w.quoted(name); err != nil {
		return err
	}
	w.buf.WriteByte(':')
	top.keyed = true
	return nil
}

// String writes a JSON string.
func (w *Writer) String(s string) error {
	if err := w.beforeValue(); err != nil {
		return err
	}
	return w.quoted(s)
}

// Integer writes an integer.
func (w *Writer) Integer(i int64) error {
	if err := w.beforeValue(); err != nil {
		return err
	}
	w.buf.WriteString(strconv.FormatInt(i, 10))
	return nil
}

// Number writes n verbatim. n must be a valid JSON number literal.
func (w *Writer) Number(n json.Number) error {
	if !gojson.Valid([]byte(n)) || !isNumberLiteral(n) {
		return fmt.Errorf("wirebind: invalid number literal %q", string(n))
	}
	if err := w.beforeValue(); err != nil {
		return err
	}
	w.buf.WriteString(string(n))
	return nil
}

// Float writes a float64 using the shortest representation that round-trips.
// NaN and infinities have no JSON form and are rejected.
func (w *Writer) Float(f float64) error {
	b, err := gojson.Marshal(f)
	if err != nil {
		return fmt.Errorf("wirebind: float: %w", err)
	}
	if err := w.beforeValue(); err != nil {
		return err
	}
	w.buf.Write(b)
	return nil
}

// Bool writes true or false.
func (w *Writer) Bool(b bool) error {
	if err := w.beforeValue(); err != nil {
		return err
	}
	w.buf.WriteString(strconv.FormatBool(b))
	return nil
}

// Null writes null.
func (w *Writer) Null() error {
	if err := w.beforeValue(); err != nil {
		return err
	}
	w.buf.WriteString("null")
	return nil
}

// Raw writes a generic JSON value as produced by DecodeValue. Objects are
// written in sorted key order; numbers held as json.Number keep their text.
// json.RawMessage is copied after validation.
func (w *Writer) Raw(v any) error {
	switch t := v.(type) {
	case nil:
		return w.Null()
	case Any:
		return w.Raw(t.raw)
	case string:
		return w.String(t)
	case bool:
		return w.Bool(t)
	case json.Number:
		return w.Number(t)
	case float64:
		return w.Float(t)
	case float32:
		return w.Float(float64(t))
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		n, _ := parseInteger(t)
		if n.neg {
			return w.Number(json.Number(strconv.FormatInt(n.int64(), 10)))
		}
		return w.Number(json.Number(strconv.FormatUint(n.mag, 10)))
	case map[string]any:
		return w.Object(func() error {
			for _, k := range sortedKeys(t) {
				if err := w.Key(k); err != nil {
					return err
				}
				if err := w.Raw(t[k]); err != nil {
					return err
				}
			}
			return nil
		})
	case []any:
		return w.Array(func() error {
			for _, e := range t {
				if err := w.Raw(e); err != nil {
					return err
				}
			}
			return nil
		})
	case json.RawMessage:
		var compact bytes.Buffer
		if err := gojson.Compact(&compact, t); err != nil {
			return fmt.Errorf("wirebind: raw message: %w", err)
		}
		if err := w.beforeValue(); err != nil {
			return err
		}
		w.buf.Write(compact.Bytes())
		return nil
	default:
		return fmt.Errorf("wirebind: cannot write %T as a JSON value", v)
	}
}

// Bytes returns the JSON written so far. The slice is valid until the next
// write or Reset.
func (w *Writer) Bytes() []byte { return w.buf.Bytes() }

// WriteTo copies the written JSON to dst.
func (w *Writer) WriteTo(dst io.Writer) (int64, error) {
	n, err := dst.Write(w.buf.Bytes())
	return int64(n), err
}

// Reset discards everything written so the Writer can be reused.
func (w *Writer) Reset() {
	w.buf.Reset()
	w.stack = w.stack[:0]
	w.done = false
}

// Depth returns the number of open scopes.
func (w *Writer) Depth() int { return len(w.stack) }

// ---- internals ----

func (w *Writer) beforeValue() error {
	n := len(w.stack)
	if n == 0 {
		if w.done {
			return fmt.Errorf("%w: value after a complete document", ErrWriterState)
		}
		w.done = true
		return nil
	}
	top := &w.stack[n-1]
	if top.object {
		if !top.keyed {
			return fmt.Errorf("%w: object value without key", ErrWriterState)
		}
		top.keyed = false
		top.count++
		return nil
	}
	if top.count > 0 {
		w.buf.WriteByte(',')
	}
	top.count++
	return nil
}

func (w *Writer) open(object bool) error {
	if err := w.beforeValue(); err != nil {
		return err
	}
	if object {
		w.buf.WriteByte('{')
	} else {
		w.buf.WriteByte('[')
	}
	w.stack = append(w.stack, scope{object: object})
	return nil
}

func (w *Writer) close() error {
	n := len(w.stack)
	top := w.stack[n-1]
	w.stack = w.stack[:n-1]
	var err error
	if top.object {
		if top.keyed {
			// placeholder value so the object stays well-formed
			w.buf.WriteString("null")
			err = fmt.Errorf("%w: key without value at end of object", ErrWriterState)
		}
		w.buf.WriteByte('}')
	} else {
		w.buf.WriteByte(']')
	}
	return err
}

func (w *Writer) quoted(s string) error {
	b, err := gojson.MarshalNoEscape(s)
	if err != nil {
		return err
	}
	w.buf.Write(b)
	return nil
}

func isNumberLiteral(n json.Number) bool {
	if n == "" {
		return false
	}
	first, last := n[0], n[len(n)-1]
	return (first == '-' || isDigit(first)) && isDigit(last)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
