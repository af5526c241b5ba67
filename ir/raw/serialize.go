package raw

import (
	"bytes"
	"encoding/hex"
	"strconv"
	"strings"
)

// Serialize renders obj in file syntax. Dictionaries are written as
// "<< /K v /K2 v2 >>" in insertion order; streams get /Length prepended.
func Serialize(o Object) []byte {
	var b bytes.Buffer
	writeObject(&b, o)
	return b.Bytes()
}

func writeObject(b *bytes.Buffer, o Object) {
	switch v := o.(type) {
	case NameObj:
		b.WriteByte('/')
		b.WriteString(v.Value())
	case NumberObj:
		if v.IsInteger() {
			b.WriteString(strconv.FormatInt(v.Int(), 10))
		} else {
			b.WriteString(FormatNumber(v.Float()))
		}
	case NullObj:
		b.WriteString("null")
	case StringObj:
		if v.IsHex() {
			b.WriteByte('<')
			b.WriteString(strings.ToUpper(hex.EncodeToString(v.Value())))
			b.WriteByte('>')
			return
		}
		b.WriteByte('(')
		b.Write(EscapeLiteral(v.Value()))
		b.WriteByte(')')
	case *ArrayObj:
		b.WriteByte('[')
		for i, it := range v.Items {
			if i > 0 {
				b.WriteByte(' ')
			}
			writeObject(b, it)
		}
		b.WriteByte(']')
	case *DictObj:
		writeDict(b, v, nil)
	case *StreamObj:
		length := NumberInt(v.Length())
		writeDict(b, v.Dict, &length)
		b.WriteString("\nstream\n")
		b.Write(v.Data)
		b.WriteString("\nendstream")
	case RefObj:
		b.WriteString(strconv.Itoa(v.Ref().Num))
		b.WriteByte(' ')
		b.WriteString(strconv.Itoa(v.Ref().Gen))
		b.WriteString(" R")
	default:
		b.WriteString("null")
	}
}

func writeDict(b *bytes.Buffer, d *DictObj, length *NumberObj) {
	b.WriteString("<<")
	if length != nil {
		b.WriteString(" /Length ")
		writeObject(b, *length)
	}
	if d != nil {
		for _, k := range d.keys {
			if length != nil && k == "Length" {
				continue
			}
			b.WriteString(" /")
			b.WriteString(k)
			b.WriteByte(' ')
			writeObject(b, d.kv[k])
		}
	}
	b.WriteString(" >>")
}

// FormatNumber writes f with two decimals, dropping trailing zeros and a
// trailing decimal point: 12.50 -> "12.5", 612.00 -> "612".
func FormatNumber(f float64) string {
	s := strconv.FormatFloat(f, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" || s == "" {
		return "0"
	}
	return s
}

// EscapeLiteral prefixes every backslash and parenthesis with a backslash.
// All other bytes pass through unchanged.
func EscapeLiteral(p []byte) []byte {
	out := make([]byte, 0, len(p)+8)
	for _, c := range p {
		switch c {
		case '\\', '(', ')':
			out = append(out, '\\', c)
		default:
			out = append(out, c)
		}
	}
	return out
}
