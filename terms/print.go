package terms

import (
	"encoding/hex"
	"io"
	"strconv"
	"strings"
)

func (t Term) String() string {
	if t.n == nil {
		return "<nil>"
	}
	if !t.Valid() {
		return "<stale>"
	}
	var b strings.Builder
	Fprint(&b, t)
	return b.String()
}

type printItem struct {
	term Term
	text string
}

// Fprint writes the textual form of t: applications as f(a,b), lists as [a,b], integers in decimal,
// blobs as #hex and placeholders as <t>. Names that need quoting are written as Go-style quoted strings.
func Fprint(w io.Writer, t Term) error {
	sw, ok := w.(io.StringWriter)
	if !ok {
		sw = &stringWriter{w: w}
	}
	stack := []printItem{{term: t}}
	for len(stack) > 0 {
		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if item.text != "" {
			if _, err := sw.WriteString(item.text); err != nil {
				return err
			}
			continue
		}

		n := item.term.node()
		var text string
		var pending []printItem
		switch n.kind {

		case KindInt:
			text = strconv.FormatInt(int64(n.bits), 10)

		case KindReal:
			text = strconv.FormatFloat(item.term.Real(), 'g', -1, 64)
			if !strings.ContainsAny(text, ".eEnN") {
				text += ".0"
			}

		case KindBlob:
			text = "#" + hex.EncodeToString(n.blob)

		case KindEmptyList:
			text = "[]"

		case KindPlaceholder:
			text = "<"
			pending = append(pending, printItem{term: n.args[0]}, printItem{text: ">"})

		case KindList:
			text = "["
			for l := item.term; !l.IsEmptyList(); l = l.Tail() {
				if len(pending) > 0 {
					pending = append(pending, printItem{text: ","})
				}
				pending = append(pending, printItem{term: l.Head()})
			}
			pending = append(pending, printItem{text: "]"})

		case KindAppl:
			text = symbolText(n.sym)
			if len(n.args) > 0 {
				text += "("
				for i, arg := range n.args {
					if i > 0 {
						pending = append(pending, printItem{text: ","})
					}
					pending = append(pending, printItem{term: arg})
				}
				pending = append(pending, printItem{text: ")"})
			}
		}

		if _, err := sw.WriteString(text); err != nil {
			return err
		}
		for i := len(pending) - 1; i >= 0; i-- {
			stack = append(stack, pending[i])
		}
	}
	return nil
}

func symbolText(sym *Symbol) string {
	if sym.quoted {
		return strconv.Quote(sym.name)
	}
	return sym.name
}

type stringWriter struct {
	w io.Writer
}

func (s *stringWriter) WriteString(str string) (int, error) {
	return s.w.Write([]byte(str))
}
