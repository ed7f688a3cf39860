// Package metadata flattens the proceso.xml tree into a tag -> value mapping.
package metadata

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"

	"ushay-etl/internal/domain"
	"ushay-etl/internal/fielddecode"
	pkgerrors "ushay-etl/pkg/errors"
)

// element is one visited element, recorded in pre-order.
type element struct {
	tag      string
	text     strings.Builder
	sawChild bool
}

// Extract parses xmlBytes and returns every element's decoded direct text,
// keyed by local tag name. Elements are visited in document order (pre-order,
// any depth) and a later element overwrites an earlier one with the same tag.
// Empty values and values that only decode to bytes are dropped.
//
// Any XML syntax error fails the whole extraction.
func Extract(xmlBytes []byte) (*domain.Fields, error) {
	visited, err := walk(xmlBytes)
	if err != nil {
		return nil, pkgerrors.NewMetadataParseError(err)
	}

	fields := domain.NewFields()
	for _, el := range visited {
		txt := strings.TrimSpace(el.text.String())
		if txt == "" {
			continue
		}
		val, ok := fielddecode.Decode(txt).Value()
		if !ok || val == "" {
			continue
		}
		fields.Set(el.tag, val)
	}
	return fields, nil
}

var utf8BOM = []byte("\xef\xbb\xbf")

func walk(xmlBytes []byte) ([]*element, error) {
	// encoding/xml reports a byte order mark as character data before the root
	dec := xml.NewDecoder(bytes.NewReader(bytes.TrimPrefix(xmlBytes, utf8BOM)))
	dec.CharsetReader = charset.NewReaderLabel

	var (
		visited  []*element
		stack    []*element
		rootDone bool
	)

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if len(stack) == 0 && rootDone {
				return nil, fmt.Errorf("junk after document element: <%s>", t.Name.Local)
			}
			if len(stack) > 0 {
				stack[len(stack)-1].sawChild = true
			}
			el := &element{tag: t.Name.Local}
			visited = append(visited, el)
			stack = append(stack, el)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				rootDone = true
			}
		case xml.CharData:
			if len(stack) == 0 {
				if len(bytes.TrimSpace(t)) > 0 {
					return nil, errors.New("text outside document element")
				}
				continue
			}
			// only the text before the first child belongs to an element
			if top := stack[len(stack)-1]; !top.sawChild {
				top.text.Write(t)
			}
		}
	}

	if len(visited) == 0 {
		return nil, errors.New("no element found")
	}
	return visited, nil
}
