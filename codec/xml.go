// Copyright 2026 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package codec

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cast"
)

// TypeXML is a constant representing the "xml" encoding type.
const TypeXML Type = "xml"

// XML element and attribute names.
const (
	xmlRoot  = "value"
	xmlField = "field"
	xmlItem  = "item"
	xmlType  = "type"
	xmlName  = "name"
)

// XML value types, written in the type attribute.
const (
	xmlNull       = "null"
	xmlPrimitive  = "primitive"
	xmlCollection = "collection"
	xmlObject     = "object"
)

// ErrMalformedXML is returned when an XML document does not follow the
// element layout written by [XMLCodec].
var ErrMalformedXML = errors.New("malformed xml value")

// XMLCodec implements XML encoding. Every element carries a type attribute;
// object members are field elements with a name attribute and collection
// members are item elements:
//
//	<value type="object">
//	  <field name="x" type="primitive">1</field>
//	  <field name="tags" type="collection"><item type="primitive">a</item></field>
//	</value>
type XMLCodec struct{}

// Encode encodes the given value 'v' to an XML document.
func (XMLCodec) Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := xml.NewEncoder(&buf)
	if err := encodeXML(enc, xml.StartElement{Name: xml.Name{Local: xmlRoot}}, v); err != nil {
		return nil, err
	}
	if err := enc.Flush(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func encodeXML(enc *xml.Encoder, start xml.StartElement, v any) error {
	typed := func(kind string) xml.StartElement {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: xmlType}, Value: kind})
		return start
	}

	switch n := v.(type) {
	case nil:
		return encodeTokens(enc, typed(xmlNull), start.End())

	case string:
		return encodeTokens(enc, typed(xmlPrimitive), xml.CharData(n), start.End())

	case []any:
		if err := enc.EncodeToken(typed(xmlCollection)); err != nil {
			return err
		}
		for _, e := range n {
			if err := encodeXML(enc, xml.StartElement{Name: xml.Name{Local: xmlItem}}, e); err != nil {
				return err
			}
		}

		return enc.EncodeToken(start.End())

	case map[string]any:
		if err := enc.EncodeToken(typed(xmlObject)); err != nil {
			return err
		}
		keys := make([]string, 0, len(n))
		for k := range n {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			field := xml.StartElement{
				Name: xml.Name{Local: xmlField},
				Attr: []xml.Attr{{Name: xml.Name{Local: xmlName}, Value: k}},
			}
			if err := encodeXML(enc, field, n[k]); err != nil {
				return err
			}
		}

		return enc.EncodeToken(start.End())

	default:
		s, err := cast.ToStringE(v)
		if err != nil {
			return fmt.Errorf("%w: %T", ErrUnsupportedValue, v)
		}

		return encodeXML(enc, start, s)
	}
}

func encodeTokens(enc *xml.Encoder, tokens ...xml.Token) error {
	for _, t := range tokens {
		if err := enc.EncodeToken(t); err != nil {
			return err
		}
	}

	return nil
}

// Decode decodes an XML document into the value pointed to by v, which must
// be a *any.
func (XMLCodec) Decode(data []byte, v any) error {
	out, err := target(v)
	if err != nil {
		return err
	}

	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return fmt.Errorf("%w: missing %s element", ErrMalformedXML, xmlRoot)
			}

			return err
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if start.Name.Local != xmlRoot {
			return fmt.Errorf("%w: root element %s, want %s", ErrMalformedXML, start.Name.Local, xmlRoot)
		}

		val, err := decodeXML(dec, start)
		if err != nil {
			return err
		}
		*out = val

		return nil
	}
}

func decodeXML(dec *xml.Decoder, start xml.StartElement) (any, error) {
	kind := attr(start, xmlType)
	if kind == "" {
		kind = xmlPrimitive
	}

	switch kind {
	case xmlNull:
		return nil, dec.Skip()

	case xmlPrimitive:
		var sb strings.Builder
		for {
			tok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			switch t := tok.(type) {
			case xml.CharData:
				sb.Write(t)
			case xml.StartElement:
				return nil, fmt.Errorf("%w: element %s inside primitive", ErrMalformedXML, t.Name.Local)
			case xml.EndElement:
				return sb.String(), nil
			}
		}

	case xmlCollection:
		out := []any{}
		for {
			child, done, err := nextChild(dec, xmlItem)
			if err != nil {
				return nil, err
			}
			if done {
				return out, nil
			}
			v, err := decodeXML(dec, child)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}

	case xmlObject:
		out := map[string]any{}
		for {
			child, done, err := nextChild(dec, xmlField)
			if err != nil {
				return nil, err
			}
			if done {
				return out, nil
			}
			v, err := decodeXML(dec, child)
			if err != nil {
				return nil, err
			}
			out[attr(child, xmlName)] = v
		}

	default:
		return nil, fmt.Errorf("%w: unknown type %q", ErrMalformedXML, kind)
	}
}

// nextChild returns the next child element, which must be named name, or
// done when the parent element ends. Text between children is ignored.
func nextChild(dec *xml.Decoder, name string) (xml.StartElement, bool, error) {
	for {
		tok, err := dec.Token()
		if err != nil {
			return xml.StartElement{}, false, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local != name {
				return xml.StartElement{}, false, fmt.Errorf("%w: element %s, want %s", ErrMalformedXML, t.Name.Local, name)
			}

			return t, false, nil
		case xml.EndElement:
			return xml.StartElement{}, true, nil
		}
	}
}

func attr(start xml.StartElement, name string) string {
	for _, a := range start.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}

	return ""
}
