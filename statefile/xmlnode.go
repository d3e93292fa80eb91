package statefile

import (
	"encoding/xml"
	"fmt"

	"github.com/threedepict/tomo/filter"
)

// xmlNode is a generic, tag-agnostic XML element used to read and
// write the <filtertree> and <stash> subtrees, whose element tags are
// data (a filter's TypeString), not known at compile time. Package
// inmap's emissions/slca/greet reader uses struct-tag-driven
// encoding/xml for its fixed schema; filtertree needs the same
// encoding/xml machinery but over a dynamic schema, so xmlNode
// implements xml.Marshaler/xml.Unmarshaler directly instead of relying
// on struct tags.
type xmlNode struct {
	XMLName xml.Name
	Attrs   map[string]string
	Kids    []xmlNode
}

func (n xmlNode) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = n.XMLName
	start.Attr = start.Attr[:0]
	for k, v := range n.Attrs {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: k}, Value: v})
	}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	for _, k := range n.Kids {
		if err := e.Encode(k); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}

func (n *xmlNode) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	n.XMLName = start.Name
	n.Attrs = make(map[string]string, len(start.Attr))
	for _, a := range start.Attr {
		n.Attrs[a.Name.Local] = a.Value
	}
	for {
		tok, err := d.Token()
		if err != nil {
			return fmt.Errorf("statefile: malformed <%s>: %w", start.Name.Local, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			var child xmlNode
			if err := d.DecodeElement(&child, &t); err != nil {
				return err
			}
			n.Kids = append(n.Kids, child)
		case xml.EndElement:
			return nil
		}
	}
}

// elementToXMLNode converts a filter.Element tree into the xmlNode
// shape encoding/xml needs to marshal a dynamic tag name.
func elementToXMLNode(e filter.Element) xmlNode {
	n := xmlNode{XMLName: xml.Name{Local: e.Tag}, Attrs: e.Attrs}
	for _, c := range e.Children {
		n.Kids = append(n.Kids, elementToXMLNode(c))
	}
	return n
}

// xmlNodeToElement is elementToXMLNode's inverse.
func xmlNodeToElement(n xmlNode) filter.Element {
	el := filter.Element{Tag: n.XMLName.Local, Attrs: n.Attrs}
	for _, k := range n.Kids {
		el.Children = append(el.Children, xmlNodeToElement(k))
	}
	return el
}
