package format

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/beevik/etree"
)

// xmlRoot is the element written around serialized documents. Any root
// element name is accepted when parsing.
const xmlRoot = "config"

type xmlAdapter struct{}

// XML returns the adapter for .xml files. Child elements of the root become
// sections or values: an element with children or attributes is a section,
// a leaf element's trimmed text is a string value, and repeated sibling
// elements form a list.
func XML() Adapter { return xmlAdapter{} }

func (xmlAdapter) Name() string         { return "XML" }
func (xmlAdapter) Extensions() []string { return []string{".xml"} }

func (xmlAdapter) Parse(data []byte) (Document, error) {
	if strings.TrimSpace(string(data)) == "" {
		return Document{}, nil
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, &ParseError{Format: "XML", Err: err}
	}
	root := doc.Root()
	if root == nil {
		return nil, &ParseError{Format: "XML", Err: errors.New("no root element")}
	}
	return Document(elementMap(root)), nil
}

func elementMap(el *etree.Element) map[string]any {
	out := make(map[string]any, len(el.Attr)+len(el.ChildElements()))
	for _, attr := range el.Attr {
		out[attr.Key] = attr.Value
	}
	for _, child := range el.ChildElements() {
		value := elementValue(child)
		switch prev := out[child.Tag].(type) {
		case nil:
			out[child.Tag] = value
		case []any:
			out[child.Tag] = append(prev, value)
		default:
			out[child.Tag] = []any{prev, value}
		}
	}
	return out
}

func elementValue(el *etree.Element) any {
	if len(el.ChildElements()) == 0 && len(el.Attr) == 0 {
		return strings.TrimSpace(el.Text())
	}
	return elementMap(el)
}

func (xmlAdapter) Marshal(doc Document) ([]byte, error) {
	out := etree.NewDocument()
	out.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := out.CreateElement(xmlRoot)
	if err := writeElements(root, doc); err != nil {
		return nil, err
	}
	out.Indent(2)
	return out.WriteToBytes()
}

func writeElements(parent *etree.Element, values map[string]any) error {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := writeElement(parent, k, values[k]); err != nil {
			return err
		}
	}
	return nil
}

func writeElement(parent *etree.Element, name string, v any) error {
	if name == "" || strings.ContainsAny(name, " <>&\"'") {
		return fmt.Errorf("key %q is not a valid XML element name", name)
	}
	switch t := v.(type) {
	case map[string]any:
		return writeElements(parent.CreateElement(name), t)
	case Document:
		return writeElements(parent.CreateElement(name), t)
	case []any:
		for _, item := range t {
			if err := writeElement(parent, name, item); err != nil {
				return err
			}
		}
	case []string:
		for _, item := range t {
			parent.CreateElement(name).SetText(item)
		}
	default:
		parent.CreateElement(name).SetText(fmt.Sprint(v))
	}
	return nil
}
