package score

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// node is a generic element tree, close to what the document looks like on
// disk. Text content is discarded.
type node struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Children []node     `xml:",any"`
}

func (n node) tag() string {
	return n.XMLName.Local
}

func (n node) attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

func (n node) stringAttr(path, name string) (string, error) {
	v, ok := n.attr(name)
	if !ok {
		return "", errors.Wrapf(ErrAttribute, "%s: missing %q", path, name)
	}
	return v, nil
}

func (n node) intAttr(path, name string) (int, error) {
	v, err := n.stringAttr(path, name)
	if err != nil {
		return 0, err
	}
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, errors.Wrapf(ErrAttribute, "%s: %q is not an integer: %q", path, name, v)
	}
	return i, nil
}

func (n node) floatAttr(path, name string) (float64, error) {
	v, err := n.stringAttr(path, name)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, errors.Wrapf(ErrAttribute, "%s: %q is not a number: %q", path, name, v)
	}
	return f, nil
}

func childPath(parent string, tag string, i int) string {
	return fmt.Sprintf("%s/%s[%d]", parent, tag, i)
}
