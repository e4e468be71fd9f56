package compose

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/dgallion1/nbweave/internal/sectiontree"
)

// Skeleton derives a selection mirroring a template's structure, for the
// user to prune and annotate. Every section appears with its own name as
// the title, an empty replace map, and the given all flag.
func Skeleton(sections []*sectiontree.Section, includeAll bool) Selection {
	var sel Selection
	for _, sec := range sections {
		sel = append(sel, ChildEntry{
			Name: sec.Name,
			Entry: &Entry{
				Title:    sec.Name,
				Replace:  []ReplacePair{},
				All:      includeAll,
				Children: Skeleton(sec.Children, includeAll),
			},
		})
	}
	return sel
}

// MarshalJSON writes entries in the authored order: title, replace, all,
// then child sections. Stock map marshaling would scramble the child order
// the composer depends on.
func (s Selection) MarshalJSON() ([]byte, error) {
	return marshalChildren([]ChildEntry(s))
}

func (e *Entry) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	if err := writeMember(&buf, keyTitle, e.Title); err != nil {
		return nil, err
	}
	buf.WriteByte(',')
	replace, err := marshalReplace(e.Replace)
	if err != nil {
		return nil, err
	}
	if err := writeRawMember(&buf, keyReplace, replace); err != nil {
		return nil, err
	}
	buf.WriteByte(',')
	if err := writeMember(&buf, keyAll, e.All); err != nil {
		return nil, err
	}
	for _, child := range e.Children {
		data, err := json.Marshal(child.Entry)
		if err != nil {
			return nil, err
		}
		buf.WriteByte(',')
		if err := writeRawMember(&buf, child.Name, data); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func marshalChildren(children []ChildEntry) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, child := range children {
		data, err := json.Marshal(child.Entry)
		if err != nil {
			return nil, err
		}
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeRawMember(&buf, child.Name, data); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func marshalReplace(pairs []ReplacePair) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range pairs {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeMember(&buf, p.Old, p.New); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeMember(buf *bytes.Buffer, key string, val any) error {
	data, err := json.Marshal(val)
	if err != nil {
		return err
	}
	return writeRawMember(buf, key, data)
}

func writeRawMember(buf *bytes.Buffer, key string, val []byte) error {
	k, err := json.Marshal(key)
	if err != nil {
		return err
	}
	buf.Write(k)
	buf.WriteByte(':')
	buf.Write(val)
	return nil
}

// SaveSelection writes a selection file with the original tool's 4-space
// indentation.
func SaveSelection(path string, sel Selection) error {
	compact, err := json.Marshal(sel)
	if err != nil {
		return fmt.Errorf("marshal selection: %w", err)
	}
	var out bytes.Buffer
	if err := json.Indent(&out, compact, "", "    "); err != nil {
		return fmt.Errorf("indent selection: %w", err)
	}
	out.WriteByte('\n')
	if err := os.WriteFile(path, out.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write selection: %w", err)
	}
	return nil
}
