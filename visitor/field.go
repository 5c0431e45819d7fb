package visitor

import (
	"fmt"
	"reflect"

	"github.com/viant/tagly/format"
	"github.com/viant/tagly/format/text"
)

// Field represents resolved struct field naming
type Field struct {
	Name      string
	OmitEmpty bool
	Ignore    bool
}

// ResolveField resolves field output name from format tag, falling back to the supplied case format
func ResolveField(name string, tag reflect.StructTag, caseFormat text.CaseFormat) (*Field, error) {
	fTag, err := format.Parse(tag)
	if err != nil {
		return nil, fmt.Errorf("invalid format tag on field %v: %w", name, err)
	}
	ret := &Field{Name: name}
	if fTag == nil {
		fTag = &format.Tag{}
	}
	ret.Ignore = fTag.Ignore
	ret.OmitEmpty = fTag.Omitempty
	named := &format.Tag{Name: fTag.Name, CaseFormat: fTag.CaseFormat}
	if named.Name == "" {
		named.Name = name
		if named.CaseFormat == "" {
			named.CaseFormat = string(caseFormat)
		}
	}
	if named.CaseFormat == "" {
		ret.Name = named.Name
		return ret, nil
	}
	if resolved := named.CaseFormatName(""); resolved != "" {
		ret.Name = resolved
	}
	return ret, nil
}
