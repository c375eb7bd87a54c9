package bind

import (
	"reflect"
	"strings"
)

// resolveStructKey resolves a struct field's wire key when none was supplied
// explicitly. Priority: json tag name > field name; "-" disables none here
// because fields are always declared explicitly.
func resolveStructKey(sf reflect.StructField) string {
	if jt := sf.Tag.Get("json"); jt != "" && jt != "-" {
		if i := strings.IndexByte(jt, ','); i >= 0 {
			if jt[:i] != "" {
				return jt[:i]
			}
			return sf.Name
		}
		return jt
	}
	return sf.Name
}
