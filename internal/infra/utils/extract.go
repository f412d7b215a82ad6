package utils

import (
	"fmt"
	"reflect"

	"github.com/thoas/go-funk"
)

// ExtractStringValue resolves a dotted property path on msg. Values that are not
// strings are formatted with %v; a missing property yields "".
func ExtractStringValue(msg any, propertyName string) string {
	value := extract(msg, propertyName)
	if value == nil {
		return ""
	}
	if s, ok := value.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%v", value)
}

// ExtractFloat64Value resolves a dotted property path on msg as a number.
// Booleans count as 1 and 0. Anything else yields 0.
func ExtractFloat64Value(msg any, propertyName string) float64 {
	value := extract(msg, propertyName)
	if value == nil {
		return 0
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint())
	case reflect.Bool:
		if rv.Bool() {
			return 1
		}
	}
	return 0
}

func extract(msg any, propertyName string) any {
	if propertyName == "" || msg == nil {
		return nil
	}
	return funk.Get(msg, propertyName)
}
