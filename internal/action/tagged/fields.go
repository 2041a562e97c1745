package tagged

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

const tagName = "http"

var (
	ErrNotRouted        = errors.New("tagged: action type does not implement Routed")
	ErrNotStructPointer = errors.New("tagged: action type must be a struct pointer")
	ErrUnknownTag       = errors.New("tagged: unknown tag")
	ErrUnsupportedField = errors.New("tagged: unsupported field type")
	ErrDuplicateBody    = errors.New("tagged: multiple body fields")
)

type tagKind int

const (
	kindPath tagKind = iota
	kindQuery
	kindHeader
	kindField
	kindPart
	kindBody
	kindStatus
	kindSuccess
	kindResponse
	kindResponseHeader
)

// fieldSpec binds one struct field to a request or response slot.
type fieldSpec struct {
	index int
	kind  tagKind
	name  string
}

func (s fieldSpec) requestSide() bool {
	switch s.kind {
	case kindPath, kindQuery, kindHeader, kindField, kindPart, kindBody:
		return true
	}
	return false
}

func parseFields(t reflect.Type) ([]fieldSpec, error) {
	var (
		specs   []fieldSpec
		hasBody bool
	)
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		raw, ok := field.Tag.Lookup(tagName)
		if !ok || raw == "-" {
			continue
		}
		if !field.IsExported() {
			return nil, fmt.Errorf("%w: %s.%s is unexported", ErrUnsupportedField, t, field.Name)
		}

		spec, err := parseTag(raw)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", t, field.Name, err)
		}
		spec.index = i

		if spec.kind == kindBody {
			if hasBody {
				return nil, fmt.Errorf("%w: %s", ErrDuplicateBody, t)
			}
			hasBody = true
		}
		if err := checkFieldType(field.Type, spec.kind); err != nil {
			return nil, fmt.Errorf("%s.%s: %w", t, field.Name, err)
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

func parseTag(raw string) (fieldSpec, error) {
	key, arg, hasArg := strings.Cut(strings.TrimSpace(raw), "=")
	key = strings.TrimSpace(key)
	arg = strings.TrimSpace(arg)

	named := func(kind tagKind) (fieldSpec, error) {
		if !hasArg || arg == "" {
			return fieldSpec{}, fmt.Errorf("%w: %q requires a name", ErrUnknownTag, key)
		}
		return fieldSpec{kind: kind, name: arg}, nil
	}
	bare := func(kind tagKind) (fieldSpec, error) {
		if hasArg {
			return fieldSpec{}, fmt.Errorf("%w: %q takes no name", ErrUnknownTag, key)
		}
		return fieldSpec{kind: kind}, nil
	}

	switch key {
	case "path":
		return named(kindPath)
	case "query":
		return named(kindQuery)
	case "header":
		return named(kindHeader)
	case "field":
		return named(kindField)
	case "part":
		return named(kindPart)
	case "responseHeader":
		return named(kindResponseHeader)
	case "body":
		return bare(kindBody)
	case "status":
		return bare(kindStatus)
	case "success":
		return bare(kindSuccess)
	case "response":
		return bare(kindResponse)
	default:
		return fieldSpec{}, fmt.Errorf("%w: %q", ErrUnknownTag, key)
	}
}

func checkFieldType(ft reflect.Type, kind tagKind) error {
	switch kind {
	case kindPath, kindQuery, kindHeader, kindField:
		if !stringable(ft) {
			return fmt.Errorf("%w: %s cannot render as a request value", ErrUnsupportedField, ft)
		}
	case kindStatus:
		switch ft.Kind() {
		case reflect.Int, reflect.Int32, reflect.Int64, reflect.Bool:
		default:
			return fmt.Errorf("%w: status wants int or bool, got %s", ErrUnsupportedField, ft)
		}
	case kindPart:
		if ft.Kind() != reflect.String && ft != byteSliceType {
			return fmt.Errorf("%w: part wants string or []byte, got %s", ErrUnsupportedField, ft)
		}
	case kindSuccess:
		if ft.Kind() != reflect.Bool {
			return fmt.Errorf("%w: success wants bool, got %s", ErrUnsupportedField, ft)
		}
	case kindResponseHeader:
		if ft.Kind() != reflect.String {
			return fmt.Errorf("%w: responseHeader wants string, got %s", ErrUnsupportedField, ft)
		}
	case kindBody, kindResponse:
		// Any converter-encodable value; raw []byte and string short-circuit.
	}
	return nil
}

var (
	stringerType  = reflect.TypeOf((*fmt.Stringer)(nil)).Elem()
	byteSliceType = reflect.TypeOf([]byte(nil))
)

func stringable(ft reflect.Type) bool {
	switch ft.Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return ft.Implements(stringerType)
}

func renderValue(v reflect.Value) string {
	switch v.Kind() {
	case reflect.String:
		return v.String()
	case reflect.Bool:
		return strconv.FormatBool(v.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, v.Type().Bits())
	}
	if s, ok := v.Interface().(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprint(v.Interface())
}
