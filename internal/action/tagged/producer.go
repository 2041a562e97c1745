package tagged

import (
	"fmt"
	"reflect"

	"github.com/davrosz/actionhttp/internal/action"
	"github.com/davrosz/actionhttp/internal/convert"
	"github.com/davrosz/actionhttp/internal/httpx"
)

// Routed declares an action's HTTP method and path template. Path segments of
// the form {name} are resolved from fields tagged `http:"path=name"`.
type Routed interface {
	Route() (method, path string)
}

// Producer builds helpers from `http` struct tags. The zero value is ready
// to use; pass it to dispatch.NewCore as the helper producer.
type Producer struct{}

func NewProducer() *Producer {
	return &Producer{}
}

// Produce compiles the helper for one action type. The type must be a struct
// pointer implementing Routed; anything else is a wiring defect.
func (p *Producer) Produce(t reflect.Type) (action.Helper, error) {
	if t == nil || t.Kind() != reflect.Pointer || t.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s", ErrNotStructPointer, t)
	}
	routed, ok := reflect.New(t.Elem()).Interface().(Routed)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotRouted, t)
	}
	method, path := routed.Route()

	specs, err := parseFields(t.Elem())
	if err != nil {
		return nil, err
	}
	return &tagHelper{
		actionType: t,
		method:     method,
		path:       path,
		specs:      specs,
	}, nil
}

// tagHelper is the compiled, immutable helper for one action type.
type tagHelper struct {
	actionType reflect.Type
	method     string
	path       string
	specs      []fieldSpec
}

func (h *tagHelper) FillRequest(b *httpx.RequestBuilder, act any) error {
	sv, err := h.structValue(act)
	if err != nil {
		return err
	}

	b.SetMethod(h.method)
	b.SetPath(h.path)
	for _, spec := range h.specs {
		if !spec.requestSide() {
			continue
		}
		fv := sv.Field(spec.index)
		switch spec.kind {
		case kindPath:
			b.ResolvePath(spec.name, renderValue(fv))
		case kindQuery:
			b.AddQuery(spec.name, renderValue(fv))
		case kindHeader:
			b.AddHeader(spec.name, renderValue(fv))
		case kindField:
			b.AddField(spec.name, renderValue(fv))
		case kindPart:
			if raw, ok := fv.Interface().([]byte); ok {
				b.AddPart(spec.name, spec.name, raw)
			} else {
				b.AddPart(spec.name, "", []byte(fv.String()))
			}
		case kindBody:
			if raw, ok := fv.Interface().([]byte); ok {
				b.SetRawBody(raw, "application/octet-stream")
			} else {
				b.SetBody(fv.Interface())
			}
		}
	}
	return nil
}

func (h *tagHelper) OnResponse(act any, resp *httpx.Response, conv convert.Converter) (any, error) {
	sv, err := h.structValue(act)
	if err != nil {
		return nil, err
	}

	for _, spec := range h.specs {
		if spec.requestSide() {
			continue
		}
		fv := sv.Field(spec.index)
		switch spec.kind {
		case kindStatus:
			if fv.Kind() == reflect.Bool {
				fv.SetBool(resp.Successful())
			} else {
				fv.SetInt(int64(resp.Status))
			}
		case kindSuccess:
			fv.SetBool(resp.Successful())
		case kindResponseHeader:
			fv.SetString(resp.Header.Get(spec.name))
		case kindResponse:
			if err := decodeResponseField(fv, resp, conv); err != nil {
				return nil, err
			}
		}
	}
	return act, nil
}

func (h *tagHelper) structValue(act any) (reflect.Value, error) {
	v := reflect.ValueOf(act)
	if v.Type() != h.actionType {
		return reflect.Value{}, fmt.Errorf("tagged: helper for %s got %T", h.actionType, act)
	}
	if v.IsNil() {
		return reflect.Value{}, fmt.Errorf("tagged: nil action of type %s", h.actionType)
	}
	return v.Elem(), nil
}

func decodeResponseField(fv reflect.Value, resp *httpx.Response, conv convert.Converter) error {
	switch fv.Interface().(type) {
	case []byte:
		fv.SetBytes(append([]byte(nil), resp.Body...))
		return nil
	case string:
		fv.SetString(string(resp.Body))
		return nil
	}
	return conv.Decode(resp.Body, fv.Addr().Interface())
}
