package convert

import (
	"errors"
	"testing"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestJSONRoundTrip(t *testing.T) {
	data, contentType, err := JSON{}.Encode(payload{Name: "ada", Count: 3})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if contentType != "application/json" {
		t.Fatalf("content type %q", contentType)
	}

	var out payload
	if err := (JSON{}).Decode(data, &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Name != "ada" || out.Count != 3 {
		t.Fatalf("round trip lost data: %+v", out)
	}
}

func TestJSONEncodeFault(t *testing.T) {
	if _, _, err := (JSON{}).Encode(make(chan int)); err == nil {
		t.Fatalf("expected encode fault")
	}
}

func TestJSONDecodeNilTarget(t *testing.T) {
	if err := (JSON{}).Decode([]byte(`{}`), nil); !errors.Is(err, ErrNilTarget) {
		t.Fatalf("expected ErrNilTarget, got %v", err)
	}
}

func TestJSONDecodeFault(t *testing.T) {
	var out payload
	if err := (JSON{}).Decode([]byte(`{`), &out); err == nil {
		t.Fatalf("expected decode fault")
	}
}
