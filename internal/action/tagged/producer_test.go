package tagged

import (
	"bytes"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"reflect"
	"strings"
	"testing"

	"github.com/davrosz/actionhttp/internal/convert"
	"github.com/davrosz/actionhttp/internal/httpx"
)

type userBody struct {
	Name string `json:"name"`
}

type getUser struct {
	ID     string `http:"path=id"`
	Expand string `http:"query=expand"`
	Token  string `http:"header=Authorization"`

	Status int      `http:"status"`
	OK     bool     `http:"success"`
	ETag   string   `http:"responseHeader=ETag"`
	User   userBody `http:"response"`
}

func (getUser) Route() (string, string) { return "GET", "/users/{id}" }

type createUser struct {
	Body userBody `http:"body"`

	Status int `http:"status"`
}

func (createUser) Route() (string, string) { return "POST", "/users" }

type uploadAvatar struct {
	Avatar  []byte `http:"part=avatar"`
	Caption string `http:"part=caption"`

	Status int `http:"status"`
}

func (uploadAvatar) Route() (string, string) { return "POST", "/avatars" }

type formLogin struct {
	User string `http:"field=user"`
	Pass string `http:"field=pass"`
}

func (formLogin) Route() (string, string) { return "POST", "/login" }

func mustProduce(t *testing.T, v any) *tagHelper {
	t.Helper()
	helper, err := NewProducer().Produce(reflect.TypeOf(v))
	if err != nil {
		t.Fatalf("produce: %v", err)
	}
	return helper.(*tagHelper)
}

func TestProduceFillsPathQueryHeader(t *testing.T) {
	helper := mustProduce(t, &getUser{})

	act := &getUser{ID: "u 1", Expand: "teams", Token: "Bearer x"}
	b := httpx.NewRequestBuilder("http://api.test", convert.JSON{})
	if err := helper.FillRequest(b, act); err != nil {
		t.Fatalf("fill: %v", err)
	}
	req, err := b.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if req.Method != "GET" {
		t.Fatalf("method %q", req.Method)
	}
	if !strings.HasPrefix(req.URL, "http://api.test/users/u%201?") {
		t.Fatalf("path not resolved/escaped: %q", req.URL)
	}
	if !strings.Contains(req.URL, "expand=teams") {
		t.Fatalf("query missing: %q", req.URL)
	}
	if got := req.Header.Get("Authorization"); got != "Bearer x" {
		t.Fatalf("header %q", got)
	}
}

func TestProduceFillsJSONBody(t *testing.T) {
	helper := mustProduce(t, &createUser{})

	b := httpx.NewRequestBuilder("http://api.test", convert.JSON{})
	if err := helper.FillRequest(b, &createUser{Body: userBody{Name: "ada"}}); err != nil {
		t.Fatalf("fill: %v", err)
	}
	req, err := b.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if req.ContentType != "application/json" {
		t.Fatalf("content type %q", req.ContentType)
	}
	if string(req.Body) != `{"name":"ada"}` {
		t.Fatalf("body %q", req.Body)
	}
}

func TestProduceFillsFormFields(t *testing.T) {
	helper := mustProduce(t, &formLogin{})

	b := httpx.NewRequestBuilder("http://api.test", convert.JSON{})
	if err := helper.FillRequest(b, &formLogin{User: "ada", Pass: "s3cret"}); err != nil {
		t.Fatalf("fill: %v", err)
	}
	req, err := b.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if req.ContentType != "application/x-www-form-urlencoded" {
		t.Fatalf("content type %q", req.ContentType)
	}
	body := string(req.Body)
	if !strings.Contains(body, "user=ada") || !strings.Contains(body, "pass=s3cret") {
		t.Fatalf("form body %q", body)
	}
}

func TestProduceFillsMultipartParts(t *testing.T) {
	helper := mustProduce(t, &uploadAvatar{})

	b := httpx.NewRequestBuilder("http://api.test", convert.JSON{})
	act := &uploadAvatar{Avatar: []byte{0x89, 0x50, 0x4e, 0x47}, Caption: "me"}
	if err := helper.FillRequest(b, act); err != nil {
		t.Fatalf("fill: %v", err)
	}
	req, err := b.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	mediaType, params, err := mime.ParseMediaType(req.ContentType)
	if err != nil {
		t.Fatalf("content type %q: %v", req.ContentType, err)
	}
	if mediaType != "multipart/form-data" {
		t.Fatalf("media type %q", mediaType)
	}

	reader := multipart.NewReader(bytes.NewReader(req.Body), params["boundary"])
	form, err := reader.ReadForm(1 << 20)
	if err != nil {
		t.Fatalf("read form: %v", err)
	}
	defer form.RemoveAll()

	files := form.File["avatar"]
	if len(files) != 1 || files[0].Filename != "avatar" {
		t.Fatalf("avatar part missing: %+v", form.File)
	}
	f, err := files[0].Open()
	if err != nil {
		t.Fatalf("open avatar part: %v", err)
	}
	data, err := io.ReadAll(f)
	f.Close()
	if err != nil {
		t.Fatalf("read avatar part: %v", err)
	}
	if !bytes.Equal(data, act.Avatar) {
		t.Fatalf("avatar bytes %v", data)
	}
	if got := form.Value["caption"]; len(got) != 1 || got[0] != "me" {
		t.Fatalf("caption part %v", got)
	}
}

func TestOnResponseMapsStatusHeadersAndBody(t *testing.T) {
	helper := mustProduce(t, &getUser{})

	act := &getUser{}
	resp := &httpx.Response{
		Status: http.StatusOK,
		Reason: "200 OK",
		Header: http.Header{"Etag": []string{`"v7"`}},
		Body:   []byte(`{"name":"ada"}`),
	}

	out, err := helper.OnResponse(act, resp, convert.JSON{})
	if err != nil {
		t.Fatalf("on response: %v", err)
	}
	mapped := out.(*getUser)
	if mapped.Status != http.StatusOK || !mapped.OK {
		t.Fatalf("status mapping: %+v", mapped)
	}
	if mapped.ETag != `"v7"` {
		t.Fatalf("response header mapping: %q", mapped.ETag)
	}
	if mapped.User.Name != "ada" {
		t.Fatalf("body mapping: %+v", mapped.User)
	}
}

func TestOnResponseDecodeFaultSurfaces(t *testing.T) {
	helper := mustProduce(t, &getUser{})

	resp := &httpx.Response{
		Status: http.StatusOK,
		Header: http.Header{},
		Body:   []byte(`not json`),
	}
	if _, err := helper.OnResponse(&getUser{}, resp, convert.JSON{}); err == nil {
		t.Fatalf("expected decode fault")
	}
}

type notRouted struct {
	ID string `http:"path=id"`
}

type badTag struct {
	ID string `http:"frag=id"`
}

func (badTag) Route() (string, string) { return "GET", "/" }

type intPart struct {
	N int `http:"part=n"`
}

func (intPart) Route() (string, string) { return "POST", "/" }

type twoBodies struct {
	A userBody `http:"body"`
	B userBody `http:"body"`
}

func (twoBodies) Route() (string, string) { return "POST", "/" }

func TestProduceRejectsBadShapes(t *testing.T) {
	p := NewProducer()

	if _, err := p.Produce(reflect.TypeOf(getUser{})); !errors.Is(err, ErrNotStructPointer) {
		t.Fatalf("value type: %v", err)
	}
	if _, err := p.Produce(reflect.TypeOf(&notRouted{})); !errors.Is(err, ErrNotRouted) {
		t.Fatalf("unrouted type: %v", err)
	}
	if _, err := p.Produce(reflect.TypeOf(&badTag{})); !errors.Is(err, ErrUnknownTag) {
		t.Fatalf("unknown tag: %v", err)
	}
	if _, err := p.Produce(reflect.TypeOf(&twoBodies{})); !errors.Is(err, ErrDuplicateBody) {
		t.Fatalf("duplicate body: %v", err)
	}
	if _, err := p.Produce(reflect.TypeOf(&intPart{})); !errors.Is(err, ErrUnsupportedField) {
		t.Fatalf("int part: %v", err)
	}
}

type ratioQuery struct {
	Ratio float32 `http:"query=ratio"`
}

func (ratioQuery) Route() (string, string) { return "GET", "/metrics" }

func TestRenderValueKeepsFloat32Precision(t *testing.T) {
	helper := mustProduce(t, &ratioQuery{})

	b := httpx.NewRequestBuilder("http://api.test", convert.JSON{})
	if err := helper.FillRequest(b, &ratioQuery{Ratio: 0.1}); err != nil {
		t.Fatalf("fill: %v", err)
	}
	req, err := b.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !strings.HasSuffix(req.URL, "?ratio=0.1") {
		t.Fatalf("float32 query rendered as %q", req.URL)
	}
}

func TestFillRequestRejectsForeignAction(t *testing.T) {
	helper := mustProduce(t, &getUser{})

	b := httpx.NewRequestBuilder("http://api.test", convert.JSON{})
	if err := helper.FillRequest(b, &createUser{}); err == nil {
		t.Fatalf("expected type mismatch error")
	}
}
