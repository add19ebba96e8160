package blueprint

import (
	"errors"
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/djskncxm/DuckRequest/pkg/httpc"
)

var urlComparer = cmp.Comparer(func(a, b *url.URL) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.String() == b.String()
})

func strPtr(s string) *string { return &s }

func full(style Style) Blueprint {
	return Blueprint{
		Name:    "all",
		Style:   style,
		Method:  "HEAD",
		URL:     "https://example.io",
		Headers: map[string]string{"Content-Type": "application/json"},
		Path:    strPtr("/all"),
	}
}

func TestBuildStylesAgree(t *testing.T) {
	want := &httpc.Request{
		Method:  httpc.Head{},
		URL:     httpc.ParseURL("https://example.io"),
		Headers: map[string]string{"Content-Type": "application/json"},
		Path:    httpc.String("/all"),
	}
	for _, style := range []Style{StyleBuilder, StyleClosure, StyleKeyPath, "KeyPath"} {
		t.Run(string(style), func(t *testing.T) {
			got, err := full(style).Build()
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(want, got, urlComparer); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuildLeavesAbsentFieldsUnset(t *testing.T) {
	for _, style := range []Style{StyleClosure, StyleKeyPath} {
		t.Run(string(style), func(t *testing.T) {
			got, err := Blueprint{Style: style, URL: "https://example.io"}.Build()
			if err != nil {
				t.Fatal(err)
			}
			if got.Method != nil || got.Headers != nil || got.Path != nil {
				t.Errorf("unexpected fields set: %+v", got)
			}
			if got.URL == nil {
				t.Error("URL not set")
			}
		})
	}
}

func TestBuildMethodPayload(t *testing.T) {
	got, err := Blueprint{
		Method: "get",
		Query:  []Query{{Name: "q", Value: strPtr("duck")}, {Name: "flag"}},
	}.Build()
	if err != nil {
		t.Fatal(err)
	}
	want := httpc.Get{Query: []httpc.QueryItem{{Name: "q", Value: strPtr("duck")}, {Name: "flag"}}}
	if diff := cmp.Diff(httpc.Method(want), got.Method); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	got, err = Blueprint{Method: "POST", Body: strPtr(`{"a":1}`)}.Build()
	if err != nil {
		t.Fatal(err)
	}
	if post, ok := got.Method.(httpc.Post); !ok || string(post.Body) != `{"a":1}` {
		t.Errorf("method = %#v", got.Method)
	}
}

func TestBuildQueryOwnedByRequest(t *testing.T) {
	for _, style := range []Style{StyleBuilder, StyleClosure, StyleKeyPath} {
		t.Run(string(style), func(t *testing.T) {
			bp := Blueprint{Style: style, Method: "GET", Query: []Query{{Name: "q", Value: strPtr("duck")}}}
			got, err := bp.Build()
			if err != nil {
				t.Fatal(err)
			}
			*got.Method.(httpc.Get).Query[0].Value = "goose"
			if *bp.Query[0].Value != "duck" {
				t.Errorf("blueprint query changed to %q", *bp.Query[0].Value)
			}
		})
	}
}

func TestMalformedURLIsUnset(t *testing.T) {
	got, err := Blueprint{Style: StyleKeyPath, URL: "http://[::1"}.Build()
	if err != nil {
		t.Fatal(err)
	}
	if got.URL != nil {
		t.Errorf("URL = %v, want unset", got.URL)
	}
}

func TestResolvedStyle(t *testing.T) {
	tests := []struct {
		bp   Blueprint
		want Style
	}{
		{Blueprint{Method: "GET"}, StyleBuilder},
		{Blueprint{}, StyleKeyPath},
		{Blueprint{Style: "CLOSURE"}, StyleClosure},
	}
	for _, tt := range tests {
		if got := tt.bp.ResolvedStyle(); got != tt.want {
			t.Errorf("%+v: got %q, want %q", tt.bp, got, tt.want)
		}
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name string
		bp   Blueprint
		want error
	}{
		{"missing method", Blueprint{Style: StyleBuilder}, ErrMissingMethod},
		{"unknown style", Blueprint{Style: "magic"}, ErrUnknownStyle},
		{"unknown method", Blueprint{Method: "PATCH"}, httpc.ErrUnknownMethod},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.bp.Build(); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}
