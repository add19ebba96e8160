package httpc

import (
	"errors"
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const exampleURL = "https://example.io"

var urlComparer = cmp.Comparer(func(a, b *url.URL) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.String() == b.String()
})

func exampleHeaders() map[string]string {
	return map[string]string{"Content-Type": "application/json"}
}

func expected() *Request {
	return &Request{
		Method:  Head{},
		URL:     ParseURL(exampleURL),
		Headers: exampleHeaders(),
		Path:    String("/all"),
	}
}

func TestNewIsEmpty(t *testing.T) {
	if diff := cmp.Diff(&Request{}, New(), urlComparer); diff != "" {
		t.Errorf("New() mismatch (-want +got):\n%s", diff)
	}
}

func TestScenarioBuilder(t *testing.T) {
	got := NewMethodBuilder(Head{}).
		WithURL(ParseURL(exampleURL)).
		WithHeaders(exampleHeaders()).
		WithPath("/all").
		Build()

	if diff := cmp.Diff(expected(), got, urlComparer); diff != "" {
		t.Errorf("builder mismatch (-want +got):\n%s", diff)
	}
}

func TestScenarioClosure(t *testing.T) {
	got := NewWithConfig(func(r *Request) {
		r.Method = Head{}
		r.URL = ParseURL(exampleURL)
		r.Path = String("/all")
		r.Headers = exampleHeaders()
	})

	if diff := cmp.Diff(expected(), got, urlComparer); diff != "" {
		t.Errorf("closure mismatch (-want +got):\n%s", diff)
	}
}

func TestScenarioKeyPath(t *testing.T) {
	r := New()
	got := r.
		Set(URLField.To(ParseURL(exampleURL))).
		Set(PathField.To("/all")).
		Set(HeadersField.To(exampleHeaders()))

	if got != r {
		t.Fatal("Set must return the same request")
	}
	want := expected()
	want.Method = nil
	if diff := cmp.Diff(want, got, urlComparer); diff != "" {
		t.Errorf("keypath mismatch (-want +got):\n%s", diff)
	}
	if got.Method != nil {
		t.Errorf("Method = %v, want unset", got.Method)
	}
}

func TestKeyPathGet(t *testing.T) {
	r := New().Set(MethodField.To(Delete{})).Set(PathField.To("/x"))
	if MethodField.Get(r) != (Delete{}) {
		t.Errorf("MethodField.Get = %v", MethodField.Get(r))
	}
	if PathField.Get(r) != "/x" {
		t.Errorf("PathField.Get = %q", PathField.Get(r))
	}
	if PathField.Get(New()) != "" {
		t.Error("unset path should read as empty")
	}
}

func TestNewWithConfigCallsOnce(t *testing.T) {
	calls := 0
	var seen *Request
	r := NewWithConfig(func(r *Request) {
		calls++
		seen = r
	})
	if calls != 1 {
		t.Errorf("configure called %d times, want 1", calls)
	}
	if seen != r {
		t.Error("configure did not receive the returned instance")
	}

	if diff := cmp.Diff(&Request{}, NewWithConfig(nil), urlComparer); diff != "" {
		t.Errorf("nil configure (-want +got):\n%s", diff)
	}
}

func TestBuilderLastCallWins(t *testing.T) {
	b := NewMethodBuilder(Get{}).
		WithHeaders(map[string]string{"A": "1"}).
		WithHeaders(map[string]string{"B": "2"}).
		WithPath("/first").
		WithPath("/second")

	r := b.Build()
	if diff := cmp.Diff(map[string]string{"B": "2"}, r.Headers); diff != "" {
		t.Errorf("headers should not merge (-want +got):\n%s", diff)
	}
	if r.Path == nil || *r.Path != "/second" {
		t.Errorf("Path = %v, want /second", r.Path)
	}
	if r.URL != nil {
		t.Errorf("URL = %v, want unset", r.URL)
	}
}

func TestBuildIndependentInstances(t *testing.T) {
	value := "1"
	b := NewMethodBuilder(Get{Query: []QueryItem{{Name: "page", Value: &value}}}).
		WithURL(ParseURL(exampleURL)).
		WithHeaders(exampleHeaders()).
		WithPath("/all")

	first := b.Build()
	second := b.Build()
	if first == second {
		t.Fatal("Build returned the same pointer twice")
	}
	if diff := cmp.Diff(first, second, urlComparer); diff != "" {
		t.Fatalf("Build not deterministic (-first +second):\n%s", diff)
	}

	first.Headers["X-Extra"] = "yes"
	first.URL.Host = "changed.io"
	*first.Path = "/changed"
	*first.Method.(Get).Query[0].Value = "2"

	third := b.Build()
	if diff := cmp.Diff(second, third, urlComparer); diff != "" {
		t.Errorf("mutating a result leaked into the builder (-want +got):\n%s", diff)
	}
}

func TestClone(t *testing.T) {
	r := NewMethodBuilder(Post{Body: []byte("{}")}).WithHeaders(exampleHeaders()).Build()
	c := r.Clone()
	if diff := cmp.Diff(r, c, urlComparer); diff != "" {
		t.Fatalf("clone mismatch (-want +got):\n%s", diff)
	}
	c.Method.(Post).Body[0] = '['
	if string(r.Method.(Post).Body) != "{}" {
		t.Error("clone shares body with the original")
	}
}

func TestParseURL(t *testing.T) {
	if ParseURL(exampleURL) == nil {
		t.Error("valid url parsed as nil")
	}
	if u := ParseURL("http://[::1"); u != nil {
		t.Errorf("malformed url = %v, want nil", u)
	}
	if u := ParseURL(""); u != nil {
		t.Errorf("empty url = %#v, want nil", u)
	}
}

func TestParseMethod(t *testing.T) {
	body := []byte("payload")
	query := []QueryItem{{Name: "q"}}
	tests := []struct {
		name string
		want Method
	}{
		{"get", Get{Query: query}},
		{"PUT", Put{Body: body}},
		{" Post ", Post{Body: body}},
		{"delete", Delete{}},
		{"HEAD", Head{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMethod(tt.name, query, body)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}

	if _, err := ParseMethod("PATCH", nil, nil); !errors.Is(err, ErrUnknownMethod) {
		t.Errorf("err = %v, want ErrUnknownMethod", err)
	}
}

func TestMethodNames(t *testing.T) {
	for want, m := range map[string]Method{
		"GET": Get{}, "PUT": Put{}, "POST": Post{}, "DELETE": Delete{}, "HEAD": Head{},
	} {
		if m.Name() != want {
			t.Errorf("%T.Name() = %q, want %q", m, m.Name(), want)
		}
	}
}
