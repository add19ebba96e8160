// Package blueprint 描述 YAML 里的一条请求配置，并按指定的构造方式生成 httpc.Request
package blueprint

import (
	"errors"
	"fmt"
	"maps"
	"strings"

	"github.com/djskncxm/DuckRequest/pkg/httpc"
)

type Style string

const (
	StyleBuilder Style = "builder"
	StyleClosure Style = "closure"
	StyleKeyPath Style = "keypath"
)

var (
	ErrUnknownStyle  = errors.New("unknown build style")
	ErrMissingMethod = errors.New("builder style requires a method")
)

type Query struct {
	Name  string  `yaml:"Name"`
	Value *string `yaml:"Value,omitempty"`
}

type Blueprint struct {
	Name    string            `yaml:"Name"`
	Style   Style             `yaml:"Style,omitempty"`
	Method  string            `yaml:"Method,omitempty"`
	Query   []Query           `yaml:"Query,omitempty"`
	Body    *string           `yaml:"Body,omitempty"`
	URL     string            `yaml:"URL,omitempty"`
	Headers map[string]string `yaml:"Headers,omitempty"`
	Path    *string           `yaml:"Path,omitempty"`
}

// ResolvedStyle 未指定时，有方法用 builder，否则用 keypath
func (b Blueprint) ResolvedStyle() Style {
	if b.Style != "" {
		return Style(strings.ToLower(string(b.Style)))
	}
	if b.Method != "" {
		return StyleBuilder
	}
	return StyleKeyPath
}

func (b Blueprint) method() (httpc.Method, error) {
	if b.Method == "" {
		return nil, nil
	}
	var query []httpc.QueryItem
	for _, q := range b.Query {
		item := httpc.QueryItem{Name: q.Name}
		if q.Value != nil {
			item.Value = httpc.String(*q.Value)
		}
		query = append(query, item)
	}
	var body []byte
	if b.Body != nil {
		body = []byte(*b.Body)
	}
	return httpc.ParseMethod(b.Method, query, body)
}

// Build 按 Style 选择的方式构造请求，只设置配置里出现的字段
func (b Blueprint) Build() (*httpc.Request, error) {
	method, err := b.method()
	if err != nil {
		return nil, fmt.Errorf("blueprint %q: %w", b.Name, err)
	}

	u := httpc.ParseURL(b.URL)
	headers := maps.Clone(b.Headers)

	switch style := b.ResolvedStyle(); style {
	case StyleBuilder:
		if method == nil {
			return nil, fmt.Errorf("blueprint %q: %w", b.Name, ErrMissingMethod)
		}
		builder := httpc.NewMethodBuilder(method)
		if u != nil {
			builder.WithURL(u)
		}
		if b.Headers != nil {
			builder.WithHeaders(headers)
		}
		if b.Path != nil {
			builder.WithPath(*b.Path)
		}
		return builder.Build(), nil

	case StyleClosure:
		return httpc.NewWithConfig(func(r *httpc.Request) {
			r.Method = method
			r.URL = u
			r.Headers = headers
			if b.Path != nil {
				r.Path = httpc.String(*b.Path)
			}
		}), nil

	case StyleKeyPath:
		r := httpc.New()
		if method != nil {
			r.Set(httpc.MethodField.To(method))
		}
		if u != nil {
			r.Set(httpc.URLField.To(u))
		}
		if b.Headers != nil {
			r.Set(httpc.HeadersField.To(headers))
		}
		if b.Path != nil {
			r.Set(httpc.PathField.To(*b.Path))
		}
		return r, nil

	default:
		return nil, fmt.Errorf("blueprint %q: %w: %q", b.Name, ErrUnknownStyle, style)
	}
}
