package httpc

import (
	"maps"
	"net/url"

	"github.com/djskncxm/DuckRequest/pkg/keypath"
)

// Request 请求描述，所有字段为 nil 时表示未设置
// 构造完成后按约定视为只读
type Request struct {
	Method  Method
	URL     *url.URL
	Headers map[string]string
	Path    *string
}

func New() *Request {
	return &Request{}
}

// Configure 闭包构造时使用的配置函数
type Configure func(*Request)

// NewWithConfig 先创建空请求，再调用一次 configure 进行配置
func NewWithConfig(configure Configure) *Request {
	r := New()
	if configure != nil {
		configure(r)
	}
	return r
}

// Set 通过 keypath 设置字段并返回自身，便于链式调用
func (r *Request) Set(assignment keypath.Assignment[Request]) *Request {
	return keypath.Apply(r, assignment)
}

var (
	MethodField  = keypath.Ref(func(r *Request) *Method { return &r.Method })
	URLField     = keypath.Ref(func(r *Request) **url.URL { return &r.URL })
	HeadersField = keypath.Ref(func(r *Request) *map[string]string { return &r.Headers })
	PathField    = keypath.Optional(keypath.Ref(func(r *Request) **string { return &r.Path }))
)

// Clone 深拷贝，返回的请求与原请求互不影响
func (r *Request) Clone() *Request {
	out := &Request{
		Headers: maps.Clone(r.Headers),
		Path:    cloneString(r.Path),
		URL:     cloneURL(r.URL),
	}
	if r.Method != nil {
		out.Method = cloneMethod(r.Method)
	}
	return out
}

// ParseURL 空串或解析失败时返回 nil，即字段保持未设置
func ParseURL(raw string) *url.URL {
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil
	}
	return u
}

func String(s string) *string {
	return &s
}

func cloneURL(u *url.URL) *url.URL {
	if u == nil {
		return nil
	}
	v := *u
	if u.User != nil {
		user := *u.User
		v.User = &user
	}
	return &v
}
