package httpc

import (
	"maps"
	"net/url"
)

// MethodBuilder 分步构造 Request，Build 之前不会创建请求
type MethodBuilder struct {
	method  Method
	url     *url.URL
	headers map[string]string
	path    *string
}

func NewMethodBuilder(method Method) *MethodBuilder {
	return &MethodBuilder{method: method}
}

func (b *MethodBuilder) WithURL(u *url.URL) *MethodBuilder {
	b.url = u
	return b
}

// WithHeaders 多次调用时以最后一次为准，不做合并
func (b *MethodBuilder) WithHeaders(headers map[string]string) *MethodBuilder {
	b.headers = headers
	return b
}

func (b *MethodBuilder) WithPath(path string) *MethodBuilder {
	b.path = &path
	return b
}

// Build 每次调用都返回一个新的独立实例
func (b *MethodBuilder) Build() *Request {
	r := &Request{
		URL:     cloneURL(b.url),
		Headers: maps.Clone(b.headers),
		Path:    cloneString(b.path),
	}
	if b.method != nil {
		r.Method = cloneMethod(b.method)
	}
	return r
}
