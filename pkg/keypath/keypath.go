// Package keypath 提供按字段访问器设置属性并返回自身的通用能力，
// 不需要为每个字段单独写 setter。
package keypath

// KeyPath 指向 O 中某个字段的可读写访问器
type KeyPath[O any, T any] struct {
	get func(*O) T
	set func(*O, T)
}

// New 用一对 getter/setter 构造访问器
func New[O any, T any](get func(*O) T, set func(*O, T)) KeyPath[O, T] {
	return KeyPath[O, T]{get: get, set: set}
}

// Ref 用字段引用构造访问器，例如 func(r *Request) *string { return &r.Name }
func Ref[O any, T any](field func(*O) *T) KeyPath[O, T] {
	return KeyPath[O, T]{
		get: func(o *O) T { return *field(o) },
		set: func(o *O, v T) { *field(o) = v },
	}
}

// Optional 把指针字段适配成值访问器，未设置时 Get 返回零值
func Optional[O any, T any](p KeyPath[O, *T]) KeyPath[O, T] {
	return KeyPath[O, T]{
		get: func(o *O) T {
			var zero T
			if v := p.get(o); v != nil {
				return *v
			}
			return zero
		},
		set: func(o *O, v T) { p.set(o, &v) },
	}
}

func (p KeyPath[O, T]) Get(o *O) T {
	return p.get(o)
}

// To 生成一次延迟赋值
func (p KeyPath[O, T]) To(value T) Assignment[O] {
	return func(o *O) {
		p.set(o, value)
	}
}

// Assignment 对 O 的一次字段赋值
type Assignment[O any] func(*O)

// Set 通过访问器赋值后返回 o 本身
func Set[O any, T any](o *O, path KeyPath[O, T], value T) *O {
	path.set(o, value)
	return o
}

// Apply 依次执行赋值并返回 o 本身
func Apply[O any](o *O, assignments ...Assignment[O]) *O {
	for _, a := range assignments {
		if a != nil {
			a(o)
		}
	}
	return o
}

// Chain 让任意指针类型获得链式 Set 能力
type Chain[O any] struct {
	target *O
}

func On[O any](o *O) *Chain[O] {
	return &Chain[O]{target: o}
}

func (c *Chain[O]) Set(assignment Assignment[O]) *Chain[O] {
	Apply(c.target, assignment)
	return c
}

func (c *Chain[O]) Target() *O {
	return c.target
}
