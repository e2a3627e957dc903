package wrapper

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"gitlab.com/codejudge.net/internal/domain"
)

// TypeKind is the language-neutral kind of a test value
type TypeKind int

const (
	TypeNull TypeKind = iota
	TypeBool
	TypeInt
	TypeLong
	TypeFloat
	TypeString
	TypeChar
	TypeArray
	TypeObject
)

// Type is a resolved value type. Elem is set for arrays only.
type Type struct {
	Kind TypeKind
	Elem *Type

	// List marks an array hinted as a growable list (List<T>, ArrayList<T>)
	List bool

	// Wide marks a char that does not fit a single byte
	Wide bool
}

func scalar(k TypeKind) Type { return Type{Kind: k} }

// ArrayOf builds an array type
func ArrayOf(elem Type) Type {
	e := elem
	return Type{Kind: TypeArray, Elem: &e}
}

// ListOf builds a list-flavoured array type
func ListOf(elem Type) Type {
	t := ArrayOf(elem)
	t.List = true
	return t
}

func (t Type) String() string {
	switch t.Kind {
	case TypeNull:
		return "null"
	case TypeBool:
		return "bool"
	case TypeInt:
		return "int"
	case TypeLong:
		return "long"
	case TypeFloat:
		return "double"
	case TypeString:
		return "string"
	case TypeChar:
		return "char"
	case TypeArray:
		return t.Elem.String() + "[]"
	case TypeObject:
		return "object"
	}
	return "unknown"
}

// Equal reports structural equality of two types
func (t Type) Equal(o Type) bool {
	if t.Kind != o.Kind || t.List != o.List || t.Wide != o.Wide {
		return false
	}
	if t.Kind == TypeArray {
		return t.Elem.Equal(*o.Elem)
	}
	return true
}

var scalarHints = map[string]TypeKind{
	"int":         TypeInt,
	"integer":     TypeInt,
	"int32":       TypeInt,
	"short":       TypeInt,
	"long":        TypeLong,
	"int64":       TypeLong,
	"long long":   TypeLong,
	"long int":    TypeLong,
	"bigint":      TypeLong,
	"double":      TypeFloat,
	"float":       TypeFloat,
	"float32":     TypeFloat,
	"float64":     TypeFloat,
	"bool":        TypeBool,
	"boolean":     TypeBool,
	"string":      TypeString,
	"str":         TypeString,
	"std::string": TypeString,
	"char":        TypeChar,
	"character":   TypeChar,
	"byte":        TypeChar,
	"object":      TypeObject,
	"dict":        TypeObject,
	"map":         TypeObject,
}

var genericPrefixes = []string{
	"std::vector<", "vector<", "array<", "slice<",
}

var listPrefixes = []string{
	"arraylist<", "list<", "java.util.list<",
}

// ParseTypeHint parses a signature type string. ok is false for unknown,
// void and deliberately loose hints such as "number".
func ParseTypeHint(hint string) (Type, bool) {
	h := strings.Join(strings.Fields(hint), " ")
	if h == "" {
		return Type{}, false
	}
	lower := strings.ToLower(h)

	if strings.HasSuffix(h, "[]") {
		elem, ok := ParseTypeHint(h[:len(h)-2])
		if !ok {
			return Type{}, false
		}
		return ArrayOf(elem), true
	}
	if strings.HasPrefix(h, "[]") {
		elem, ok := ParseTypeHint(h[2:])
		if !ok {
			return Type{}, false
		}
		return ArrayOf(elem), true
	}
	for _, prefix := range genericPrefixes {
		if strings.HasPrefix(lower, prefix) && strings.HasSuffix(h, ">") {
			elem, ok := ParseTypeHint(h[len(prefix) : len(h)-1])
			if !ok {
				return Type{}, false
			}
			return ArrayOf(elem), true
		}
	}
	for _, prefix := range listPrefixes {
		if strings.HasPrefix(lower, prefix) && strings.HasSuffix(h, ">") {
			elem, ok := ParseTypeHint(h[len(prefix) : len(h)-1])
			if !ok {
				return Type{}, false
			}
			return ListOf(elem), true
		}
	}
	if strings.HasPrefix(lower, "list[") && strings.HasSuffix(h, "]") {
		elem, ok := ParseTypeHint(h[len("list[") : len(h)-1])
		if !ok {
			return Type{}, false
		}
		return ListOf(elem), true
	}
	if strings.HasPrefix(lower, "map<") || strings.HasPrefix(lower, "dict[") ||
		strings.HasPrefix(lower, "map[") || strings.HasPrefix(lower, "record<") {
		return scalar(TypeObject), true
	}

	if lower == "rune" {
		return Type{Kind: TypeChar, Wide: true}, true
	}

	kind, ok := scalarHints[lower]
	if !ok {
		return Type{}, false
	}
	return scalar(kind), true
}

// InferType derives a type from the value alone
func InferType(v domain.Value) Type {
	switch v.Kind() {
	case domain.KindBool:
		return scalar(TypeBool)
	case domain.KindInt:
		if fitsInt32(v.AsInt()) {
			return scalar(TypeInt)
		}
		return scalar(TypeLong)
	case domain.KindFloat:
		return scalar(TypeFloat)
	case domain.KindString:
		return scalar(TypeString)
	case domain.KindArray:
		if v.Len() == 0 {
			return ArrayOf(scalar(TypeInt))
		}
		elem := InferType(v.Index(0))
		for i := 1; i < v.Len(); i++ {
			elem = widen(elem, InferType(v.Index(i)))
		}
		return ArrayOf(elem)
	case domain.KindObject:
		return scalar(TypeObject)
	}
	return scalar(TypeNull)
}

// widen keeps the first element's type, promoting int to long when a later
// element needs 64 bits.
func widen(first, other Type) Type {
	switch {
	case first.Kind == TypeInt && other.Kind == TypeLong:
		return other
	case first.Kind == TypeArray && other.Kind == TypeArray:
		return ArrayOf(widen(*first.Elem, *other.Elem))
	}
	return first
}

// ResolveType picks the hinted type when the value fits it, the inferred
// type otherwise.
func ResolveType(hint string, v domain.Value) Type {
	if t, ok := ParseTypeHint(hint); ok && Compatible(t, v) {
		return widenChars(t, v)
	}
	return InferType(v)
}

// widenChars marks char types whose values need more than one byte
func widenChars(t Type, v domain.Value) Type {
	switch t.Kind {
	case TypeChar:
		if !t.Wide && v.Kind() == domain.KindString {
			r, _ := utf8.DecodeRuneInString(v.AsString())
			t.Wide = r > unicode.MaxASCII
		}
	case TypeArray:
		elem := *t.Elem
		for _, item := range v.Items() {
			elem = widenChars(elem, item)
		}
		t.Elem = &elem
	}
	return t
}

// Compatible reports whether v can be rendered as a literal of type t
func Compatible(t Type, v domain.Value) bool {
	switch t.Kind {
	case TypeBool:
		return v.Kind() == domain.KindBool
	case TypeInt:
		return v.Kind() == domain.KindInt && fitsInt32(v.AsInt())
	case TypeLong:
		return v.Kind() == domain.KindInt
	case TypeFloat:
		return v.Kind() == domain.KindFloat || v.Kind() == domain.KindInt
	case TypeString:
		return v.Kind() == domain.KindString
	case TypeChar:
		return v.Kind() == domain.KindString && utf8.RuneCountInString(v.AsString()) == 1
	case TypeArray:
		if v.Kind() != domain.KindArray {
			return false
		}
		for _, item := range v.Items() {
			if !Compatible(*t.Elem, item) {
				return false
			}
		}
		return true
	case TypeObject:
		return v.Kind() == domain.KindObject
	case TypeNull:
		return v.IsNull()
	}
	return false
}

func fitsInt32(i int64) bool {
	return i >= math.MinInt32 && i <= math.MaxInt32
}
