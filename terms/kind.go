package terms

type Kind uint8

const (
	KindInvalid Kind = iota
	KindAppl
	KindInt
	KindReal
	KindList
	KindEmptyList
	KindBlob
	KindPlaceholder
)

func (k Kind) String() string {
	switch k {
	case KindAppl:
		return "appl"
	case KindInt:
		return "int"
	case KindReal:
		return "real"
	case KindList:
		return "list"
	case KindEmptyList:
		return "empty list"
	case KindBlob:
		return "blob"
	case KindPlaceholder:
		return "placeholder"
	}
	return "invalid"
}
