package dto

// FormErrors 字段名 -> 错误信息列表，键为表单字段名
type FormErrors map[string][]string

// NonFieldErrors 不属于任何字段的错误
const NonFieldErrors = "__all__"

func (e FormErrors) Add(field, message string) {
	e[field] = append(e[field], message)
}

func (e FormErrors) Get(field string) []string {
	return e[field]
}

func (e FormErrors) Has(field string) bool {
	return len(e[field]) > 0
}

func (e FormErrors) Empty() bool {
	return len(e) == 0
}
