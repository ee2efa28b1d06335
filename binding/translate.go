package binding

// Translator 把界面文本映射为本地化文本；找不到时返回原文。
type Translator interface {
	Translate(text string) string
}

// TranslatorFunc 把普通函数适配为 Translator。
type TranslatorFunc func(string) string

// Translate implements Translator.
func (f TranslatorFunc) Translate(text string) string { return f(text) }

// Catalog 是基于映射表的 Translator。
type Catalog map[string]string

// Translate implements Translator.
func (c Catalog) Translate(text string) string {
	if v, ok := c[text]; ok {
		return v
	}
	return text
}
