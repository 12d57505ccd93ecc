package locale

var catalog = map[Code][]string{
	Chinese: {
		"这是一个中文打字练习示例。",
		"学习编程可以提高解决问题的能力。",
		"每天读书有助于增加知识储备。",
	},
	English: {
		"This is a sample typing practice text in English.",
		"Learning to code can improve problem-solving skills.",
		"Reading books daily helps to increase knowledge.",
	},
}

// Texts returns a copy of the default practice texts for a language.
func Texts(c Code) []string {
	texts := catalog[c]
	out := make([]string, len(texts))
	copy(out, texts)
	return out
}

// DefaultText returns the first default practice text for a language.
func DefaultText(c Code) string {
	texts := catalog[c]
	if len(texts) == 0 {
		return catalog[Default][0]
	}
	return texts[0]
}
