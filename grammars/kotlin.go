package grammars

import "github.com/gnolang/tmscope/grammar"

// Building blocks of Kotlin identifiers.
const (
	upperLetterChars   = `A-Z\p{Lt}\p{Lu}`
	upperLetter        = `[` + upperLetterChars + `]`
	lowerLetterChars   = `_a-z\$\p{Lo}\p{Nl}\p{Ll}`
	lowerLetter        = `[` + lowerLetterChars + `]`
	letterChars        = upperLetterChars + lowerLetterChars
	letter             = `[` + letterChars + `]`
	letterOrDigitChars = letterChars + `0-9`
	letterOrDigit      = `[` + letterOrDigitChars + `]`

	// names in string templates ("$name") cannot contain '$'
	letterOrDigitNoDollarSign  = `[` + upperLetterChars + `_a-z\p{Lo}\p{Nl}\p{Ll}0-9]`
	simpleInterpolatedVariable = letter + letterOrDigitNoDollarSign + `*`

	opchar       = `[!#%&*+\-\/:<>=?^|~\p{Sm}\p{So}]`
	idrest       = letter + letterOrDigit + `*`
	idUpper      = upperLetter + letterOrDigit + `*(?:(?<=_)` + opchar + `+)?`
	idLower      = lowerLetter + letterOrDigit + `*(?:(?<=_)` + opchar + `+)?`
	plainid      = `\b(?:` + idrest + `)\b`
	backQuotedId = "`[^`]+`"
	anyId        = `(?:` + plainid + `|` + backQuotedId + `)`

	annotationTargets = `(file|field|property|get|set|param|setparam|delegate|receiver)`
)

// kotlin returns the Kotlin grammar. Every call builds a new document.
func kotlin() *grammar.Document {
	return &grammar.Document{
		Name:               "Kotlin",
		ScopeName:          "source.kotlin",
		FileTypes:          []string{"kt", "kts", "kotlin"},
		FirstLineMatch:     `^#!/.*\b\w*kotlin\b`,
		FoldingStartMarker: `/\*\*|\{\s*$`,
		FoldingStopMarker:  `\*\*/|^\s*\}`,
		KeyEquivalent:      "^~S",
		UUID:               "98ac76da-e221-416c-9dc2-63e0652b0d37",
		Patterns: []grammar.RawRule{
			{Include: "#code"},
		},
		Repository: grammar.Repository{
			{
				Key: "empty-parentheses",
				Rule: grammar.RawRule{
					Name:  "meta.parentheses.kotlin",
					Match: `(\(\))`,
					Captures: grammar.RawCaptures{
						"1": {Name: "meta.bracket.kotlin"},
					},
				},
			},
			{
				Key: "imports",
				Rule: grammar.RawRule{
					Name:  "meta.import.kotlin",
					Begin: `\b(import)\s+`,
					BeginCaptures: grammar.RawCaptures{
						"1": {Name: "keyword.other.import.kotlin"},
					},
					End: `(?<=[\n;])`,
					Patterns: []grammar.RawRule{
						{Include: "#comments"},
						{
							Name:  "entity.name.type.class.kotlin.import.kotlin",
							Match: idUpper,
						},
						{
							Name:  "entity.name.import.kotlin",
							Match: `(` + backQuotedId + `|` + plainid + `)`,
						},
						{
							Name:  "keyword.other.as.kotlin",
							Match: `\b(as)\b`,
						},
						{
							Name:  "punctuation.definition.import",
							Match: `\.`,
						},
					},
				},
			},
			{
				Key: "constants",
				Rule: grammar.RawRule{
					Patterns: []grammar.RawRule{
						{
							Name:  "constant.language.kotlin",
							Match: `\b(false|null|true)\b`,
						},
						{
							Name:  "constant.numeric.kotlin",
							Match: `\b(0[xX][0-9a-fA-F][0-9a-fA-F_]*)[Uu]?[Ll]?\b`,
						},
						{
							Name:  "constant.numeric.kotlin",
							Match: `\b(0[bB][01][01_]*)[Uu]?[Ll]?\b`,
						},
						{
							Name:  "constant.numeric.kotlin",
							Match: `\b(([0-9][0-9_]*[Uu]?[Ll]?(\.[0-9][0-9_]*)?)([eE](\+|-)?[0-9][0-9_]*)?|[0-9][0-9_]*)[Ff]?\b`,
						},
						{
							Name:  "variable.language.kotlin",
							Match: `\b(this|super)\b(?!@)`,
						},
						{
							Name:  "variable.language.kotlin",
							Match: `\b(this|super)@(` + backQuotedId + `|` + plainid + `)\b`,
						},
					},
				},
			},
			{
				Key: "script-header",
				Rule: grammar.RawRule{
					Name:  "comment.block.shebang.kotlin",
					Match: `^#!(.*)$`,
					Captures: grammar.RawCaptures{
						"1": {Name: "string.unquoted.shebang.kotlin"},
					},
				},
			},
			{
				Key: "code",
				Rule: grammar.RawRule{
					Patterns: []grammar.RawRule{
						{Include: "#script-header"},
						{Include: "#storage-modifiers"},
						{Include: "#declarations"},
						{Include: "#imports"},
						{Include: "#comments"},
						{Include: "#strings"},
						{Include: "#keywords"},
						{Include: "#constants"},
						{Include: "#inline"},
						{Include: "#vararg"},
						{Include: "#char-literal"},
						{Include: "#empty-parentheses"},
						{Include: "#qualifiedClassName"},
						{Include: "#parameter-list"},
						{Include: "#backQuotedVariable"},
						{Include: "#curly-braces"},
						{Include: "#meta-brackets"},
						{Include: "#meta-colons"},
						{Include: "#annotations"},
						{Include: "#labels"},
						{Include: "#angle-brackets"},
						{Include: "#generics"},
						{Include: "#init-block"},
					},
				},
			},
			{
				Key: "strings",
				Rule: grammar.RawRule{
					Patterns: []grammar.RawRule{
						{
							Name:  "string.quoted.triple.kotlin",
							Begin: `"""`,
							BeginCaptures: grammar.RawCaptures{
								"0": {Name: "punctuation.definition.string.begin.kotlin"},
							},
							End: `"""(?!")`,
							EndCaptures: grammar.RawCaptures{
								"0": {Name: "punctuation.definition.string.end.kotlin"},
							},
							Patterns: []grammar.RawRule{
								{Include: "#string-interpolation"},
							},
						},
						{
							Name:  "string.quoted.double.kotlin",
							Begin: `"`,
							BeginCaptures: grammar.RawCaptures{
								"0": {Name: "punctuation.definition.string.begin.kotlin"},
							},
							End: `"`,
							EndCaptures: grammar.RawCaptures{
								"0": {Name: "punctuation.definition.string.end.kotlin"},
							},
							Patterns: []grammar.RawRule{
								{
									Name:  "constant.character.escape.kotlin",
									Match: `\\(?:[btnfr$\\"']|u[0-9A-Fa-f]{4})`,
								},
								{
									Name:  "invalid.illegal.unrecognized-string-escape.kotlin",
									Match: `\\.`,
								},
								{Include: "#string-interpolation"},
							},
						},
					},
				},
			},
			{
				Key: "string-interpolation",
				Rule: grammar.RawRule{
					Patterns: []grammar.RawRule{
						{
							Name:        "meta.template.expression.kotlin",
							ContentName: "string.interpolated.kotlin",
							Match:       `(\$)(` + simpleInterpolatedVariable + `)`,
						},
						{
							Name:        "meta.template.expression.kotlin",
							ContentName: "meta.embedded.line.kotlin",
							Begin:       `\$\{`,
							BeginCaptures: grammar.RawCaptures{
								"0": {Name: "punctuation.definition.template-expression.begin.kotlin"},
							},
							End: `\}`,
							EndCaptures: grammar.RawCaptures{
								"0": {Name: "punctuation.definition.template-expression.end.kotlin"},
							},
							Patterns: []grammar.RawRule{
								{Include: "#code"},
							},
						},
					},
				},
			},
			{
				Key: "meta-colons",
				Rule: grammar.RawRule{
					Comment: "For themes: Matching type colons",
					Patterns: []grammar.RawRule{
						{
							Name:  "meta.colon.kotlin",
							Match: `(?<!:):(?!:)`,
						},
					},
				},
			},
			{
				Key: "keywords",
				Rule: grammar.RawRule{
					Patterns: []grammar.RawRule{
						{
							Name:  "keyword.control.flow.jump.kotlin",
							Match: `\b(return|throw|break|continue)\b(?!@)`,
						},
						{
							Name:  "keyword.control.flow.jump.kotlin",
							Match: `\b(break|continue|return)@(` + idrest + `|` + backQuotedId + `)\b`,
						},
						{
							Name:  "support.function.type-of.kotlin",
							Match: `\b(as\?)`,
						},
						{
							Name:  "support.function.type-of.kotlin",
							Match: `\b(as|is)\b`,
						},
						{
							Name:  "keyword.operator.contains.kotlin",
							Match: `\b(in)\b`,
						},
						{
							Name:  "keyword.operator.delegation.kotlin",
							Match: `\b(by)\b`,
						},
						{
							Name:  "keyword.control.flow.kotlin",
							Match: `\b(else|if|do|while|for|when)\b`,
						},
						{
							Name:  "keyword.control.exception.kotlin",
							Match: `\b(catch|finally|try)\b`,
						},
						{
							Match: `(?<=::)\s*(class)\b`,
							Captures: grammar.RawCaptures{
								"1": {Name: "keyword.operator.class-literal.kotlin"},
							},
						},
						{
							Name:  "keyword.operator.comparison.kotlin",
							Match: `(===?|!==?|<=|>=|<|>)`,
						},
						{
							Name:  "keyword.operator.assignment.kotlin",
							Match: `((?<![!=<>])=(?!=))`,
						},
						{
							Name:  "keyword.operator.assignment.kotlin",
							Match: `([+-/*%]=(?!=))`,
						},
						{
							Name:  "keyword.operator.arithmetic.kotlin",
							Match: `(\-(?!>)|\+|\*|/(?![/*])|%)`,
						},
						{
							Name:  "keyword.operator.logical.kotlin",
							Match: `(!(?![=!])|&&|\|\|)`,
						},
						{
							Name:  "keyword.operator.bangbang.kotlin",
							Match: `(!!)+`,
						},
						{
							Name:  "keyword.operator.quest.kotlin",
							Match: `(\?)+(?![.:])`,
						},
						{
							Name:  "keyword.operator.elvis.kotlin",
							Match: `(\?:(?!:))`,
						},
						{
							Name:  "punctuation.separator.coloncolon.kotlin",
							Match: `(::)`,
						},
						{
							Name:  "keyword.operator.arrow.kotlin",
							Match: `(->)`,
						},
					},
				},
			},
			{
				Key: "inline",
				Rule: grammar.RawRule{
					Patterns: []grammar.RawRule{
						{
							Name:  "storage.modifier.other",
							Match: `\b(noinline|crossinline)(?=\s+(` + plainid + `|` + backQuotedId + `)\s*:)`,
						},
					},
				},
			},
			{
				Key: "vararg",
				Rule: grammar.RawRule{
					Patterns: []grammar.RawRule{
						{
							Name:  "storage.modifier.other",
							Match: `\b(vararg)(?=\s+(` + plainid + `|` + backQuotedId + `)\s*:)`,
						},
						{
							Name:  "storage.modifier.other",
							Match: `\b(vararg)(?=\s+val)`,
						},
						{
							Name:  "storage.modifier.other",
							Match: `\b(vararg)(?=\s+var)`,
						},
					},
				},
			},
			{
				Key: "declarations",
				Rule: grammar.RawRule{
					Patterns: []grammar.RawRule{
						{
							Begin: `\b(fun)\b`,
							BeginCaptures: grammar.RawCaptures{
								"1": {Name: "keyword.declaration.kotlin"},
							},
							End: `(?=[={;])`,
							Patterns: []grammar.RawRule{
								{Include: "#code"},
								{
									Match: `\b(` + anyId + `)\s*\.`,
									Captures: grammar.RawCaptures{
										"1": {Name: "entity.name.type.class.kotlin"},
									},
								},
								{
									Match: `\b(` + anyId + `)(?!\s*\.)`,
									Captures: grammar.RawCaptures{
										"1": {Name: "entity.name.function.declaration"},
									},
								},
							},
						},
						{
							Match: `\b(?:(fun)\s+)?(interface)\b\s*(` + anyId + `)\s*(?!\<)`,
							Captures: grammar.RawCaptures{
								"1": {Name: "keyword.declaration.kotlin"},
								"2": {Name: "keyword.declaration.kotlin"},
								"3": {Name: "entity.name.type.class.kotlin.declaration"},
							},
						},
						{
							Match: `\b(?:(data|enum|annotation|inline|value)\s+)?(class)\b\s*(` + anyId + `)\s*(?!\<)`,
							Captures: grammar.RawCaptures{
								"1": {Name: "keyword.declaration.kotlin"},
								"2": {Name: "keyword.declaration.kotlin"},
								"3": {Name: "entity.name.type.class.kotlin.declaration"},
							},
						},
						{
							Begin: `\b(?:(fun)\s+)?(interface)\s+(` + anyId + `)\s*(\<)`,
							BeginCaptures: grammar.RawCaptures{
								"1": {Name: "keyword.declaration.kotlin"},
								"2": {Name: "keyword.declaration.kotlin"},
								"3": {Name: "entity.name.type.class.kotlin.declaration"},
								"4": {Name: "punctuation.bracket.angle.kotlin"},
							},
							End: `(?<!-)\>`,
							EndCaptures: grammar.RawCaptures{
								"0": {Name: "punctuation.bracket.angle.kotlin"},
							},
							Patterns: []grammar.RawRule{
								{Include: "#type-only-context"},
							},
						},
						{
							Begin: `\b(?:(data|enum|annotation|inline|value)\s+)?(class)\s+(` + anyId + `)\s*(\<)`,
							End:   `(?<!-)\>`,
							EndCaptures: grammar.RawCaptures{
								"0": {Name: "punctuation.bracket.angle.kotlin"},
							},
							Captures: grammar.RawCaptures{
								"1": {Name: "keyword.declaration.kotlin"},
								"2": {Name: "keyword.declaration.kotlin"},
								"3": {Name: "entity.name.type.class.kotlin.declaration"},
								"4": {Name: "punctuation.bracket.angle.kotlin"},
							},
							Patterns: []grammar.RawRule{
								{Include: "#type-only-context"},
							},
						},
						{
							Match: `\b(typealias)\b\s*(` + anyId + `)\s*(?!\<)`,
							Captures: grammar.RawCaptures{
								"1": {Name: "keyword.declaration.kotlin"},
								"2": {Name: "entity.name.type.kotlin.declaration"},
							},
						},
						{
							Begin: `\b(typealias)\b\s*(` + anyId + `)\s*(\<)`,
							BeginCaptures: grammar.RawCaptures{
								"1": {Name: "keyword.declaration.kotlin"},
								"2": {Name: "entity.name.type.class.kotlin.declaration"},
								"3": {Name: "punctuation.bracket.angle.kotlin"},
							},
							End: `(?<!-)\>`,
							EndCaptures: grammar.RawCaptures{
								"0": {Name: "punctuation.bracket.angle.kotlin"},
							},
							Patterns: []grammar.RawRule{
								{Include: "#type-only-context"},
							},
						},
						{
							Match: `\b(?:(companion)\s+)?(object)\b\s*(` + anyId + `)?`,
							Captures: grammar.RawCaptures{
								"1": {Name: "keyword.declaration.kotlin"},
								"2": {Name: "keyword.declaration.kotlin"},
								"3": {Name: "entity.name.type.class.kotlin.declaration"},
							},
						},
						{
							Begin: `\b(?:(val)|(var))\b(?=\s*[(])`,
							BeginCaptures: grammar.RawCaptures{
								"1": {Name: "keyword.declaration.stable.kotlin"},
								"2": {Name: "keyword.declaration.volatile.kotlin"},
							},
							End: `(?<=\))`,
							Patterns: []grammar.RawRule{
								{
									Name:  "variable.other.definition.kotlin",
									Match: anyId,
								},
								{
									Name:  "punctuation.comma.kotlin",
									Match: `,`,
								},
							},
						},
						{
							Match: `\b(?:(val)|(var))\b\s*(` + anyId + `)`,
							Captures: grammar.RawCaptures{
								"1": {Name: "keyword.declaration.stable.kotlin"},
								"2": {Name: "keyword.declaration.volatile.kotlin"},
								"3": {Name: "variable.other.definition.kotlin"},
							},
						},
						{
							Match: `\b(?:(val)|(var))\b(?!\s*(` + anyId + `|([(])))`,
							Captures: grammar.RawCaptures{
								"1": {Name: "keyword.declaration.stable.kotlin"},
								"2": {Name: "keyword.declaration.volatile.kotlin"},
							},
						},
						{
							Name:  "meta.package.kotlin",
							Begin: `\b(package)\s+`,
							BeginCaptures: grammar.RawCaptures{
								"1": {Name: "keyword.other.import.kotlin"},
							},
							End: `(?<=[\n;])`,
							Patterns: []grammar.RawRule{
								{Include: "#comments"},
								{
									Name:  "entity.name.package.kotlin",
									Match: `(` + backQuotedId + `|` + plainid + `)`,
								},
								{
									Name:  "punctuation.definition.package",
									Match: `\.`,
								},
							},
						},
					},
				},
			},
			{
				Key: "char-literal",
				Rule: grammar.RawRule{
					Name:  "string.quoted.other constant.character.literal.kotlin",
					Begin: `'`,
					BeginCaptures: grammar.RawCaptures{
						"0": {Name: "punctuation.definition.character.begin.kotlin"},
					},
					End: `'|$`,
					EndCaptures: grammar.RawCaptures{
						"0": {Name: "punctuation.definition.character.end.kotlin"},
					},
					Patterns: []grammar.RawRule{
						{
							Name:  "constant.character.escape.kotlin",
							Match: `\\(?:[btnfr\\"']|[0-7]{1,3}|u[0-9A-Fa-f]{4})`,
						},
						{
							Name:  "invalid.illegal.unrecognized-character-escape.kotlin",
							Match: `\\.`,
						},
						{
							Name:  "invalid.illegal.character-literal-too-long",
							Match: `[^']{2,}`,
						},
						{
							Name:  "invalid.illegal.character-literal-too-long",
							Match: `(?<!')[^']`,
						},
					},
				},
			},
			{
				Key: "curly-braces",
				Rule: grammar.RawRule{
					Begin: `\{`,
					BeginCaptures: grammar.RawCaptures{
						"0": {Name: "punctuation.section.block.begin.kotlin"},
					},
					End: `\}`,
					EndCaptures: grammar.RawCaptures{
						"0": {Name: "punctuation.section.block.end.kotlin"},
					},
					Patterns: []grammar.RawRule{
						{Include: "#code"},
					},
				},
			},
			{
				Key: "angle-brackets",
				Rule: grammar.RawRule{
					Begin: `(?<=\<)`,
					End:   `(?=\>)`,
					Patterns: []grammar.RawRule{
						{
							Name:  "storage.modifier.other",
							Match: `\b(out|in|reified)\b`,
						},
						{Include: "#code"},
					},
				},
			},
			{
				Key: "type-only-context",
				Rule: grammar.RawRule{
					Patterns: []grammar.RawRule{
						{
							Name:  "storage.modifier.other",
							Match: `\b(out|in|reified|suspend)\b`,
						},
						{
							Name:  "punctuation.comma.kotlin",
							Match: `,`,
						},
						{
							Name:  "keyword.operator.arrow.kotlin",
							Match: `->`,
						},
						{
							Name:  "keyword.operator.star.kotlin",
							Match: `\*`,
						},
						{
							Match: `(` + anyId + `s*\?*)`,
							Captures: grammar.RawCaptures{
								"1": {Name: "entity.name.type.class.kotlin"},
							},
						},
						{
							Begin: `\<`,
							BeginCaptures: grammar.RawCaptures{
								"0": {Name: "punctuation.bracket.angle.open.kotlin"},
							},
							End: `(?<!-)\>`,
							EndCaptures: grammar.RawCaptures{
								"0": {Name: "punctuation.bracket.angle.close.kotlin"},
							},
							Patterns: []grammar.RawRule{
								{Include: "#type-only-context"},
							},
						},
						{
							Begin: `\(`,
							BeginCaptures: grammar.RawCaptures{
								"0": {Name: "punctuation.paren.open.kotlin"},
							},
							End: `\)`,
							EndCaptures: grammar.RawCaptures{
								"0": {Name: "punctuation.paren.close.kotlin"},
							},
							Patterns: []grammar.RawRule{
								{Include: "#type-only-context"},
							},
						},
						{Include: "#parameter-list"},
						{Include: "#annotations"},
					},
				},
			},
			{
				Key: "generics",
				Rule: grammar.RawRule{
					Begin: `(?<=\b(var|val|fun)\b)\s*(\<)`,
					BeginCaptures: grammar.RawCaptures{
						"0": {Name: "punctuation.bracket.angle.kotlin"},
					},
					End: `(?<!-)\>`,
					EndCaptures: grammar.RawCaptures{
						"0": {Name: "punctuation.bracket.angle.kotlin"},
					},
					Patterns: []grammar.RawRule{
						{Include: "#type-only-context"},
					},
				},
			},
			{
				Key: "meta-brackets",
				Rule: grammar.RawRule{
					Comment: "For themes: Brackets look nice when colored.",
					Patterns: []grammar.RawRule{
						{
							Comment: "The punctuation.section.*.begin is needed for return snippet in source bundle",
							Name:    "punctuation.section.block.begin.kotlin",
							Match:   `\{`,
						},
						{
							Comment: "The punctuation.section.*.end is needed for return snippet in source bundle",
							Name:    "punctuation.section.block.end.kotlin",
							Match:   `\}`,
						},
						{
							Name:  "meta.bracket.kotlin",
							Match: `\{|\}|\(|\)|\[|\]`,
						},
					},
				},
			},
			{
				Key: "qualifiedClassName",
				Rule: grammar.RawRule{
					Match: `((?<!@)\b([A-Z][\w]*)\b(?!@))`,
					Captures: grammar.RawCaptures{
						"2": {Name: "entity.name.type.class.kotlin"},
					},
				},
			},
			{
				Key: "backQuotedVariable",
				Rule: grammar.RawRule{
					Match: backQuotedId,
				},
			},
			{
				Key: "storage-modifiers",
				Rule: grammar.RawRule{
					Patterns: []grammar.RawRule{
						{
							Name:  "storage.modifier.access",
							Match: `\b(public|private|protected|internal)\b`,
						},
						{
							Name:  "storage.modifier.other",
							Match: `\b(abstract|open|final|sealed|override|inner)\b`,
						},
						{
							Name:  "storage.modifier.other",
							Match: `(?<=^|\s)\b(tailrec|infix|inline|open|operator|const|external|expect|actual|lateinit|suspend)\b(?=[a-z\s]*\b(fun|val|var|get|set|class|interface|object)\b)`,
						},
					},
				},
			},
			{
				Key: "comments",
				Rule: grammar.RawRule{
					Patterns: []grammar.RawRule{
						{Include: "#block-comments"},
						{
							Begin: `(^[ \t]+)?(?=//)`,
							BeginCaptures: grammar.RawCaptures{
								"1": {Name: "punctuation.whitespace.comment.leading.kotlin"},
							},
							End: `(?!\G)`,
							Patterns: []grammar.RawRule{
								{
									Name:  "comment.line.double-slash.kotlin",
									Begin: `//`,
									BeginCaptures: grammar.RawCaptures{
										"0": {Name: "punctuation.definition.comment.kotlin"},
									},
									End: `\n`,
								},
							},
						},
					},
				},
			},
			{
				Key: "block-comments",
				Rule: grammar.RawRule{
					Patterns: []grammar.RawRule{
						{
							Name:  "comment.block.empty.kotlin",
							Match: `/\*\*/`,
							Captures: grammar.RawCaptures{
								"0": {Name: "punctuation.definition.comment.kotlin"},
							},
						},
						{
							Name:        "comment.block.documentation.kotlin",
							ContentName: "meta.embedded.kdoc.markdown",
							Begin:       `^\s*(/\*\*)(?!/)`,
							BeginCaptures: grammar.RawCaptures{
								"1": {Name: "punctuation.definition.comment.kotlin"},
							},
							End: `\*/`,
							EndCaptures: grammar.RawCaptures{
								"0": {Name: "punctuation.definition.comment.kotlin"},
							},
							Patterns: []grammar.RawRule{
								{
									Name:  "punctuation.definition.comment.kotlin",
									Match: `^\s*\*(?!/)`,
								},
								{
									Match: `(@(?:param|property|throws|exception|sample))\s+(\S+)`,
									Captures: grammar.RawCaptures{
										"1": {Name: "keyword.other.documentation.kotlindoc.kotlin"},
										"2": {Name: "variable.parameter.kotlin"},
									},
								},
								{
									Name:  "keyword.other.documentation.kotlindoc.kotlin",
									Match: `@(return|constructor|receiver|author|since|suppress)\b`,
								},
								{
									Match: `(\[)([^\]]+)(\])`,
									Captures: grammar.RawCaptures{
										"1": {Name: "punctuation.definition.documentation.link.kotlin"},
										"2": {Name: "string.other.link.title.markdown"},
										"3": {Name: "punctuation.definition.documentation.link.kotlin"},
									},
								},
								{Include: "#block-comments"},
							},
						},
						{
							Name:  "comment.block.kotlin",
							Begin: `/\*`,
							End:   `\*/`,
							Captures: grammar.RawCaptures{
								"0": {Name: "punctuation.definition.comment.kotlin"},
							},
							Patterns: []grammar.RawRule{
								{Include: "#block-comments"},
							},
						},
					},
				},
			},
			{
				Key: "init-block",
				Rule: grammar.RawRule{
					Patterns: []grammar.RawRule{
						{
							Match: `\b(init)\s*(?=\{)`,
							Captures: grammar.RawCaptures{
								"1": {Name: "keyword.control.flow.kotlin"},
							},
						},
					},
				},
			},
			{
				Key: "labels",
				Rule: grammar.RawRule{
					Patterns: []grammar.RawRule{
						{
							Name:  "meta.label.kotlin",
							Match: `\b(` + anyId + `)@`,
						},
					},
				},
			},
			{
				Key: "annotations",
				Rule: grammar.RawRule{
					Patterns: []grammar.RawRule{
						{
							Name:  "storage.type.annotation.kotlin",
							Match: `@` + anyId + `\s*(?![.:])`,
						},
						{
							Name:  "storage.type.annotation.kotlin",
							Match: `@(` + annotationTargets + `)\s*:\s*(` + anyId + `)\s*(?!\.)`,
						},
						{
							Name:  "storage.type.annotation.kotlin",
							Begin: `@` + anyId + `\s*\.`,
							End:   anyId + `\s*(?!\.)`,
						},
						{
							Begin: `@\[`,
							BeginCaptures: grammar.RawCaptures{
								"0": {Name: "storage.type.annotation.kotlin"},
							},
							End: `\]`,
							EndCaptures: grammar.RawCaptures{
								"0": {Name: "storage.type.annotation.kotlin"},
							},
							Patterns: []grammar.RawRule{
								{
									Name:  "storage.type.annotation.kotlin",
									Match: `(` + anyId + `)`,
								},
								{Include: "#code"},
							},
						},
						{
							Begin: `@(` + annotationTargets + `)\s*:\s*\[`,
							BeginCaptures: grammar.RawCaptures{
								"0": {Name: "storage.type.annotation.kotlin"},
							},
							End: `\]`,
							EndCaptures: grammar.RawCaptures{
								"0": {Name: "storage.type.annotation.kotlin"},
							},
							Patterns: []grammar.RawRule{
								{
									Name:  "storage.type.annotation.kotlin",
									Match: `(` + anyId + `)`,
								},
								{Include: "#code"},
							},
						},
					},
				},
			},
			{
				Key: "parameter-list",
				Rule: grammar.RawRule{
					Patterns: []grammar.RawRule{
						{
							Match: `(?<=[^\._$a-zA-Z0-9])(` + backQuotedId + `|` + idLower + `)\s*(:)(?!:)`,
							Captures: grammar.RawCaptures{
								"1": {Name: "variable.parameter.kotlin"},
								"2": {Name: "meta.colon.kotlin"},
							},
						},
						{
							Match: `(?<=[^:?]:)\s*(` + anyId + `\?*)\s*(?!\<)`,
							Captures: grammar.RawCaptures{
								"1": {Name: "entity.name.type.class.kotlin"},
							},
						},
						{
							Begin: `(?<=[^:?]:)\s*(` + anyId + `)\s*(\<)`,
							BeginCaptures: grammar.RawCaptures{
								"1": {Name: "entity.name.type.class.kotlin"},
								"2": {Name: "punctuation.bracket.angle.kotlin"},
							},
							End: `\>\?*`,
							EndCaptures: grammar.RawCaptures{
								"0": {Name: "punctuation.bracket.angle.kotlin"},
							},
							Patterns: []grammar.RawRule{
								{Include: "#type-only-context"},
							},
						},
						{
							Begin: `(?<=[^:?]:)\s*([(])`,
							BeginCaptures: grammar.RawCaptures{
								"1": {Name: "punctuation.paren.open.kotlin"},
							},
							End: `[)]\?*`,
							EndCaptures: grammar.RawCaptures{
								"0": {Name: "punctuation.paren.close.kotlin"},
							},
							Patterns: []grammar.RawRule{
								{Include: "#type-only-context"},
							},
						},
					},
				},
			},
		},
	}
}
