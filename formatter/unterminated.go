package formatter

// UnterminatedSpanFormatter shows only the line where the open span begins.
// The rest of the input up to the end of file belongs to the span and is
// not worth printing.
type UnterminatedSpanFormatter struct{}

func (f *UnterminatedSpanFormatter) IssueTemplate() string {
	return `{{header .Rule .Severity .MaxLineNumWidth .Filename .StartLine .StartColumn -}}
{{snippet .SnippetLines .StartLine .StartLine .MaxLineNumWidth .CommonIndent .Padding -}}
{{underlineAndMessage .Message .Padding .StartLine .StartLine .StartColumn .StartColumn .SnippetLines .CommonIndent -}}
{{note .Note}}
`
}
