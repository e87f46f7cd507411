package render

import (
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/awerner3/mathscribe/internal/outline"
)

// The document template uses "((" "))" action delimiters so LaTeX
// braces never collide with template syntax. Part and subpart headings
// close with a literal ")" after the id, rendering "a)" and "i)".
const texTemplate = `\documentclass{article}
\usepackage[margin=1in]{geometry}
\usepackage{amsmath, amssymb, amsthm}
\usepackage{indentfirst}

\newcommand{\N}{\mathbb{N}}

\title{((.Title))}
\author{((.Author))}
\date{((.Date))}

\begin{document}
\maketitle
((range .Problems))
\section*{Problem ((.ID))}
((if .Content))
((.Content))
((end))((range .Parts))
\subsection*{((.ID)))}

((.Content))
((range .Subparts))
\subsubsection*{((.ID)))}
((.Content))
((end))((end))((end))
\end{document}
`

var docTemplate = template.Must(
	template.New("homework").Delims("((", "))").Parse(texTemplate))

// Options control the document preamble metadata. Zero values fall
// back to a generic title and today's date.
type Options struct {
	Title  string
	Author string
	Date   string
}

type templateData struct {
	Title    string
	Author   string
	Date     string
	Problems []outline.Problem
}

// RenderTeX renders the document into a complete LaTeX source string.
// Content is inserted verbatim: the transcript already carries LaTeX
// math, so there is no escaping pass.
func RenderTeX(doc *outline.Document, opts Options) (string, error) {
	data := templateData{
		Title:    opts.Title,
		Author:   opts.Author,
		Date:     opts.Date,
		Problems: doc.Problems,
	}
	if data.Title == "" {
		data.Title = "Math Homework"
	}
	if data.Date == "" {
		data.Date = time.Now().Format("1/2/2006")
	}

	var sb strings.Builder
	if err := docTemplate.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("render latex: %w", err)
	}
	return sb.String(), nil
}
