package reference

import (
	"strings"

	"latexref/internal/llm"
)

// SystemPrompt sets up the model as a writer of LaTeX reference documents.
const SystemPrompt = `You are a technical writer specializing in LATEX reference documents. Your
users give you lists containing only latex macro names.

Your job is to organize them into categories (an example
category that should be included is "Greek Letters") and add a brief example,
then return them in a Markdown document of the following format:

# Latex Reference
## Category
macro name, $\macro$, brief description of macro with basic example.
## Category
...

You also add other relevent macros. For example, in the Greek Letters
category, you should include the full Greek alphabet, keeping capital and
lowercase letters together. But in other categories,
you should be very very selective about what you add so that the reference
document isn't too long and hard to read.`

// DefaultSubject names the course the macros come from.
const DefaultSubject = "Bayesian statistics"

// UserMessage introduces the macro list, one name per line as the extraction stage writes it.
func UserMessage(subject, macroList string) string {
	if subject == "" {
		subject = DefaultSubject
	}

	return "The following are latex macros commonly used in a " + subject + " class:\n" +
		strings.TrimRight(macroList, "\n")
}

// Messages builds the conversation sent to the completion service.
func Messages(subject, macroList string) []llm.Message {
	return []llm.Message{
		{Role: llm.RoleSystem, Content: SystemPrompt},
		{Role: llm.RoleUser, Content: UserMessage(subject, macroList)},
	}
}
