package nl2sql

import "strings"

const systemPromptTemplate = `You are an expert SQL query generator. Your task is to convert natural language questions into accurate, efficient SQL queries.

## Database Schema

%SCHEMA%

## Guidelines

1. Generate syntactically correct SQL for the given schema
2. Use appropriate indexes and JOINs as suggested by the schema
3. Only generate SELECT queries unless explicitly requested otherwise
4. Use clear table and column aliases when needed
5. Follow MySQL syntax

## Output Format

Respond with the complete, executable SQL query wrapped in a ` + "```sql" + ` code block, followed by a brief explanation of what the query does and any assumptions made.
`

// BuildSystemPrompt embeds the rendered schema in the SQL-generation prompt.
func BuildSystemPrompt(schemaText string) string {
	return strings.Replace(systemPromptTemplate, "%SCHEMA%", schemaText, 1)
}

// ExtractSQL pulls the first sql code block out of a model response. If no
// code block is present the trimmed response is returned as-is.
func ExtractSQL(response string) string {
	lower := strings.ToLower(response)
	start := strings.Index(lower, "```sql")
	if start < 0 {
		return strings.TrimSpace(response)
	}
	rest := response[start+len("```sql"):]
	end := strings.Index(rest, "```")
	if end < 0 {
		return strings.TrimSpace(rest)
	}
	return strings.TrimSpace(rest[:end])
}
