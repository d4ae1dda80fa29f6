package formatter

import (
	"math"
	"unicode/utf8"

	"github.com/ddltools/ddlmin/internal/schema"
)

// Statistics summarizes a resolved schema. IndexCount counts the primary
// key, every unique key, and every plain index once each.
type Statistics struct {
	TableCount         int
	ColumnCount        int
	IndexCount         int
	ForeignKeyCount    int
	AvgColumnsPerTable float64
}

// Collect computes schema statistics.
func Collect(s *schema.Schema) Statistics {
	var st Statistics
	st.TableCount = len(s.Tables)
	for i := range s.Tables {
		t := &s.Tables[i]
		st.ColumnCount += len(t.Columns)
		if t.PrimaryKey != nil {
			st.IndexCount++
		}
		st.IndexCount += len(t.UniqueKeys) + len(t.Indexes)
		st.ForeignKeyCount += len(t.ForeignKeys)
	}
	if st.TableCount > 0 {
		st.AvgColumnsPerTable = math.Round(float64(st.ColumnCount)/float64(st.TableCount)*100) / 100
	}
	return st
}

// CharsPerToken is the heuristic divisor used by EstimateTokens: roughly one
// token per four characters of text.
const CharsPerToken = 4

// EstimateTokens approximates the LLM token count of a text from its
// character length. This is a heuristic proxy, not a tokenizer; callers must
// treat the result as an estimate, never a guarantee.
func EstimateTokens(text string) int {
	return utf8.RuneCountInString(text) / CharsPerToken
}

// Reduction compares the token estimates of a raw DDL input and one rendered
// output. Both sides use the same heuristic, so the percentage is meaningful
// even though the absolute numbers are approximate.
type Reduction struct {
	OriginalTokens   int
	OptimizedTokens  int
	PercentReduction float64
}

// EstimateReduction estimates how much smaller the rendered text is than the
// raw input, in tokens.
func EstimateReduction(raw, rendered string) Reduction {
	r := Reduction{
		OriginalTokens:  EstimateTokens(raw),
		OptimizedTokens: EstimateTokens(rendered),
	}
	if r.OriginalTokens > 0 {
		pct := (1 - float64(r.OptimizedTokens)/float64(r.OriginalTokens)) * 100
		r.PercentReduction = math.Round(pct*100) / 100
	}
	return r
}
