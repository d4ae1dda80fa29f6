package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ddltools/ddlmin/internal/schema"
)

func TestCollect(t *testing.T) {
	st := Collect(testSchema())

	assert.Equal(t, 2, st.TableCount)
	assert.Equal(t, 6, st.ColumnCount)
	// users: PK + unique + index; orders: PK + index.
	assert.Equal(t, 5, st.IndexCount)
	assert.Equal(t, 1, st.ForeignKeyCount)
	assert.Equal(t, 3.0, st.AvgColumnsPerTable)
}

func TestCollectEmptySchema(t *testing.T) {
	st := Collect(&schema.Schema{})

	assert.Equal(t, 0, st.TableCount)
	assert.Equal(t, 0.0, st.AvgColumnsPerTable)
}

func TestCollectAverageRounding(t *testing.T) {
	s := &schema.Schema{Tables: []schema.Table{
		{Name: "a", Columns: make([]schema.Column, 1)},
		{Name: "b", Columns: make([]schema.Column, 1)},
		{Name: "c", Columns: make([]schema.Column, 2)},
	}}

	st := Collect(s)
	assert.Equal(t, 1.33, st.AvgColumnsPerTable)
}

func TestEstimateTokens(t *testing.T) {
	assert.Equal(t, 0, EstimateTokens(""))
	assert.Equal(t, 1, EstimateTokens("abcd"))
	assert.Equal(t, 25, EstimateTokens(strings.Repeat("x", 100)))
}

func TestEstimateReduction(t *testing.T) {
	raw := strings.Repeat("a", 400)
	rendered := strings.Repeat("b", 100)

	r := EstimateReduction(raw, rendered)
	assert.Equal(t, 100, r.OriginalTokens)
	assert.Equal(t, 25, r.OptimizedTokens)
	assert.Equal(t, 75.0, r.PercentReduction)
}

func TestEstimateReductionEmptyInput(t *testing.T) {
	r := EstimateReduction("", "xxxx")
	assert.Equal(t, 0, r.OriginalTokens)
	assert.Equal(t, 0.0, r.PercentReduction)
}
