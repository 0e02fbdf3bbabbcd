package statutory

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBrackets() []Bracket {
	return []Bracket{
		{Min: dec(0), Max: decPtr(999.99), EmployeeShare: dec(10), EmployerShare: dec(20), Total: dec(30), ReferenceBase: dec(1000)},
		{Min: dec(1000), Max: decPtr(1999.99), EmployeeShare: dec(50), EmployerShare: dec(100), Total: dec(150), ReferenceBase: dec(1500)},
		{Min: dec(2000), Max: nil, EmployeeShare: dec(90), EmployerShare: dec(180), Total: dec(270), ReferenceBase: dec(2000)},
	}
}

func TestNewTable_Valid(t *testing.T) {
	table, err := NewTable(SchemeSSS, "test", testBrackets())
	require.NoError(t, err)
	assert.Equal(t, 3, table.Len())
	assert.True(t, table.Ceiling().Equal(dec(2000)))
}

func TestNewTable_RejectsBrokenTables(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func([]Bracket) []Bracket
		wantErr error
	}{
		{
			name:    "empty",
			mutate:  func([]Bracket) []Bracket { return nil },
			wantErr: ErrEmptyTable,
		},
		{
			name: "not anchored at zero",
			mutate: func(b []Bracket) []Bracket {
				b[0].Min = dec(100)
				return b
			},
			wantErr: ErrTableNotAnchored,
		},
		{
			name: "last bracket bounded",
			mutate: func(b []Bracket) []Bracket {
				b[2].Max = decPtr(5000)
				return b
			},
			wantErr: ErrTableNotOpen,
		},
		{
			name: "gap between brackets",
			mutate: func(b []Bracket) []Bracket {
				b[1].Min = dec(1100)
				return b
			},
			wantErr: ErrTableGap,
		},
		{
			name: "overlapping brackets",
			mutate: func(b []Bracket) []Bracket {
				b[1].Min = dec(900)
				return b
			},
			wantErr: ErrTableOverlap,
		},
		{
			name: "open-ended bracket in the middle",
			mutate: func(b []Bracket) []Bracket {
				b[0].Max = nil
				return b
			},
			wantErr: ErrTableNotSorted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTable(SchemeSSS, "test", tt.mutate(testBrackets()))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLookup_ExactlyOneBracketMatches(t *testing.T) {
	table, err := NewTable(SchemeSSS, "test", testBrackets())
	require.NoError(t, err)

	tests := []struct {
		value    float64
		wantBase float64
	}{
		{0, 1000},
		{999.99, 1000},
		{1000, 1500},
		{1999.99, 1500},
		{2000, 2000},
		{1_000_000, 2000},
	}

	for _, tt := range tests {
		got := table.Lookup(dec(tt.value))
		assert.True(t, got.ReferenceBase.Equal(dec(tt.wantBase)),
			"lookup(%v) base = %s, want %v", tt.value, got.ReferenceBase, tt.wantBase)
	}
}

func TestLookup_NegativeClampsToZero(t *testing.T) {
	table, err := NewTable(SchemeSSS, "test", testBrackets())
	require.NoError(t, err)

	got := table.Lookup(dec(-500))
	assert.True(t, got.EmployeeShare.Equal(dec(10)))
	assert.True(t, got.ReferenceBase.Equal(dec(1000)))
}

func TestLookup_CeilingAndAboveAreIdentical(t *testing.T) {
	table, err := NewTable(SchemeSSS, "test", testBrackets())
	require.NoError(t, err)

	atCeiling := table.Lookup(table.Ceiling())
	wayAbove := table.Lookup(decimal.NewFromInt(1_000_000))
	assert.Equal(t, atCeiling, wayAbove)
}
