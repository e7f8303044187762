package pdf

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"otprental/internal/models"
)

func TestStatementGenerator_Generate(t *testing.T) {
	gen := NewStatementGenerator()

	data := StatementData{
		UserName:  "Alice",
		UserEmail: "alice@example.com",
		Balance:   150,
		Transactions: []*models.WalletTransaction{
			{ID: 2, UserID: 1, Type: models.TxDebit, Amount: 50, Description: "Deduction", CreatedAt: time.Now()},
			{ID: 1, UserID: 1, Type: models.TxCredit, Amount: 200, Description: "Wallet Top-up", CreatedAt: time.Now().Add(-time.Hour)},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, gen.Generate(data, &buf))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "%PDF-"), "output should start with a PDF header")
	assert.Greater(t, buf.Len(), 1000)
}

func TestStatementGenerator_GenerateEmptyHistory(t *testing.T) {
	gen := NewStatementGenerator()

	var buf bytes.Buffer
	require.NoError(t, gen.Generate(StatementData{UserName: "Bob", UserEmail: "b@x.com"}, &buf))
	assert.True(t, strings.HasPrefix(buf.String(), "%PDF-"))
}
