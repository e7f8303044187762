package pdf

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"

	"otprental/internal/models"
)

// StatementGenerator renders a wallet statement (easy to mock in tests).
type StatementGenerator interface {
	Generate(data StatementData, w io.Writer) error
}

type StatementData struct {
	UserName     string
	UserEmail    string
	Balance      int64
	Transactions []*models.WalletTransaction
}

type statementGenerator struct{}

func NewStatementGenerator() StatementGenerator {
	return &statementGenerator{}
}

func (g *statementGenerator) Generate(data StatementData, w io.Writer) error {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetTitle("Wallet Statement", false)
	doc.SetAuthor("OTP Rental", false)
	doc.SetMargins(20, 20, 20)
	doc.SetAutoPageBreak(true, 20)
	doc.AddPage()

	// ===== header
	doc.SetFont("Helvetica", "B", 18)
	doc.CellFormat(0, 10, "WALLET STATEMENT", "", 1, "C", false, 0, "")

	doc.SetFont("Helvetica", "", 12)
	sub := fmt.Sprintf("%s <%s>  -  generated %s",
		data.UserName,
		data.UserEmail,
		time.Now().Format("02.01.2006"),
	)
	doc.CellFormat(0, 7, sub, "", 1, "C", false, 0, "")
	hr(doc)

	doc.SetFont("Helvetica", "B", 13)
	doc.CellFormat(0, 8, fmt.Sprintf("Current balance: %d", data.Balance), "", 1, "L", false, 0, "")
	doc.Ln(3)

	// ===== transaction table, newest first
	doc.SetFont("Helvetica", "B", 11)
	doc.SetFillColor(243, 244, 246)
	doc.CellFormat(35, 8, "Date", "1", 0, "C", true, 0, "")
	doc.CellFormat(22, 8, "Type", "1", 0, "C", true, 0, "")
	doc.CellFormat(28, 8, "Amount", "1", 0, "C", true, 0, "")
	doc.CellFormat(85, 8, "Description", "1", 1, "C", true, 0, "")

	doc.SetFont("Helvetica", "", 10)
	for _, tx := range data.Transactions {
		amount := fmt.Sprintf("+%d", tx.Amount)
		if tx.Type == models.TxDebit {
			amount = fmt.Sprintf("-%d", tx.Amount)
		}
		doc.CellFormat(35, 7, tx.CreatedAt.Format("02.01.2006 15:04"), "1", 0, "C", false, 0, "")
		doc.CellFormat(22, 7, tx.Type, "1", 0, "C", false, 0, "")
		doc.CellFormat(28, 7, amount, "1", 0, "R", false, 0, "")
		doc.CellFormat(85, 7, tx.Description, "1", 1, "L", false, 0, "")
	}
	if len(data.Transactions) == 0 {
		doc.CellFormat(170, 7, "No transactions yet", "1", 1, "C", false, 0, "")
	}

	return doc.Output(w)
}

func hr(doc *gofpdf.Fpdf) {
	doc.Ln(2)
	x, y := doc.GetXY()
	doc.Line(x, y, 190, y)
	doc.Ln(4)
}
