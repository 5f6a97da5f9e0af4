// file: internals/features/finance/ledger/service/receipt_renderer.go
package service

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"schoolku_backend/internals/features/finance/ledger/model"
)

// ReceiptRenderer menghasilkan dokumen kwitansi dari satu entri income.
// Murni read-side; rendering PDF/print ada di kolaborator eksternal yang
// mengimplementasikan interface ini.
type ReceiptRenderer interface {
	Render(trx *model.Transaction) (string, error)
}

// TextReceiptRenderer adalah implementasi default berbentuk teks polos.
type TextReceiptRenderer struct {
	SchoolName string
}

func (r *TextReceiptRenderer) Render(trx *model.Transaction) (string, error) {
	if trx == nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "Transaksi kosong")
	}
	if trx.TransactionType != model.TransactionTypeIncome {
		return "", fiber.NewError(fiber.StatusBadRequest, "Kwitansi hanya untuk pemasukan")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "KWITANSI PEMBAYARAN\n")
	if r.SchoolName != "" {
		fmt.Fprintf(&b, "%s\n", r.SchoolName)
	}
	fmt.Fprintf(&b, "--------------------------------\n")
	if trx.TransactionReceiptCode != nil {
		fmt.Fprintf(&b, "No. Kwitansi : %s\n", *trx.TransactionReceiptCode)
	}
	fmt.Fprintf(&b, "Tanggal      : %s\n", trx.TransactionDate.Format("02-01-2006"))
	fmt.Fprintf(&b, "Keterangan   : %s\n", trx.TransactionDescription)
	fmt.Fprintf(&b, "Nominal      : Rp %d\n", trx.TransactionAmountIDR)
	if trx.TransactionPaymentMethod != nil {
		fmt.Fprintf(&b, "Metode       : %s\n", *trx.TransactionPaymentMethod)
	}
	if trx.TransactionIsVoided {
		fmt.Fprintf(&b, "--------------------------------\n")
		fmt.Fprintf(&b, "*** DIBATALKAN ***\n")
		if trx.TransactionVoidReason != nil {
			fmt.Fprintf(&b, "Alasan: %s\n", *trx.TransactionVoidReason)
		}
	}
	fmt.Fprintf(&b, "--------------------------------\n")
	fmt.Fprintf(&b, "Dicetak oleh sistem — bukan bukti pembayaran pajak\n")
	return b.String(), nil
}
