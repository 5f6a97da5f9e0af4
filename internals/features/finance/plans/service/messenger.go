// file: internals/features/finance/plans/service/messenger.go
package service

import (
	"context"
	"log"
)

// Messenger adalah kolaborator pengiriman pesan (SMS/WA/email).
// Pengiriman adalah side effect eksternal yang tidak bisa di-rollback,
// jadi flag reminder_sent hanya di-set SETELAH Send melapor sukses —
// dua langkah, bukan satu transaksi.
type Messenger interface {
	Send(ctx context.Context, to, body string) error
}

// LogMessenger dipakai sebagai default di development: cuma mencatat.
type LogMessenger struct {
	Logf func(format string, v ...any)
}

func (m *LogMessenger) Send(ctx context.Context, to, body string) error {
	logf := m.Logf
	if logf == nil {
		logf = log.Printf
	}
	logf("[REMINDER] to=%s body=%q", to, body)
	return nil
}
