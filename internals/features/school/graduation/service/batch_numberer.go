// file: internals/features/school/graduation/service/batch_numberer.go
package service

import (
	"fmt"
	"strings"
)

// Default penomoran batch: GRAD-{tahun}-{seq 4 digit}.
const (
	DefaultCertificatePrefix  = "GRAD"
	DefaultCertificatePadding = 4
)

// BatchCertificateNumberer mengalokasikan nomor sertifikat sekuensial
// dalam scope satu batch (org+batch). TERPISAH dari penomoran course
// (CourseCertificateNumberer) — dua call-site, dua counter.
//
// Numberer ini murni in-memory: serialisasi antar request dijamin oleh
// row-lock batch di transaksi pemanggil, bukan oleh struct ini.
type BatchCertificateNumberer struct {
	prefix  string
	year    int
	padding int
	next    int
}

func NewBatchCertificateNumberer(prefix string, year, startingNumber, padding int) *BatchCertificateNumberer {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = DefaultCertificatePrefix
	}
	if padding <= 0 {
		padding = DefaultCertificatePadding
	}
	if startingNumber < 1 {
		startingNumber = 1
	}
	return &BatchCertificateNumberer{
		prefix:  prefix,
		year:    year,
		padding: padding,
		next:    startingNumber,
	}
}

// Next mengembalikan nomor berikutnya, format {prefix}-{year}-{padded seq}.
func (n *BatchCertificateNumberer) Next() string {
	num := fmt.Sprintf("%s-%d-%0*d", n.prefix, n.year, n.padding, n.next)
	n.next++
	return num
}

// Peek: sequence berikutnya tanpa mengalokasikan.
func (n *BatchCertificateNumberer) Peek() int { return n.next }
