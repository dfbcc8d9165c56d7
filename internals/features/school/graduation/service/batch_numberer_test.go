// file: internals/features/school/graduation/service/batch_numberer_test.go
package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBatchCertificateNumberer_Defaults(t *testing.T) {
	n := NewBatchCertificateNumberer("", 2025, 0, 0)
	assert.Equal(t, "GRAD-2025-0001", n.Next())
	assert.Equal(t, "GRAD-2025-0002", n.Next())
	assert.Equal(t, "GRAD-2025-0003", n.Next())
}

func TestBatchCertificateNumberer_CustomPrefixAndStart(t *testing.T) {
	n := NewBatchCertificateNumberer("IJAZAH", 2026, 42, 4)
	assert.Equal(t, "IJAZAH-2026-0042", n.Next())
	assert.Equal(t, "IJAZAH-2026-0043", n.Next())
}

func TestBatchCertificateNumberer_Padding(t *testing.T) {
	n := NewBatchCertificateNumberer("GRAD", 2025, 999, 6)
	assert.Equal(t, "GRAD-2025-000999", n.Next())

	// padding tidak memotong sequence yang lebih panjang
	n2 := NewBatchCertificateNumberer("GRAD", 2025, 12345, 4)
	assert.Equal(t, "GRAD-2025-12345", n2.Next())
}

func TestBatchCertificateNumberer_Peek(t *testing.T) {
	n := NewBatchCertificateNumberer("GRAD", 2025, 7, 4)
	assert.Equal(t, 7, n.Peek())
	_ = n.Next()
	assert.Equal(t, 8, n.Peek())
}

func TestBatchCertificateNumberer_TrimsPrefix(t *testing.T) {
	n := NewBatchCertificateNumberer("  LULUS  ", 2025, 1, 4)
	assert.Equal(t, "LULUS-2025-0001", n.Next())
}
