// file: internals/helpers/locking.go
package helper

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LockForUpdate menambahkan SELECT ... FOR UPDATE ke query berikutnya.
// sqlite (dipakai unit test service) tidak mengenal klausa itu; di sana
// serialisasi turun ke write-lock transaksi sqlite sendiri.
func LockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}
