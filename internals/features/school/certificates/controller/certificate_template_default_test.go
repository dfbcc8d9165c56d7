// file: internals/features/school/certificates/controller/certificate_template_default_test.go
package controller

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	certmodel "schoolku_backend/internals/features/school/certificates/model"
)

func newTemplateTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Exec(`CREATE TABLE certificate_templates (
		certificate_template_id TEXT PRIMARY KEY,
		certificate_template_org_id TEXT NOT NULL,
		certificate_template_name TEXT NOT NULL,
		certificate_template_description TEXT,
		certificate_template_background_image_path TEXT,
		certificate_template_layout_config TEXT,
		certificate_template_is_default NUMERIC NOT NULL DEFAULT 0,
		certificate_template_is_active NUMERIC NOT NULL DEFAULT 1,
		certificate_template_created_at DATETIME,
		certificate_template_updated_at DATETIME,
		certificate_template_deleted_at DATETIME
	)`).Error)
	return db
}

func seedTpl(t *testing.T, db *gorm.DB, orgID uuid.UUID, name string, isDefault bool) certmodel.CertificateTemplateModel {
	t.Helper()
	m := certmodel.CertificateTemplateModel{
		CertificateTemplateOrgID:     orgID,
		CertificateTemplateName:      name,
		CertificateTemplateIsDefault: isDefault,
		CertificateTemplateIsActive:  true,
	}
	require.NoError(t, db.Create(&m).Error)
	return m
}

func countDefaults(t *testing.T, db *gorm.DB, orgID uuid.UUID) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&certmodel.CertificateTemplateModel{}).
		Where("certificate_template_org_id = ? AND certificate_template_is_default = TRUE", orgID).
		Count(&n).Error)
	return n
}

// Flip default selalu lewat unsetOrgDefault di transaksi yang sama:
// org tidak pernah punya lebih dari satu template default, dan org lain
// tidak ikut tersentuh.
func TestTemplateDefault_AtMostOnePerOrg(t *testing.T) {
	db := newTemplateTestDB(t)
	orgA := uuid.New()
	orgB := uuid.New()

	t1 := seedTpl(t, db, orgA, "Ijazah Lama", true)
	t2 := seedTpl(t, db, orgA, "Ijazah Baru", false)
	seedTpl(t, db, orgB, "Ijazah Org Lain", true)

	// pindahkan default orgA dari t1 ke t2 (pola SetDefault/Update)
	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		if err := unsetOrgDefault(tx, orgA); err != nil {
			return err
		}
		t2.CertificateTemplateIsDefault = true
		return tx.Save(&t2).Error
	}))

	assert.Equal(t, int64(1), countDefaults(t, db, orgA))
	assert.Equal(t, int64(1), countDefaults(t, db, orgB))

	var cur certmodel.CertificateTemplateModel
	require.NoError(t, db.First(&cur,
		"certificate_template_org_id = ? AND certificate_template_is_default = TRUE", orgA).Error)
	assert.Equal(t, t2.CertificateTemplateID, cur.CertificateTemplateID)

	var old certmodel.CertificateTemplateModel
	require.NoError(t, db.First(&old, "certificate_template_id = ?", t1.CertificateTemplateID).Error)
	assert.False(t, old.CertificateTemplateIsDefault)
}

// Pola Create dengan is_default=true: sibling di-unset dulu dalam
// transaksi yang sama, sehingga default tetap tunggal.
func TestTemplateDefault_CreateAsDefaultReplacesSibling(t *testing.T) {
	db := newTemplateTestDB(t)
	orgID := uuid.New()
	seedTpl(t, db, orgID, "Default Awal", true)

	var created certmodel.CertificateTemplateModel
	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		if err := unsetOrgDefault(tx, orgID); err != nil {
			return err
		}
		created = certmodel.CertificateTemplateModel{
			CertificateTemplateOrgID:     orgID,
			CertificateTemplateName:      "Default Pengganti",
			CertificateTemplateIsDefault: true,
			CertificateTemplateIsActive:  true,
		}
		return tx.Create(&created).Error
	}))

	assert.Equal(t, int64(1), countDefaults(t, db, orgID))

	var cur certmodel.CertificateTemplateModel
	require.NoError(t, db.First(&cur,
		"certificate_template_org_id = ? AND certificate_template_is_default = TRUE", orgID).Error)
	assert.Equal(t, created.CertificateTemplateID, cur.CertificateTemplateID)
}

// unsetOrgDefault idempotent: tanpa default pun tidak error.
func TestTemplateDefault_UnsetWithoutDefault(t *testing.T) {
	db := newTemplateTestDB(t)
	orgID := uuid.New()
	seedTpl(t, db, orgID, "Biasa", false)

	require.NoError(t, unsetOrgDefault(db, orgID))
	assert.Equal(t, int64(0), countDefaults(t, db, orgID))
}
