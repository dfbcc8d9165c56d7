package constants

// Nama permission per fitur. Dipetakan ke role minimum di PermissionRoles;
// cek kapabilitas dilakukan lewat helperAuth.HasPermission (tidak pernah panic).
const (
	PermGraduationBatchesRead     = "graduation_batches.read"
	PermGraduationBatchesWrite    = "graduation_batches.write"
	PermGraduationBatchesIssue    = "certificates.issue"
	PermCertificateTemplatesRead  = "certificate_templates.read"
	PermCertificateTemplatesWrite = "certificate_templates.write"
	PermCourseCertificatesIssue   = "course_certificates.issue"
)

// Role minimum yang memegang permission tsb di dalam school-nya.
var PermissionRoles = map[string][]string{
	PermGraduationBatchesRead:     TeacherAndAbove,
	PermGraduationBatchesWrite:    AdminAndAbove,
	PermGraduationBatchesIssue:    AdminAndAbove,
	PermCertificateTemplatesRead:  TeacherAndAbove,
	PermCertificateTemplatesWrite: AdminAndAbove,
	PermCourseCertificatesIssue:   TeacherAndAbove,
}
