// Package contactservice accepts public contact-form submissions and lets
// admins read them. Each submission fans out an admin notification through a
// port wired by bootstrap.
package contactservice
