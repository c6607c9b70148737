// Package delivery hands finished label documents to their destination: the
// local output directory, a MinIO/S3 bucket, or an arbitrary writer.
package delivery
