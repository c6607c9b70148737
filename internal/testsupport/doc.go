// Package testsupport holds fixtures shared by package tests: isolated
// configs rooted in t.TempDir, an auto-closing store, and sample records.
package testsupport
