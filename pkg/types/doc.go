// Package types defines the CaseRecord entity, the Gateway storage
// interface, backend configuration, and standard errors for the case
// ledger system.
package types
