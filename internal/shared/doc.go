// Package shared holds cross-cutting helpers that belong to no single
// domain package. Today that is only testutil, the log-capture helpers used
// by package tests.
package shared
