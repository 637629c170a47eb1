// Package mocks provides test doubles shared across packages.
package mocks
