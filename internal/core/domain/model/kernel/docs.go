// Package kernel provides the shared value objects of the procurement domain:
// UUID identifiers and calendar Days.
package kernel
