// Package errs provides the shared error types of the procurement service.
//
// Each error type follows the same pattern:
//   - a sentinel error variable (e.g. ErrObjectNotFound) for errors.Is checks
//   - a struct carrying the details (parameter name, offending value, optional cause)
//   - constructors with and without a cause
//   - Unwrap returning the sentinel
//
// Domain packages build their own typed errors on the same pattern
// (see order.InvalidStateTransitionError and product.InsufficientStockError).
package errs
