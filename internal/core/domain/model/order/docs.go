// Package order provides the Order aggregate and its lifecycle state machine.
//
// The package includes:
//   - Order: the aggregate root (department, creator, approver, admin comment, items, timestamps)
//   - Item: an owned order line (product and positive quantity)
//   - Status: the lifecycle states and the transition table
//
// Key business rules:
//   - Status follows pending -> exported -> submitted -> approved | rejected
//   - Any move outside the transition table fails with InvalidStateTransitionError
//     and leaves the order untouched
//   - An approver is recorded if and only if the order is approved or rejected
//   - An order has at least one item and every quantity is positive
//
// Stock is not touched here: approval only records the decision, the application
// layer deducts stock in the same transaction.
package order
